package wizard

import (
	"fmt"

	"github.com/colbuilder-dev/colbuild/internal/models"
	"github.com/colbuilder-dev/colbuild/internal/validation"
)

// Parameter key for reduced-density fibril jobs.
const ParamTargetDensity = "targetDensity"

// ReducedDensityPanel validates reduced-density fibril parameters.
type ReducedDensityPanel struct{}

// NewReducedDensityPanel creates the reduced-density panel.
func NewReducedDensityPanel() *ReducedDensityPanel {
	return &ReducedDensityPanel{}
}

// JobType implements Panel.
func (p *ReducedDensityPanel) JobType() models.JobType {
	return models.JobTypeReducedDensity
}

// Defaults returns the initial parameter set for a fresh density job.
func (p *ReducedDensityPanel) Defaults() map[string]interface{} {
	return map[string]interface{}{
		ParamTargetDensity: 30.0,
	}
}

// Validate implements Panel.
func (p *ReducedDensityPanel) Validate(params map[string]interface{}) error {
	density, ok := paramFloat(params, ParamTargetDensity)
	if !ok {
		return fmt.Errorf("target density is required")
	}
	return validation.ValidateTargetDensity(density)
}

var _ Panel = (*ReducedDensityPanel)(nil)
var _ Panel = (*MixedCrosslinkPanel)(nil)
var _ Panel = (*FibrilPanel)(nil)
var _ Panel = (*MoleculePanel)(nil)
