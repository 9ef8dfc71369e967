package wizard

import (
	"fmt"

	"github.com/colbuilder-dev/colbuild/internal/models"
	"github.com/colbuilder-dev/colbuild/internal/validation"
)

// Parameter keys for standard fibril jobs.
const (
	ParamContactDistance = "contactDistance"
	ParamFibrilLength    = "fibrilLength"
	ParamUseGromacs      = "useGromacs"
	ParamForceField      = "forceField"
)

// ForceFields lists the simulation force fields the backend supports.
var ForceFields = []string{"charmm36", "amber99sb-ildn", "gromos54a7"}

// FibrilPanel validates standard fibril job parameters.
type FibrilPanel struct{}

// NewFibrilPanel creates the standard fibril panel.
func NewFibrilPanel() *FibrilPanel {
	return &FibrilPanel{}
}

// JobType implements Panel.
func (p *FibrilPanel) JobType() models.JobType {
	return models.JobTypeFibril
}

// Defaults returns the initial parameter set for a fresh fibril job.
func (p *FibrilPanel) Defaults() map[string]interface{} {
	return map[string]interface{}{
		ParamContactDistance: 1.5,
		ParamFibrilLength:    100.0,
		ParamUseGromacs:      false,
	}
}

// Validate implements Panel.
func (p *FibrilPanel) Validate(params map[string]interface{}) error {
	distance, ok := paramFloat(params, ParamContactDistance)
	if !ok {
		return fmt.Errorf("contact distance is required")
	}
	if err := validation.ValidateContactDistance(distance); err != nil {
		return err
	}

	length, ok := paramFloat(params, ParamFibrilLength)
	if !ok {
		return fmt.Errorf("fibril length is required")
	}
	if err := validation.ValidateFibrilLength(length); err != nil {
		return err
	}

	if paramBool(params, ParamUseGromacs) {
		field := paramString(params, ParamForceField)
		if !validForceField(field) {
			return fmt.Errorf("force field must be one of %v", ForceFields)
		}
	}
	return nil
}

func validForceField(field string) bool {
	for _, f := range ForceFields {
		if f == field {
			return true
		}
	}
	return false
}

// paramFloat reads a numeric parameter. JSON round-trips store numbers as
// float64, but direct panel updates may store ints.
func paramFloat(params map[string]interface{}, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
