package wizard

import (
	"fmt"

	"github.com/colbuilder-dev/colbuild/internal/models"
	"github.com/colbuilder-dev/colbuild/internal/validation"
)

// Parameter keys for mixed-crosslink fibril jobs.
const (
	ParamCrosslinkMix = "crosslinkMix"
	ParamMixPattern   = "mixPattern"
)

// MixPatterns lists the supported crosslink mixing patterns.
var MixPatterns = []string{"random", "alternating"}

// MixedCrosslinkPanel validates mixed-crosslink fibril parameters: a set of
// crosslink types with percentages that must cover the whole structure.
type MixedCrosslinkPanel struct{}

// NewMixedCrosslinkPanel creates the mixed-crosslink panel.
func NewMixedCrosslinkPanel() *MixedCrosslinkPanel {
	return &MixedCrosslinkPanel{}
}

// JobType implements Panel.
func (p *MixedCrosslinkPanel) JobType() models.JobType {
	return models.JobTypeMixedCrosslink
}

// Defaults returns the initial parameter set for a fresh mixed job.
func (p *MixedCrosslinkPanel) Defaults() map[string]interface{} {
	return map[string]interface{}{
		ParamMixPattern: "random",
	}
}

// SetRatio stores one crosslink type's percentage.
func (p *MixedCrosslinkPanel) SetRatio(params map[string]interface{}, crosslinkType string, percent float64) map[string]interface{} {
	next := CloneParams(params)
	ratios := mixRatios(next)
	ratios[crosslinkType] = percent
	next[ParamCrosslinkMix] = ratios
	return next
}

// Validate implements Panel.
func (p *MixedCrosslinkPanel) Validate(params map[string]interface{}) error {
	if err := validation.ValidateMixRatios(mixRatios(params)); err != nil {
		return err
	}

	pattern := paramString(params, ParamMixPattern)
	for _, known := range MixPatterns {
		if pattern == known {
			return nil
		}
	}
	return fmt.Errorf("mix pattern must be one of %v", MixPatterns)
}

// mixRatios reads the ratio map, tolerating the float map produced by panel
// updates and the generic map produced by a JSON round-trip.
func mixRatios(params map[string]interface{}) map[string]float64 {
	switch v := params[ParamCrosslinkMix].(type) {
	case map[string]float64:
		out := make(map[string]float64, len(v))
		for k, pct := range v {
			out[k] = pct
		}
		return out
	case map[string]interface{}:
		out := make(map[string]float64, len(v))
		for k, raw := range v {
			if pct, ok := raw.(float64); ok {
				out[k] = pct
			}
		}
		return out
	}
	return map[string]float64{}
}
