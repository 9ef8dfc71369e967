package wizard

import "github.com/colbuilder-dev/colbuild/internal/models"

// Intent is a typed update message emitted by a step panel. The controller
// is the only writer of wizard state; panels describe the change they want
// and the controller applies it, keeping the transition invariants in one
// place.
type Intent interface {
	isIntent()
}

// SelectJobType picks the job type on the first step. Selecting a different
// type discards the previous type's parameters; re-selecting the same type
// keeps them.
type SelectJobType struct {
	Type models.JobType
}

// UpdateBasicInfo sets the generic metadata collected on the second step.
type UpdateBasicInfo struct {
	JobName     string
	Description string
}

// UpdateParameters replaces the job-type-specific parameter set. Panel
// change helpers build the next map from the previous one, so unchanged
// fields survive back-and-forward navigation.
type UpdateParameters struct {
	Parameters map[string]interface{}
}

func (SelectJobType) isIntent()    {}
func (UpdateBasicInfo) isIntent()  {}
func (UpdateParameters) isIntent() {}
