package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/colbuilder-dev/colbuild/internal/api"
	"github.com/colbuilder-dev/colbuild/internal/logging"
	"github.com/colbuilder-dev/colbuild/internal/models"
	"github.com/colbuilder-dev/colbuild/internal/session"
	"github.com/colbuilder-dev/colbuild/internal/validation"
)

// Step identifies one wizard screen.
type Step int

const (
	StepSelectType Step = iota
	StepBasicInfo
	StepParameters
	StepReview
)

// stepCount is the number of wizard steps.
const stepCount = 4

func (s Step) String() string {
	switch s {
	case StepSelectType:
		return "select type"
	case StepBasicInfo:
		return "basic info"
	case StepParameters:
		return "parameters"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// Panel owns the validation rules for one job type's parameter set. The
// controller delegates to it on the forward transition out of StepParameters
// and knows nothing about parameter-specific rules itself.
type Panel interface {
	JobType() models.JobType
	Validate(params map[string]interface{}) error
}

// Submitter is the submission gateway contract.
type Submitter interface {
	SubmitJob(ctx context.Context, req models.SubmitRequest) (string, error)
}

// SubmitOutcome is the result of a submission attempt.
type SubmitOutcome struct {
	Success bool
	JobID   string
	Message string
}

// Controller owns the wizard state machine. State is mutated exclusively
// through Apply, Next, Back and Submit; panels only read copies.
type Controller struct {
	submitter Submitter
	panels    map[models.JobType]Panel
	logger    *logging.Logger

	mu         sync.Mutex
	step       Step
	jobType    models.JobType
	form       FormData
	submitting bool
}

// NewController creates a wizard at StepSelectType with no job type chosen.
func NewController(submitter Submitter, panels []Panel, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	byType := make(map[models.JobType]Panel, len(panels))
	for _, p := range panels {
		byType[p.JobType()] = p
	}
	return &Controller{
		submitter: submitter,
		panels:    byType,
		logger:    logger,
		form:      FormData{Parameters: map[string]interface{}{}},
	}
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// JobType returns the selected job type, or "" before selection.
func (c *Controller) JobType() models.JobType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jobType
}

// FormData returns a copy of the accumulated input.
func (c *Controller) FormData() FormData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

// Submitting reports whether a submission request is outstanding. The UI
// disables the submit action while this is true.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Panel returns the parameter panel for the selected job type.
func (c *Controller) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panels[c.jobType]
}

// Apply applies a panel intent to the canonical state.
func (c *Controller) Apply(intent Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch in := intent.(type) {
	case SelectJobType:
		if c.jobType != in.Type {
			c.form.Parameters = map[string]interface{}{}
		}
		c.jobType = in.Type
	case UpdateBasicInfo:
		c.form.JobName = in.JobName
		c.form.Description = in.Description
	case UpdateParameters:
		c.form.Parameters = CloneParams(in.Parameters)
	}
}

// Next attempts the forward transition. It succeeds iff the current step's
// validation predicate holds on the current form data; on failure the step
// is unchanged and the error describes what to fix.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validateStep(); err != nil {
		return err
	}
	if int(c.step) < stepCount-1 {
		c.step++
	}
	return nil
}

// Back moves one step back. Backward transitions are always permitted and
// never discard entered data.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > StepSelectType {
		c.step--
	}
}

// validateStep checks the current step's predicate. Caller holds c.mu.
func (c *Controller) validateStep() error {
	switch c.step {
	case StepSelectType:
		if c.jobType == "" {
			return fmt.Errorf("select a job type to continue")
		}
		if _, ok := c.panels[c.jobType]; !ok {
			return fmt.Errorf("unsupported job type: %s", c.jobType)
		}
	case StepBasicInfo:
		if err := validateBasicInfo(c.form); err != nil {
			return err
		}
	case StepParameters:
		panel := c.panels[c.jobType]
		if panel == nil {
			return fmt.Errorf("no parameter panel for job type %s", c.jobType)
		}
		if err := panel.Validate(c.form.Parameters); err != nil {
			return err
		}
	case StepReview:
		// Submit is the only action out of Review.
	}
	return nil
}

// Submit serializes the payload and hands it to the submission gateway.
// Only one submission may be in flight: a second call while the first is
// outstanding fails immediately without a network call. On success the
// wizard state is reset; on failure all entered data is preserved so the
// user can resubmit without re-entry.
func (c *Controller) Submit(ctx context.Context) SubmitOutcome {
	c.mu.Lock()
	if c.step != StepReview {
		c.mu.Unlock()
		return SubmitOutcome{Message: "submission is only available from the review step"}
	}
	if c.submitting {
		c.mu.Unlock()
		return SubmitOutcome{Message: "submission already in progress"}
	}
	c.submitting = true
	req := models.SubmitRequest{
		JobType:     c.jobType,
		JobName:     c.form.JobName,
		Description: c.form.Description,
		Parameters:  CloneParams(c.form.Parameters),
	}
	c.mu.Unlock()

	jobID, err := c.submitter.SubmitJob(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		if apiErr, ok := api.AsAPIError(err); ok {
			return SubmitOutcome{Message: apiErr.Message}
		}
		c.logger.Error().Err(err).Msg("job submission failed")
		return SubmitOutcome{Message: session.GenericErrorMessage}
	}

	// Successful submission destroys the wizard state; the caller
	// navigates to the tracking view for the returned job id.
	c.step = StepSelectType
	c.jobType = ""
	c.form = FormData{Parameters: map[string]interface{}{}}

	return SubmitOutcome{Success: true, JobID: jobID}
}

// validateBasicInfo is the BasicInfo step predicate.
func validateBasicInfo(form FormData) error {
	if err := validation.ValidateJobName(form.JobName); err != nil {
		return err
	}
	return validation.ValidateDescription(form.Description)
}
