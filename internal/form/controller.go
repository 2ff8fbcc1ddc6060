package form

import (
	"fmt"
	"strings"
)

// Action tells the caller what a navigation call resulted in.
type Action int

const (
	// ActionNone means nothing changed (validation failed).
	ActionNone Action = iota
	// ActionAdvance means the controller moved to the next step.
	ActionAdvance
	// ActionSubmit means the final step validated and the form should be submitted.
	ActionSubmit
	// ActionBack means the controller moved to the previous step.
	ActionBack
	// ActionExit means Back was pressed on the first step and the flow is over.
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionAdvance:
		return "advance"
	case ActionSubmit:
		return "submit"
	case ActionBack:
		return "back"
	case ActionExit:
		return "exit"
	default:
		return "none"
	}
}

// Controller tracks the current step, the values entered so far and the
// validation errors of the current step. It is not safe for concurrent use;
// one session owns it.
type Controller struct {
	steps      []FormStep
	current    int
	data       FormData
	errors     map[string]string
	submitting bool
	exited     bool
}

// NewController creates a controller over the given steps.
func NewController(steps []FormStep) (*Controller, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("form must have at least one step")
	}
	return &Controller{
		steps:  steps,
		data:   make(FormData),
		errors: make(map[string]string),
	}, nil
}

// Step returns the current step.
func (c *Controller) Step() FormStep {
	return c.steps[c.current]
}

// StepIndex returns the zero-based index of the current step.
func (c *Controller) StepIndex() int {
	return c.current
}

// StepCount returns the number of steps.
func (c *Controller) StepCount() int {
	return len(c.steps)
}

// IsLastStep reports whether the current step is the final one.
func (c *Controller) IsLastStep() bool {
	return c.current == len(c.steps)-1
}

// Progress renders the position as "current/total", one-based.
func (c *Controller) Progress() string {
	return fmt.Sprintf("%d/%d", c.current+1, len(c.steps))
}

// Exited reports whether the user left the flow from the first step.
func (c *Controller) Exited() bool {
	return c.exited
}

// Submitting reports whether a submission is pending.
func (c *Controller) Submitting() bool {
	return c.submitting
}

// Value returns the value entered for a field.
func (c *Controller) Value(id string) string {
	return c.data[id]
}

// Data returns a copy of every value entered so far.
func (c *Controller) Data() FormData {
	return c.data.Clone()
}

// Errors returns a copy of the current per-field errors.
func (c *Controller) Errors() map[string]string {
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// SetValue records a value and clears any error shown for that field.
func (c *Controller) SetValue(id, value string) {
	c.data[id] = value
	delete(c.errors, id)
}

// Prefill copies values into the form without touching navigation.
func (c *Controller) Prefill(data FormData) {
	for k, v := range data {
		c.SetValue(k, v)
	}
}

// Validate checks the required fields of the current step only.
// The error map is replaced with the result.
func (c *Controller) Validate() error {
	step := c.steps[c.current]
	verr := &ValidationError{Step: step.Title, Fields: make(map[string]string)}

	for _, field := range step.Fields {
		if !field.Required {
			continue
		}
		if strings.TrimSpace(c.data[field.ID]) == "" {
			verr.Fields[field.ID] = requiredMessage(field.Label)
			verr.order = append(verr.order, field.ID)
		}
	}

	c.errors = make(map[string]string, len(verr.Fields))
	for k, v := range verr.Fields {
		c.errors[k] = v
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Next validates the current step and advances. On the final step it
// returns ActionSubmit instead of moving; the caller performs the submission.
func (c *Controller) Next() (Action, error) {
	if c.submitting {
		return ActionNone, ErrSubmitInProgress
	}
	if err := c.Validate(); err != nil {
		return ActionNone, err
	}
	if c.IsLastStep() {
		return ActionSubmit, nil
	}
	c.current++
	return ActionAdvance, nil
}

// Back returns to the previous step, or exits the flow from the first step.
func (c *Controller) Back() (Action, error) {
	if c.submitting {
		return ActionNone, ErrSubmitInProgress
	}
	if c.current > 0 {
		c.current--
		c.errors = make(map[string]string)
		return ActionBack, nil
	}
	c.exited = true
	return ActionExit, nil
}

// BeginSubmit marks a submission as pending. It fails if one already is.
func (c *Controller) BeginSubmit() error {
	if c.submitting {
		return ErrSubmitInProgress
	}
	c.submitting = true
	return nil
}

// EndSubmit clears the pending submission flag.
func (c *Controller) EndSubmit() {
	c.submitting = false
}

// Reset discards all values and errors and returns to the first step.
func (c *Controller) Reset() {
	c.current = 0
	c.data = make(FormData)
	c.errors = make(map[string]string)
	c.exited = false
	c.submitting = false
}
