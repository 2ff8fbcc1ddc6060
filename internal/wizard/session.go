// Package wizard runs the résumé form interactively in the terminal.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/payload"
	"github.com/jonathan/resume-builder/internal/securestore"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// Messages shown to the user.
const (
	ValidationErrorTitle   = "Validation Error"
	ValidationErrorMessage = "Please fill in all required fields."
	SubmissionErrorTitle   = "Submission Error"
	SubmissionErrorPrefix  = "There was a problem submitting your resume: "
	SuccessTitle           = "Success"
	SuccessMessage         = "Your resume has been created successfully!"
	SubmittingMessage      = "Submitting..."
)

// ClearValue typed as an answer empties a field that already has a value.
const ClearValue = "-"

// ClearHint is appended to the help of fields that already have a value.
const ClearHint = " (Enter keeps the current value, \"" + ClearValue + "\" clears it)"

// Navigation choices.
const (
	ChoiceNext   = "Next"
	ChoiceSubmit = "Submit"
	ChoiceBack   = "Back"
)

// Submitter sends the assembled résumé to the backend.
type Submitter interface {
	SubmitResume(ctx context.Context, data types.ResumeData) (types.SubmitResponse, error)
}

// StateStore persists local values such as the last created résumé ID.
type StateStore interface {
	Set(key, value string) error
}

// Options configures a Session.
type Options struct {
	Driver    PromptDriver
	Submitter Submitter
	Store     StateStore // optional
	Out       io.Writer
	Logger    *zap.Logger
	// Steps defaults to form.ResumeSteps().
	Steps []form.FormStep
}

// Result describes how a run ended.
type Result struct {
	Submitted bool
	Exited    bool
	ID        string
	Data      types.ResumeData
}

// Session drives a form controller through a prompt driver.
type Session struct {
	ctrl      *form.Controller
	driver    PromptDriver
	submitter Submitter
	store     StateStore
	printer   *observability.Printer
	logger    *zap.Logger
}

// NewSession creates a session over a fresh form.
func NewSession(opts Options) (*Session, error) {
	if opts.Submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}
	steps := opts.Steps
	if steps == nil {
		steps = form.ResumeSteps()
	}
	ctrl, err := form.NewController(steps)
	if err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		ctrl:      ctrl,
		driver:    opts.Driver,
		submitter: opts.Submitter,
		store:     opts.Store,
		printer:   observability.NewPrinter(out),
		logger:    logger,
	}, nil
}

// Controller exposes the underlying form state.
func (s *Session) Controller() *form.Controller {
	return s.ctrl
}

// Prefill seeds the form with values, e.g. loaded from a file.
func (s *Session) Prefill(data form.FormData) {
	s.ctrl.Prefill(data)
}

// Run walks the user through every step until the résumé is submitted, the
// user backs out of the first step, or input is aborted.
// A failed submission keeps the user on the last step so they can try again.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if s.driver == nil {
		return nil, fmt.Errorf("prompt driver is required for interactive runs")
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step := s.ctrl.Step()
		s.printer.PrintStepHeader(step.Title, s.ctrl.Progress())

		for _, field := range step.Fields {
			value, err := s.askField(ctx, field)
			if err != nil {
				return nil, err
			}
			s.ctrl.SetValue(field.ID, value)
		}

		choice, err := s.askNavigation(ctx)
		if err != nil {
			return nil, err
		}

		if choice == ChoiceBack {
			action, err := s.ctrl.Back()
			if err != nil {
				return nil, err
			}
			if action == form.ActionExit {
				s.logger.Debug("form exited from first step")
				return &Result{Exited: true}, nil
			}
			continue
		}

		action, err := s.ctrl.Next()
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			s.printer.PrintAlert(ValidationErrorTitle, ValidationErrorMessage)
			s.printer.PrintValidationErrors(verr.Messages())
			continue
		}
		if err != nil {
			return nil, err
		}

		if action != form.ActionSubmit {
			continue
		}

		result, err := s.submit(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.printer.PrintAlert(SubmissionErrorTitle, SubmissionErrorPrefix+err.Error())
			continue
		}
		return result, nil
	}
}

// RunBatch validates every step of prefilled data in order and submits once.
// It returns the first *form.ValidationError encountered, or a
// *SubmissionError when the backend rejects the résumé.
func (s *Session) RunBatch(ctx context.Context) (*Result, error) {
	for {
		action, err := s.ctrl.Next()
		if err != nil {
			return nil, err
		}
		if action != form.ActionSubmit {
			continue
		}

		result, err := s.submit(ctx)
		if err != nil {
			return nil, &SubmissionError{Cause: err}
		}
		return result, nil
	}
}

// submit performs exactly one submission attempt of the current form data.
func (s *Session) submit(ctx context.Context) (*Result, error) {
	if err := s.ctrl.BeginSubmit(); err != nil {
		return nil, err
	}
	defer s.ctrl.EndSubmit()

	s.info(ctx, SubmittingMessage)

	data := payload.Assemble(s.ctrl.Data())
	resp, err := s.submitter.SubmitResume(ctx, data)
	if err != nil {
		s.logger.Warn("resume submission failed", zap.Error(err))
		return nil, err
	}

	if resp.ID != "" && s.store != nil {
		if err := s.store.Set(securestore.LastResumeIDKey, resp.ID); err != nil {
			s.logger.Warn("failed to persist last resume id", zap.Error(err))
		}
	}

	s.printer.PrintAlert(SuccessTitle, SuccessMessage)
	s.ctrl.Reset()

	return &Result{Submitted: true, ID: resp.ID, Data: data}, nil
}

func (s *Session) info(ctx context.Context, msg string) {
	if s.driver == nil {
		return
	}
	if err := s.driver.Info(ctx, msg); err != nil {
		s.logger.Debug("info message not shown", zap.Error(err))
	}
}

func (s *Session) askField(ctx context.Context, field form.FormField) (string, error) {
	message := field.Label
	if field.Required {
		message += " *"
	}
	current := s.ctrl.Value(field.ID)
	help := field.Placeholder
	if current != "" {
		help += ClearHint
	}

	var value string
	var err error
	if field.Multiline {
		value, err = s.driver.TextArea(ctx, TextAreaConfig{
			Name:    field.ID,
			Message: message,
			Default: current,
			Help:    help,
		})
	} else {
		value, err = s.driver.Input(ctx, InputConfig{
			Name:    field.ID,
			Message: message,
			Default: current,
			Help:    help,
		})
	}
	if err != nil {
		return "", err
	}
	// An empty answer keeps the default, so clearing needs its own token.
	if strings.TrimSpace(value) == ClearValue {
		return "", nil
	}
	return value, nil
}

func (s *Session) askNavigation(ctx context.Context) (string, error) {
	forward := ChoiceNext
	if s.ctrl.IsLastStep() {
		forward = ChoiceSubmit
	}
	options := []string{forward, ChoiceBack}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: fmt.Sprintf("%s (%s)", s.ctrl.Step().Title, s.ctrl.Progress()),
		Options: options,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("invalid navigation choice %d", idx)
	}
	return options[idx], nil
}
