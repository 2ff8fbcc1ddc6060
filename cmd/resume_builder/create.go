package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/payload"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a résumé with the step-by-step form",
	Long: `Walk through the résumé form one step at a time and submit it to the backend.

With --from-file the form is filled from a JSON or YAML file of field values
(keyed by field ID, e.g. firstName, technicalSkills) and submitted without prompting.
--dry-run validates the file and prints the payload instead of submitting it.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

// portfolioHint points at the overview of stored résumés after a submission.
const portfolioHint = "Run `resume_builder portfolio` to view your resumes and cover letters."

var (
	createFromFile string
	createDryRun   bool
)

func init() {
	createCmd.Flags().StringVarP(&createFromFile, "from-file", "f", "", "JSON or YAML file of form values")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Validate --from-file and print the payload without submitting")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var prefill form.FormData
	if createFromFile != "" {
		if err := readInputFile(createFromFile, &prefill); err != nil {
			return err
		}
	}

	if createDryRun {
		if createFromFile == "" {
			return fmt.Errorf("--dry-run requires --from-file")
		}
		data, err := assembleForm(prefill)
		if err != nil {
			return err
		}
		return render(cmd, cfg.Output, data, func(p *observability.Printer) {
			p.PrintResumeData(&data)
		})
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	session, err := wizard.NewSession(wizard.Options{
		Driver:    newPromptDriver(out),
		Submitter: client,
		Store:     store,
		Out:       out,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	var result *wizard.Result
	if prefill != nil {
		session.Prefill(prefill)
		result, err = session.RunBatch(cmd.Context())
	} else {
		result, err = session.Run(cmd.Context())
	}
	if errors.Is(err, wizard.ErrAborted) {
		printf(out, "Aborted.\n")
		return nil
	}
	if err != nil {
		return describeFormError(err)
	}

	if result.Exited {
		printf(out, "Exited without submitting.\n")
		return nil
	}
	logger.Debug("resume created", zap.String("id", result.ID))
	return render(cmd, cfg.Output, types.SubmitResponse{ID: result.ID}, func(p *observability.Printer) {
		if result.ID != "" {
			printf(out, "Resume ID: %s\n", result.ID)
		}
		printf(out, "%s\n", portfolioHint)
	})
}

// assembleForm checks every step of data in order and returns the payload
// that would be submitted.
func assembleForm(data form.FormData) (types.ResumeData, error) {
	ctrl, err := form.NewController(form.ResumeSteps())
	if err != nil {
		return types.ResumeData{}, err
	}
	ctrl.Prefill(data)

	for {
		action, err := ctrl.Next()
		if err != nil {
			return types.ResumeData{}, describeFormError(err)
		}
		if action == form.ActionSubmit {
			break
		}
	}

	out := payload.Assemble(ctrl.Data())
	if err := payload.Validate(out); err != nil {
		return types.ResumeData{}, err
	}
	return out, nil
}

// describeFormError expands validation failures into one message per field.
func describeFormError(err error) error {
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	msg := fmt.Sprintf("step %q is incomplete", verr.Step)
	for _, m := range verr.Messages() {
		msg += "\n  - " + m
	}
	return errors.New(msg)
}
