package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/api"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var coverLetterCmd = &cobra.Command{
	Use:     "cover-letter",
	Aliases: []string{"cover-letters", "cl"},
	Short:   "Manage cover letters",
}

var coverLetterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored cover letters",
	Args:  cobra.NoArgs,
	RunE:  runCoverLetterList,
}

var coverLetterGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a cover letter",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverLetterGet,
}

var coverLetterCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Store a cover letter from a JSON or YAML file",
	Args:  cobra.NoArgs,
	RunE:  runCoverLetterCreate,
}

var coverLetterUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Apply a partial update from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverLetterUpdate,
}

var coverLetterDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a cover letter",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverLetterDelete,
}

var coverLetterGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a cover letter for a job posting",
	Long: `Draft a cover letter from a résumé and a job description.

The résumé comes from --resume-file, or from the backend by --resume-id
(defaulting to the last résumé created with this CLI). The job description is
given inline with --job-description or fetched from --job-url.`,
	Args: cobra.NoArgs,
	RunE: runCoverLetterGenerate,
}

var (
	coverLetterFile  string
	coverLetterYes   bool
	clResumeFile     string
	clResumeID       string
	clJobDescription string
	clJobURL         string
	clUseBrowser     bool
	clBrowserTimeout time.Duration
)

func init() {
	coverLetterCreateCmd.Flags().StringVarP(&coverLetterFile, "file", "f", "", "JSON or YAML cover letter file (required)")
	_ = coverLetterCreateCmd.MarkFlagRequired("file")
	coverLetterUpdateCmd.Flags().StringVarP(&coverLetterFile, "file", "f", "", "JSON or YAML patch file (required)")
	_ = coverLetterUpdateCmd.MarkFlagRequired("file")
	coverLetterDeleteCmd.Flags().BoolVarP(&coverLetterYes, "yes", "y", false, "Delete without asking for confirmation")

	f := coverLetterGenerateCmd.Flags()
	f.StringVar(&clResumeFile, "resume-file", "", "JSON or YAML résumé file")
	f.StringVar(&clResumeID, "resume-id", "", "Stored résumé to draft from (default: last created)")
	f.StringVar(&clJobDescription, "job-description", "", "Job description text")
	f.StringVar(&clJobURL, "job-url", "", "URL of the job posting to fetch")
	f.BoolVar(&clUseBrowser, "use-browser", false, "Render the job page in headless Chrome when the HTML has too little text")
	f.DurationVar(&clBrowserTimeout, "browser-timeout", fetch.DefaultBrowserTimeout, "Timeout for browser rendering")
	coverLetterGenerateCmd.MarkFlagsMutuallyExclusive("job-description", "job-url")
	coverLetterGenerateCmd.MarkFlagsMutuallyExclusive("resume-file", "resume-id")

	coverLetterCmd.AddCommand(coverLetterListCmd, coverLetterGetCmd, coverLetterCreateCmd,
		coverLetterUpdateCmd, coverLetterDeleteCmd, coverLetterGenerateCmd)
	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetterList(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}

	letters, err := client.CoverLetters().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cover letters: %w", err)
	}
	return render(cmd, cfg.Output, letters, func(p *observability.Printer) {
		p.PrintCoverLetterList(letters)
	})
}

func runCoverLetterGet(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}

	letter, err := client.CoverLetters().Get(cmd.Context(), args[0])
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("cover letter %s not found", args[0])
		}
		return fmt.Errorf("failed to get cover letter: %w", err)
	}
	return render(cmd, cfg.Output, letter, func(p *observability.Printer) {
		p.PrintCoverLetter(letter)
	})
}

func runCoverLetterCreate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	var data types.CoverLetterData
	if err := readInputFile(coverLetterFile, &data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid cover letter file: %w", err)
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	letter, err := client.CoverLetters().Create(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("failed to create cover letter: %w", err)
	}
	return render(cmd, cfg.Output, letter, func(p *observability.Printer) {
		p.PrintCoverLetter(letter)
	})
}

func runCoverLetterUpdate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	var patch types.CoverLetterPatch
	if err := readInputFile(coverLetterFile, &patch); err != nil {
		return err
	}
	if err := patch.Validate(); err != nil {
		return fmt.Errorf("invalid patch: %w", err)
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	letter, err := client.CoverLetters().Update(cmd.Context(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update cover letter: %w", err)
	}
	return render(cmd, cfg.Output, letter, func(p *observability.Printer) {
		p.PrintCoverLetter(letter)
	})
}

func runCoverLetterDelete(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	id := args[0]

	ok, err := confirm(cmd, coverLetterYes, fmt.Sprintf("Delete cover letter %s?", id))
	if err != nil {
		return err
	}
	if !ok {
		printf(cmd.OutOrStdout(), "Cancelled.\n")
		return nil
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	if err := client.CoverLetters().Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete cover letter: %w", err)
	}
	printf(cmd.OutOrStdout(), "Deleted cover letter %s\n", id)
	return nil
}

func runCoverLetterGenerate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if clJobDescription == "" && clJobURL == "" {
		return fmt.Errorf("either --job-description or --job-url must be provided")
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	req := types.GenerateCoverLetterRequest{}
	if clResumeFile != "" {
		if err := readInputFile(clResumeFile, &req.ResumeData); err != nil {
			return err
		}
	} else {
		resume, err := resolveStoredResume(ctx, cfg, client)
		if err != nil {
			return err
		}
		req.ResumeData = resume.ResumeData
		req.ResumeID = resume.ID
	}
	req.ResumeData.Normalize()
	if err := req.ResumeData.Validate(); err != nil {
		return fmt.Errorf("invalid resume: %w", err)
	}

	req.JobDescription, err = jobDescription(ctx, cfg, logger)
	if err != nil {
		return err
	}

	letter, err := client.CoverLetters().Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}
	return render(cmd, cfg.Output, letter, func(p *observability.Printer) {
		p.PrintCoverLetter(letter)
	})
}

// resolveStoredResume loads the résumé named by --resume-id, or the last one created.
func resolveStoredResume(ctx context.Context, cfg *config.Config, client *api.Client) (*types.Resume, error) {
	id := clResumeID
	if id == "" {
		store, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		if id, err = lastResumeID(store); err != nil {
			return nil, fmt.Errorf("%w (use --resume-file or --resume-id)", err)
		}
	}
	resume, err := client.Resumes().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume %s: %w", id, err)
	}
	return resume, nil
}

// jobDescription returns the inline description or the text fetched from --job-url.
func jobDescription(ctx context.Context, cfg *config.Config, logger *zap.Logger) (string, error) {
	if clJobURL == "" {
		text := strings.TrimSpace(clJobDescription)
		if strings.HasPrefix(text, "@") {
			data, err := os.ReadFile(strings.TrimPrefix(text, "@"))
			if err != nil {
				return "", fmt.Errorf("failed to read job description: %w", err)
			}
			text = strings.TrimSpace(string(data))
		}
		if text == "" {
			return "", fmt.Errorf("job description is empty")
		}
		if runes := []rune(text); len(runes) > fetch.MaxDescriptionLength {
			text = string(runes[:fetch.MaxDescriptionLength])
		}
		return text, nil
	}

	opts := fetch.JobOptions{Logger: logger}
	if clUseBrowser || cfg.UseBrowser {
		opts.Renderer = fetch.ChromeRenderer(clBrowserTimeout, logger)
	}
	posting, err := fetch.JobDescription(ctx, clJobURL, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	logger.Debug("fetched job posting",
		zap.String("platform", string(posting.Platform)),
		zap.String("title", posting.Title),
		zap.Bool("rendered", posting.Rendered),
		zap.Int("chars", len(posting.Description)))
	return posting.Description, nil
}
