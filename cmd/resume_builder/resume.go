package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/api"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/securestore"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:     "resume",
	Aliases: []string{"resumes"},
	Short:   "Manage stored résumés",
}

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored résumés",
	Args:  cobra.NoArgs,
	RunE:  runResumeList,
}

var resumeGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a résumé (defaults to the last one created)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResumeGet,
}

var resumeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Apply a partial update from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeUpdate,
}

var resumeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a résumé",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeDelete,
}

var resumeGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an AI-polished résumé from a résumé file",
	Args:  cobra.NoArgs,
	RunE:  runResumeGenerate,
}

var resumeLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Print the ID of the last résumé created with this CLI",
	Args:  cobra.NoArgs,
	RunE:  runResumeLast,
}

var (
	resumeFile string
	resumeYes  bool
)

func init() {
	resumeUpdateCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "JSON or YAML patch file (required)")
	_ = resumeUpdateCmd.MarkFlagRequired("file")
	resumeGenerateCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "JSON or YAML résumé file (required)")
	_ = resumeGenerateCmd.MarkFlagRequired("file")
	resumeDeleteCmd.Flags().BoolVarP(&resumeYes, "yes", "y", false, "Delete without asking for confirmation")

	resumeCmd.AddCommand(resumeListCmd, resumeGetCmd, resumeUpdateCmd, resumeDeleteCmd, resumeGenerateCmd, resumeLastCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResumeList(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}

	resumes, err := client.Resumes().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}
	return render(cmd, cfg.Output, resumes, func(p *observability.Printer) {
		p.PrintResumeList(resumes)
	})
}

func runResumeGet(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		if id, err = lastResumeID(store); err != nil {
			return err
		}
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	resume, err := client.Resumes().Get(cmd.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("resume %s not found", id)
		}
		return fmt.Errorf("failed to get resume: %w", err)
	}
	return render(cmd, cfg.Output, resume, func(p *observability.Printer) {
		p.PrintResume(resume)
	})
}

func runResumeUpdate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	var patch types.ResumePatch
	if err := readInputFile(resumeFile, &patch); err != nil {
		return err
	}
	if err := patch.Validate(); err != nil {
		return fmt.Errorf("invalid patch: %w", err)
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	resume, err := client.Resumes().Update(cmd.Context(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	return render(cmd, cfg.Output, resume, func(p *observability.Printer) {
		p.PrintResume(resume)
	})
}

func runResumeDelete(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	id := args[0]

	ok, err := confirm(cmd, resumeYes, fmt.Sprintf("Delete resume %s?", id))
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
	if err := client.Resumes().Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	// Forget the ID if it was the last one created here.
	if store, err := openStore(cfg); err == nil {
		if last, found, err := store.Get(securestore.LastResumeIDKey); err == nil && found && last == id {
			_ = store.Delete(securestore.LastResumeIDKey)
		}
	}

	printf(cmd.OutOrStdout(), "Deleted resume %s\n", id)
	return nil
}

func runResumeGenerate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	var data types.ResumeData
	if err := readInputFile(resumeFile, &data); err != nil {
		return err
	}
	data.Normalize()
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid resume file: %w", err)
	}

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	resume, err := client.Resumes().Generate(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("failed to generate resume: %w", err)
	}
	return render(cmd, cfg.Output, resume, func(p *observability.Printer) {
		p.PrintResume(resume)
	})
}

func runResumeLast(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	id, err := lastResumeID(store)
	if err != nil {
		return err
	}
	return render(cmd, cfg.Output, types.SubmitResponse{ID: id}, func(*observability.Printer) {
		printf(cmd.OutOrStdout(), "%s\n", id)
	})
}

func lastResumeID(store *securestore.Store) (string, error) {
	id, found, err := store.Get(securestore.LastResumeIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to read local state: %w", err)
	}
	if !found || id == "" {
		return "", fmt.Errorf("no resume id given and no resume has been created yet")
	}
	return id, nil
}
