package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show every stored résumé and cover letter",
	Args:  cobra.NoArgs,
	RunE:  runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

// Portfolio is everything stored on the backend.
type Portfolio struct {
	Resumes      []types.Resume      `json:"resumes" yaml:"resumes"`
	CoverLetters []types.CoverLetter `json:"coverLetters" yaml:"coverLetters"`
}

func runPortfolio(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}

	var portfolio Portfolio
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		resumes, err := client.Resumes().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list resumes: %w", err)
		}
		portfolio.Resumes = resumes
		return nil
	})
	g.Go(func() error {
		letters, err := client.CoverLetters().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list cover letters: %w", err)
		}
		portfolio.CoverLetters = letters
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return render(cmd, cfg.Output, portfolio, func(p *observability.Printer) {
		p.PrintResumeList(portfolio.Resumes)
		p.PrintCoverLetterList(portfolio.CoverLetters)
	})
}
