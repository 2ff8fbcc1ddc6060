package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development REST API server",
	Long: `Start an HTTP server that implements the résumé backend endpoints on PostgreSQL.

DATABASE_URL (or database_url in the config file) is required. Generation
endpoints are enabled when GEMINI_API_KEY is set and answer 503 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	logger, err := logging.NewServer(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	srvCfg := server.Config{
		Port:   cfg.Port,
		Store:  database,
		Logger: logger,
	}

	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create model client: %w", err)
		}
		defer func() { _ = client.Close() }()
		srvCfg.Generator = llm.NewGenerator(client, logger.Named("llm"))
	} else {
		logger.Warn("GEMINI_API_KEY not set, generation endpoints are disabled")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving", zap.String("addr", srv.Addr()), zap.Bool("generation", srvCfg.Generator != nil))
	return srv.Run(ctx)
}
