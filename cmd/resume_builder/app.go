package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/api"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/securestore"
	"github.com/jonathan/resume-builder/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// loadConfig reads --config when given and fills unset values from the
// environment and built-in defaults.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Config{
		Output:      config.OutputText,
		Port:        config.DefaultPort,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	})
	if outputFlag != "" {
		merged.Output = strings.ToLower(outputFlag)
	}
	merged.Verbose = merged.Verbose || verbose

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newAPIClient builds the REST client for the resolved base URL.
func newAPIClient(cfg *config.Config, logger *zap.Logger) (*api.Client, error) {
	baseURL := config.ResolveAPIURL(apiURLFlag, cfg)
	logger.Debug("using backend", zap.String("url", baseURL))

	opts := api.DefaultOptions()
	opts.Logger = logger
	return api.NewClient(baseURL, opts)
}

// openStore opens the encrypted local state file.
func openStore(cfg *config.Config) (*securestore.Store, error) {
	path := cfg.StorePath
	if path == "" {
		var err error
		if path, err = securestore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return securestore.Open(path, securestore.OptionsFromEnv())
}

// setup loads config and builds the CLI logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// render writes v in the configured format. Text output is delegated to text.
func render(cmd *cobra.Command, format string, v any, text func(p *observability.Printer)) error {
	out := cmd.OutOrStdout()
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(observability.NewPrinter(out))
		return nil
	}
}

// readInputFile decodes a JSON or YAML file into v, chosen by extension.
func readInputFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decodeInput(filepath.Ext(path), data, v)
}

func decodeInput(ext string, data []byte, v any) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	}
	return nil
}

// confirm asks a yes/no question unless skip is set.
func confirm(cmd *cobra.Command, skip bool, message string) (bool, error) {
	if skip {
		return true, nil
	}
	return newPromptDriver(cmd.OutOrStdout()).Confirm(cmd.Context(), wizard.ConfirmConfig{Message: message})
}

// newPromptDriver builds the interactive prompt driver. Tests replace it.
var newPromptDriver = func(out io.Writer) wizard.PromptDriver {
	return wizard.NewSurveyDriver(out)
}

// printf writes status output for the user.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
