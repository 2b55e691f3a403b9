package cli

import (
	"context"

	"talentsift/internal/common"
	"talentsift/internal/config"
	"talentsift/internal/errors"
	"talentsift/internal/lexicon"
	"talentsift/internal/store"
	"talentsift/internal/tracker"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "talentsift",
	Short: "A CLI tool for parsing resumes and ranking candidates",
	Long: `Talentsift is a command-line applicant tracking tool. It parses resume
files into structured candidate records, analyzes job descriptions, and
ranks stored candidates by how well they match a role. All parsing is
heuristic and runs locally; no resume ever leaves the machine.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// newService builds the tracker service from the command context: lexicon
// with optional overrides applied, store at the configured path.
func newService(ctx context.Context) (*tracker.Service, error) {
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	lex, err := buildLexicon(cfg, logger)
	if err != nil {
		return nil, err
	}
	st := store.NewOS(cfg.Store.Path, logger)
	return tracker.New(lex, st, logger), nil
}

func buildLexicon(cfg *config.Config, logger *errors.Logger) (*lexicon.Lexicon, error) {
	data := lexicon.DefaultData()
	if cfg.Lexicon.OverridesFile != "" {
		overrides, err := lexicon.LoadOverrides(cfg.Lexicon.OverridesFile)
		if err != nil {
			return nil, err
		}
		if !overrides.IsEmpty() {
			data = overrides.Apply(data)
			logger.Debug("Applied lexicon overrides", "file", cfg.Lexicon.OverridesFile)
		}
	}
	return lexicon.New(data), nil
}

// applyDefaultFormat fills in the configured default output format and
// validates the result. Shared PreRunE logic for all output commands.
func applyDefaultFormat(ctx context.Context, cmdConfig *common.CommandConfig) error {
	cfg := getConfigFromContext(ctx)
	if cmdConfig.OutputFormat == "" {
		cmdConfig.OutputFormat = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(cmdConfig.OutputFormat, cfg.App.SupportedFormats)
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
