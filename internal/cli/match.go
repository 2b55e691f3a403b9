package cli

import (
	"context"
	"fmt"

	"talentsift/internal/common"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [job-description-file]",
	Short: "Score all stored candidates against a job description",
	Long: `Analyze the job description, score every stored candidate against
it, persist the per-candidate match fields, and print the ranking in
descending score order.

Use --clear to remove the stored match fields instead.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return applyDefaultFormat(cmd.Context(), &matchConfig)
	},
	RunE: runMatch,
}

var (
	matchConfig common.CommandConfig
	matchClear  bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	matchCmd.Flags().BoolVar(&matchClear, "clear", false, "Clear stored match results instead of matching")
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	if matchClear {
		if len(args) != 0 {
			return fmt.Errorf("--clear takes no job description file")
		}
		if err := svc.ClearJD(); err != nil {
			return err
		}
		logger.Info("Cleared match results for all candidates")
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("a job description file is required (or use --clear)")
	}

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	return common.RunCommand(cmd.Context(), logger, matchConfig, func(ctx context.Context) (any, error) {
		analysis, ranked, err := svc.ApplyJD(contents[0])
		if err != nil {
			return nil, fmt.Errorf("failed to match candidates: %w", err)
		}
		logger.Info("Matching completed",
			"jd_title", analysis.Title,
			"required_skills", len(analysis.Required),
			"candidates", len(ranked))
		return ranked, nil
	})
}
