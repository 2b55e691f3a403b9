package cli

import (
	"context"
	"fmt"

	"talentsift/internal/common"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-description-file]",
	Short: "Analyze a job description into title and skill requirements",
	Long: `Analyze a job description file: detect the target role title and
split the mentioned skills into required and preferred sets.

The analysis is heuristic: explicit "Requirements" and "Nice to have"
sections are honored when present; an unstructured JD treats every
detected skill as required.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return applyDefaultFormat(cmd.Context(), &analyzeConfig)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	return common.RunCommand(cmd.Context(), logger, analyzeConfig, func(ctx context.Context) (any, error) {
		analysis := svc.AnalyzeJD(contents[0])
		logger.Info("Job description analyzed",
			"title", analysis.Title,
			"required", len(analysis.Required),
			"preferred", len(analysis.Preferred))
		if analysis.IsEmpty() {
			return nil, fmt.Errorf("no title, skills, or keywords detected in %s", args[0])
		}
		return analysis, nil
	})
}
