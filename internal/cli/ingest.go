package cli

import (
	"context"
	"fmt"

	"talentsift/internal/common"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [resume-files...]",
	Short: "Parse resume files and add the candidates to the store",
	Long: `Parse one or more resume files (PDF, DOCX, or plain text) into
structured candidate records and add them to the local store.

Each file becomes one candidate. Files that cannot be read or decoded are
reported and skipped; the rest of the batch still goes through.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return applyDefaultFormat(cmd.Context(), &ingestConfig)
	},
	RunE: runIngest,
}

var ingestConfig common.CommandConfig

func init() {
	ingestCmd.Flags().StringVarP(&ingestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	ingestCmd.Flags().StringVar(&ingestConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	if err := fileProcessor.ValidateResumeFiles(cfg.App.MaxFileSize, args...); err != nil {
		return err
	}

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	return common.RunCommand(cmd.Context(), logger, ingestConfig, func(ctx context.Context) (any, error) {
		report, err := svc.IngestFiles(ctx, args)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest resumes: %w", err)
		}
		logger.Info("Ingest completed",
			"succeeded", report.Succeeded, "failed", len(report.Failed))
		return report, nil
	})
}
