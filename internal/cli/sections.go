package cli

import (
	"context"

	"talentsift/internal/common"
	"talentsift/internal/sections"

	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [resume-file-or-candidate-id]",
	Short: "Classify resume lines into headings, bullets, dates, and text",
	Long: `Classify every line of a resume for structured display. The argument
is either a resume file or the ID of a stored candidate.

Each line is tagged as heading, subheading, bullet, date, contact, or
text. The markdown format renders the tags as document structure.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return applyDefaultFormat(cmd.Context(), &sectionsConfig)
	},
	RunE: runSections,
}

var sectionsConfig common.CommandConfig

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	sectionsCmd.Flags().StringVar(&sectionsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	return common.RunCommand(cmd.Context(), logger, sectionsConfig, func(ctx context.Context) (any, error) {
		// Stored candidate ID first, file path fallback.
		if candidate, err := svc.Get(args[0]); err == nil {
			return sections.Classify(candidate.Content), nil
		}

		fileProcessor := common.NewFileProcessor(logger)
		if err := fileProcessor.ValidateResumeFiles(cfg.App.MaxFileSize, args[0]); err != nil {
			return nil, err
		}
		data, err := fileProcessor.ReadBinaryFile(args[0])
		if err != nil {
			return nil, err
		}
		candidate, err := svc.ParseBytes(data, args[0])
		if err != nil {
			return nil, err
		}
		return sections.Classify(candidate.Content), nil
	})
}
