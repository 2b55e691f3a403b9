package cli

import (
	"context"

	"talentsift/internal/common"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [candidate-id]",
	Short: "Show one stored candidate in full",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return applyDefaultFormat(cmd.Context(), &showConfig)
	},
	RunE: runShow,
}

var showConfig common.CommandConfig

func init() {
	showCmd.Flags().StringVarP(&showConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	showCmd.Flags().StringVar(&showConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runShow(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	return common.RunCommand(cmd.Context(), logger, showConfig, func(ctx context.Context) (any, error) {
		return svc.Get(args[0])
	})
}
