package cli

import (
	"context"

	"talentsift/internal/common"
	"talentsift/internal/types"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored candidates",
	Long: `List candidates in the local store, optionally filtered by name,
email, or skill. All filters are case-insensitive substring matches.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return applyDefaultFormat(cmd.Context(), &listConfig)
	},
	RunE: runList,
}

var (
	listConfig common.CommandConfig
	listFilter types.Filter
)

func init() {
	listCmd.Flags().StringVarP(&listConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	listCmd.Flags().StringVar(&listConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	listCmd.Flags().StringVar(&listFilter.Name, "name", "", "Filter by candidate name")
	listCmd.Flags().StringVar(&listFilter.Email, "email", "", "Filter by email")
	listCmd.Flags().StringVar(&listFilter.Skill, "skill", "", "Filter by skill")
}

func runList(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	return common.RunCommand(cmd.Context(), logger, listConfig, func(ctx context.Context) (any, error) {
		return svc.List(listFilter)
	})
}
