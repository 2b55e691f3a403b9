package cli

import (
	"fmt"
	"os"
	"strings"

	"talentsift/internal/common"
	"talentsift/internal/export"
	"talentsift/internal/types"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored candidates as CSV or tab-separated text",
	Long: `Export the stored candidates. The default output is CSV; --tsv
produces tab-separated text suitable for pasting into a spreadsheet.

When any candidate carries a match score a "Match %" column is included.
The same --name/--email/--skill filters as the list command apply.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportOutput string
	exportTSV    bool
	exportFilter types.Filter
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().BoolVar(&exportTSV, "tsv", false, "Tab-separated output instead of CSV")
	exportCmd.Flags().StringVar(&exportFilter.Name, "name", "", "Filter by candidate name")
	exportCmd.Flags().StringVar(&exportFilter.Email, "email", "", "Filter by email")
	exportCmd.Flags().StringVar(&exportFilter.Skill, "skill", "", "Filter by skill")
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	candidates, err := svc.List(exportFilter)
	if err != nil {
		return err
	}

	var rendered string
	if exportTSV {
		rendered = export.ClipboardText(candidates)
	} else {
		var b strings.Builder
		if err := export.WriteCSV(&b, candidates); err != nil {
			return err
		}
		rendered = b.String()
	}

	if exportOutput != "" {
		fileProcessor := common.NewFileProcessor(logger)
		if err := fileProcessor.WriteFile(exportOutput, rendered); err != nil {
			return err
		}
		logger.Info("Export written", "file", exportOutput, "candidates", len(candidates))
		fmt.Printf("Exported %d candidate(s) to %s\n", len(candidates), exportOutput)
		return nil
	}

	_, err = os.Stdout.WriteString(rendered)
	return err
}
