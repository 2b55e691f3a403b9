package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [candidate-id]",
	Short: "Delete a stored candidate",
	Long: `Delete the candidate with the given ID from the store.

Use --all to remove every stored candidate instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var deleteAll bool

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete every stored candidate")
}

func runDelete(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	if deleteAll {
		if len(args) != 0 {
			return fmt.Errorf("--all takes no candidate ID")
		}
		if err := svc.Clear(); err != nil {
			return err
		}
		logger.Info("Deleted all candidates")
		fmt.Println("All candidates deleted.")
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("a candidate ID is required (or use --all)")
	}
	if err := svc.Delete(args[0]); err != nil {
		return err
	}
	logger.Info("Deleted candidate", "id", args[0])
	fmt.Printf("Candidate %s deleted.\n", args[0])
	return nil
}
