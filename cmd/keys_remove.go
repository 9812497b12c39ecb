package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rsakit/internal/ui"
	"github.com/PolarWolf314/rsakit/internal/utils"
	"github.com/PolarWolf314/rsakit/internal/workflows"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a stored key pair",
	Long: `Deletes both key files of a stored key pair and its manifest entry.
This cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")
		name := args[0]

		spinner, cleanup := startSpinner("Removing key pair...", verbose)
		defer cleanup()

		result, err := workflows.Remove(context.Background(), workflows.RemoveOptions{Name: name, StoreDir: storeDir})
		if err != nil {
			Logger.Errorf("Remove failed: %v", err)
			spinner.FinalMSG = formatKeyError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		msg := ui.Success.Sprint("✓") + " Removed key pair " + ui.Key.Sprint(name)
		if len(result.RemovedFiles) > 0 {
			msg += fmt.Sprintf("\nFiles deleted:\n%s", utils.FormatPaths(result.RemovedFiles))
		}
		spinner.FinalMSG = msg
		return nil
	},
}
