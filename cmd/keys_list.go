package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rsakit/internal/ui"
	"github.com/PolarWolf314/rsakit/internal/workflows"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored keys",
	Long: `Lists the key pairs in the key store with their size, fingerprint and
creation time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		result, err := workflows.List(context.Background(), storeDir)
		if err != nil {
			fmt.Println(formatKeyError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		Logger.Debugf("Found %d keys in %s", len(result.Entries), result.StoreDir)

		if len(result.Entries) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " No keys in " + ui.Path.Sprint(result.StoreDir))
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rsakit keys generate <name>") + " to create one")
			return nil
		}

		fmt.Printf("%-24s  %6s  %-47s  %s\n", "NAME", "BITS", "FINGERPRINT", "CREATED")
		for _, e := range result.Entries {
			fmt.Printf("%-24s  %6d  %-47s  %s\n", e.Name, e.Bits, e.Fingerprint, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}
