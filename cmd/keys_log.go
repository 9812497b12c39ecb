package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/rsakit/internal/audit"
	"github.com/PolarWolf314/rsakit/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logKey       string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logKey, "key", "", "filter by key name")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logKey = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the key store's audit log",
	Long: `Displays who generated, applied or removed keys in the store, and when.

Examples:
  rsakit keys log                        # View full log
  rsakit keys log -n 10                  # Last 10 entries
  rsakit keys log --reverse              # Most recent first
  rsakit keys log --key deploy           # Filter by key
  rsakit keys log --operation generate   # Filter by operation
  rsakit keys log --since 2024-01-01     # Filter by date
  rsakit keys log --json                 # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.History(context.Background(), workflows.HistoryOptions{
		StoreDir:   storeDir,
		Key:        logKey,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
		Limit:      logLimit,
		Reverse:    logReverse,
	})
	if err != nil {
		fmt.Println(formatKeyError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.Total)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.Total == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}
	for _, e := range result.Entries {
		fmt.Printf("%-19s  %-16s  %-8s  %-20s  %s\n",
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, e.Key, workflows.FormatDetails(e))
	}
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
