package cmd

import (
	logger "github.com/PolarWolf314/rsakit/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose  bool
	debug    bool
	storeDir string
	Logger   logger.Logger

	KeysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Generate, store and use RSA key pairs",
		Long: `Generates RSA key pairs, keeps them in a local key store, and applies
them to integers.

Keys are written as "<hex-exponent>,<hex-modulus>". The store lives in
~/.local/share/rsakit/keys unless --store or the store.path setting says
otherwise.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keys command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	KeysCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	KeysCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	KeysCmd.PersistentFlags().StringVar(&storeDir, "store", "", "key store directory (overrides config)")

	KeysCmd.AddCommand(generateCmd)
	KeysCmd.AddCommand(applyCmd)
	KeysCmd.AddCommand(inspectCmd)
	KeysCmd.AddCommand(listCmd)
	KeysCmd.AddCommand(removeCmd)
	KeysCmd.AddCommand(logCmd)
}

// GetKeysCmd returns the KeysCmd for testing.
func GetKeysCmd() *cobra.Command {
	return KeysCmd
}

// ResetGlobalState resets all keys command globals to their defaults for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	storeDir = ""
	resetGenerateCommandState()
	resetApplyCommandState()
	resetInspectCommandState()
	resetLogCommandState()
	resetCobraFlagState(KeysCmd)
}

// resetCobraFlagState clears the Changed bit on every flag under root.
func resetCobraFlagState(root *cobra.Command) {
	root.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	root.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range root.Commands() {
		resetCobraFlagState(sub)
	}
}
