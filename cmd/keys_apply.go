package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/rsakit/internal/ui"
	"github.com/PolarWolf314/rsakit/internal/utils"
	"github.com/PolarWolf314/rsakit/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	applyKeyName string
	applyKeyText string
	applyPrivate bool
	applyValue   string
	applyBlocks  bool
	applyHex     bool
)

func init() {
	applyCmd.Flags().StringVarP(&applyKeyName, "key", "k", "", "name of a stored key")
	applyCmd.Flags().StringVar(&applyKeyText, "key-text", "", "key as <hex-exponent>,<hex-modulus>")
	applyCmd.Flags().BoolVarP(&applyPrivate, "private", "p", false, "use the private half of the stored key")
	applyCmd.Flags().StringVar(&applyValue, "value", "", "integer to transform, decimal or 0x hex (read from stdin if omitted)")
	applyCmd.Flags().BoolVar(&applyBlocks, "blocks", false, "split values larger than the modulus into blocks")
	applyCmd.Flags().BoolVar(&applyHex, "hex", false, "print the result in hex")
	applyCmd.MarkFlagsMutuallyExclusive("key", "key-text")
	applyCmd.MarkFlagsOneRequired("key", "key-text")
}

// resetApplyCommandState resets the apply command's global state for testing.
func resetApplyCommandState() {
	applyKeyName = ""
	applyKeyText = ""
	applyPrivate = false
	applyValue = ""
	applyBlocks = false
	applyHex = false
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Transform an integer with a key",
	Long: `Computes value^exponent mod modulus with a stored or literal key and
prints the result on its own line.

Applying the public key and then the private key returns the original value,
as long as it is smaller than the modulus. Larger values are reduced unless
--blocks is given.

Examples:
  rsakit keys apply --key deploy --value 65
  rsakit keys apply --key deploy --private --value 2790
  rsakit keys apply --key-text 11,ca1 --value 0x41
  echo 65 | rsakit keys apply --key deploy`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting apply command")
	Logger.Debugf("Flags: key=%q, key-text set=%t, private=%t, blocks=%t", applyKeyName, applyKeyText != "", applyPrivate, applyBlocks)

	value := applyValue
	if value == "" {
		Logger.Debugf("No --value given, reading stdin")
		input, err := utils.ReadStdin()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read value from stdin: %v", err)
		}
		value = input
	}

	result, err := workflows.Apply(context.Background(), workflows.ApplyOptions{
		KeyName:  applyKeyName,
		KeyText:  applyKeyText,
		Private:  applyPrivate,
		Value:    value,
		Blocks:   applyBlocks,
		StoreDir: storeDir,
	})
	if err != nil {
		Logger.Errorf("Apply failed: %v", err)
		fmt.Println(formatKeyError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	if result.LoosePermissions {
		Logger.WarnfUser("Private key file has overly permissive permissions (%o), consider running 'chmod 600 %s'",
			result.PrivateKeyMode, result.PrivateKeyPath)
	}
	if !applyBlocks && result.Input.Cmp(result.Key.Modulus()) >= 0 {
		fmt.Fprintln(os.Stderr, ui.Warning.Sprint("⚠")+" Value is not smaller than the modulus and was reduced; use "+ui.Flag.Sprint("--blocks")+" to keep it")
	}

	if applyHex {
		fmt.Println("0x" + result.Output.Text(16))
	} else {
		fmt.Println(result.Output.String())
	}
	return nil
}
