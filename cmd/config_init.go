package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/PolarWolf314/rsakit/internal/configs"
	"github.com/PolarWolf314/rsakit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configInitBits      int
	configInitRetries   int
	configInitStorePath string
	configInitForce     bool
)

func init() {
	configInitCmd.Flags().IntVarP(&configInitBits, "bits", "b", configs.DefaultBits, "default modulus size in bits")
	configInitCmd.Flags().IntVar(&configInitRetries, "max-retries", 0, "generation retries before giving up (0 uses the built-in default)")
	configInitCmd.Flags().StringVar(&configInitStorePath, "store-path", "", "key store directory (empty uses the default)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitBits = configs.DefaultBits
	configInitRetries = 0
	configInitStorePath = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file",
	Long: `Writes ~/.config/rsakit/config.toml with the given settings, or the
defaults for anything not given.

Examples:
  rsakit config init
  rsakit config init --bits 4096 --store-path ~/keys --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")

		path := configs.ConfigFilePath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.Warning.Sprint("⚠") + " Config already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ConfigLogger.ErrorfAndReturn("Failed to check config file: %v", err)
		}

		config := configs.DefaultConfig()
		config.Keygen.Bits = configInitBits
		if configInitRetries > 0 {
			config.Keygen.MaxRetries = configInitRetries
		}
		config.Store.Path = configInitStorePath
		ConfigLogger.Debugf("Writing config %+v to %s", *config, path)

		if err := configs.SaveConfig(config); err != nil {
			ConfigLogger.Errorf("Saving config failed: %v", err)
			fmt.Println(formatKeyError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		fmt.Println(ui.Success.Sprint("✓") + " Config written to " + ui.Path.Sprint(path))
		fmt.Printf("    keygen.bits:        %d\n", config.Keygen.Bits)
		fmt.Printf("    keygen.max_retries: %d\n", config.Keygen.MaxRetries)
		fmt.Println("    store path:         " + ui.Path.Sprint(config.KeysPath()))
		return nil
	},
}
