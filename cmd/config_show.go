package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/rsakit/internal/configs"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration rsakit will use: the config file merged with
defaults and RSAKIT_* environment overrides.

Examples:
  rsakit config show
  rsakit config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		path := configs.ConfigFilePath()
		ConfigLogger.Debugf("Loading config from %s", path)
		config, err := configs.LoadConfig()
		if err != nil {
			fmt.Println(formatKeyError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		if configShowJSON {
			data, err := json.MarshalIndent(map[string]any{
				"config_file":        path,
				"bits":               config.Keygen.Bits,
				"max_prime_attempts": config.Keygen.MaxPrimeAttempts,
				"max_retries":        config.Keygen.MaxRetries,
				"store_path":         config.KeysPath(),
			}, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(color.CyanString("Config file:") + " " + path)
		fmt.Println()
		fmt.Println(color.CyanString("[keygen]"))
		fmt.Printf("  bits:               %d\n", config.Keygen.Bits)
		if config.Keygen.MaxPrimeAttempts == 0 {
			fmt.Println("  max_prime_attempts: " + color.HiBlackString("auto"))
		} else {
			fmt.Printf("  max_prime_attempts: %d\n", config.Keygen.MaxPrimeAttempts)
		}
		fmt.Printf("  max_retries:        %d\n", config.Keygen.MaxRetries)
		fmt.Println(color.CyanString("[store]"))
		fmt.Println("  path:               " + config.KeysPath())
		return nil
	},
}
