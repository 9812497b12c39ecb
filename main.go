package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/rsakit/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rsakit",
	Short: "rsakit - generate, store and apply RSA key pairs.",
	Long: `rsakit generates RSA key pairs, keeps them in a local key store, and
applies them to integers.

Keys are written as "<hex-exponent>,<hex-modulus>" and can be passed around
as plain text.

Usage:
  rsakit <command> [flags]

Available Commands:
  keys      Generate, store and use key pairs
  config    Manage rsakit configuration

Run 'rsakit help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewFigure("rsakit", "small", true)
		fmt.Println(color.CyanString(banner.String()))
		fmt.Println("Run 'rsakit --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.KeysCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
