package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/rsakit/internal/ui"
	"github.com/PolarWolf314/rsakit/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	generateBits  int
	generateSeeds []int64
	generateCount int
	generateForce bool
	generateShow  bool
)

func init() {
	generateCmd.Flags().IntVarP(&generateBits, "bits", "b", 0, "modulus size in bits (default from config, 2048)")
	generateCmd.Flags().Int64SliceVar(&generateSeeds, "seed", nil, "seed values for deterministic generation (repeatable)")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of key pairs to generate")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "overwrite existing keys with the same name")
	generateCmd.Flags().BoolVar(&generateShow, "show", false, "print the public key text")
}

// resetGenerateCommandState resets the generate command's global state for testing.
func resetGenerateCommandState() {
	generateBits = 0
	generateSeeds = nil
	generateCount = 1
	generateForce = false
	generateShow = false
}

var generateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Generate a new key pair",
	Long: `Generates an RSA key pair and saves it to the key store as <name>.pub and
<name>.key. Without a name, one is derived from the hostname.

With --seed the pair is derived deterministically from the given values, so
the same seeds and size always give the same keys. Seeded keys are only as
secret as the seeds.

Examples:
  rsakit keys generate deploy                 # 2048-bit pair named deploy
  rsakit keys generate test --bits 64         # small pair for experiments
  rsakit keys generate demo --seed 1 --seed 2 # reproducible pair
  rsakit keys generate worker --count 4       # worker, worker-2 ... worker-4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting generate command")

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	Logger.Debugf("Flags: name=%q, bits=%d, seeds=%d, count=%d, force=%t", name, generateBits, len(generateSeeds), generateCount, generateForce)

	message := "Generating key pair..."
	if generateCount > 1 {
		message = fmt.Sprintf("Generating %d key pairs...", generateCount)
	}
	spinner, cleanup := startSpinner(message, verbose)
	defer cleanup()

	result, err := workflows.Generate(context.Background(), workflows.GenerateOptions{
		Name:     name,
		StoreDir: storeDir,
		Bits:     generateBits,
		Seeds:    generateSeeds,
		Count:    generateCount,
		Force:    generateForce,
		Logger:   Logger,
	})
	if err != nil {
		Logger.Errorf("Generate failed: %v", err)
		spinner.FinalMSG = formatKeyError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	var b strings.Builder
	for _, key := range result.Keys {
		Logger.Infof("Saved %s to %s", key.Entry.Name, result.StoreDir)
		b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" Generated %d-bit key pair ", key.Entry.Bits) + ui.Key.Sprint(key.Entry.Name) + "\n")
		b.WriteString("    public:      " + ui.Path.Sprint(key.PublicKeyPath) + "\n")
		b.WriteString("    private:     " + ui.Path.Sprint(key.PrivateKeyPath) + "\n")
		b.WriteString("    fingerprint: " + key.Entry.Fingerprint + "\n")
		if generateShow {
			b.WriteString("    key:         " + key.Pair.Public.String() + "\n")
		}
	}
	if len(generateSeeds) > 0 {
		b.WriteString(ui.Warning.Sprint("⚠") + " Seeded keys can be recreated by anyone who knows the seeds\n")
	}
	spinner.FinalMSG = b.String()
	return nil
}
