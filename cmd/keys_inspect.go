package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/rsakit/internal/ui"
	"github.com/PolarWolf314/rsakit/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	inspectKeyText string
	inspectJSON    bool
)

func init() {
	inspectCmd.Flags().StringVar(&inspectKeyText, "key-text", "", "inspect a literal key instead of a stored one")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output in JSON format")
}

// resetInspectCommandState resets the inspect command's global state for testing.
func resetInspectCommandState() {
	inspectKeyText = ""
	inspectJSON = false
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [name]",
	Short: "Show details of a key",
	Long: `Shows the modulus size, fingerprint and validity of a stored key or of a
key given with --key-text. Private key material is never printed.

Examples:
  rsakit keys inspect deploy
  rsakit keys inspect --key-text 11,ca1
  rsakit keys inspect deploy --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

type inspectOutput struct {
	Name        string `json:"name,omitempty"`
	ID          string `json:"id,omitempty"`
	Valid       bool   `json:"valid"`
	Bits        int    `json:"bits"`
	Fingerprint string `json:"fingerprint,omitempty"`
	PublicKey   string `json:"public_key,omitempty"`
	HasPrivate  bool   `json:"has_private"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting inspect command")

	opts := workflows.InspectOptions{KeyText: inspectKeyText, StoreDir: storeDir}
	if len(args) == 1 {
		opts.KeyName = args[0]
	}

	result, err := workflows.Inspect(context.Background(), opts)
	if err != nil {
		Logger.Errorf("Inspect failed: %v", err)
		fmt.Println(formatKeyError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	out := inspectOutput{
		Name:        opts.KeyName,
		Valid:       result.Valid,
		Bits:        result.Bits,
		Fingerprint: result.Fingerprint,
		HasPrivate:  result.HasPrivate,
	}
	if result.Valid {
		out.PublicKey = result.Public.String()
	}
	if result.Entry != nil {
		out.ID = result.Entry.ID
		out.CreatedAt = result.Entry.CreatedAt.Format("2006-01-02 15:04:05")
	}

	if inspectJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal key details to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if !out.Valid {
		fmt.Println(ui.Error.Sprint("✗") + " Not a valid key")
		return nil
	}

	var b strings.Builder
	if out.Name != "" {
		b.WriteString("Key " + ui.Key.Sprint(out.Name) + "\n")
	}
	if out.ID != "" {
		b.WriteString("  id:          " + out.ID + "\n")
	}
	fmt.Fprintf(&b, "  bits:        %d\n", out.Bits)
	b.WriteString("  fingerprint: " + out.Fingerprint + "\n")
	b.WriteString("  public key:  " + ui.Truncate(out.PublicKey, 72) + "\n")
	if out.Name != "" {
		fmt.Fprintf(&b, "  private key: %t\n", out.HasPrivate)
	}
	if out.CreatedAt != "" {
		b.WriteString("  created:     " + out.CreatedAt + "\n")
	}
	fmt.Print(b.String())
	return nil
}
