package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/PolarWolf314/rsakit/internal/audit"
)

// TestKeysCommands contains integration tests for the `rsakit keys` commands.
func TestKeysCommands(t *testing.T) {
	t.Run("GenerateCreatesKeyFiles", testGenerateCreatesKeyFiles)
	t.Run("GenerateExistingNeedsForce", testGenerateExistingNeedsForce)
	t.Run("GenerateBelowMinimum", testGenerateBelowMinimum)
	t.Run("GenerateBatch", testGenerateBatch)
	t.Run("ApplyRoundTrip", testApplyRoundTrip)
	t.Run("ApplyLoosePermissionsHint", testApplyLoosePermissionsHint)
	t.Run("ApplyKeyText", testApplyKeyText)
	t.Run("ApplyHexOutput", testApplyHexOutput)
	t.Run("ApplyMissingKey", testApplyMissingKey)
	t.Run("ApplyNeedsKey", testApplyNeedsKey)
	t.Run("InspectStoredKey", testInspectStoredKey)
	t.Run("InspectInvalidKeyText", testInspectInvalidKeyText)
	t.Run("ListAndRemove", testListAndRemove)
	t.Run("LogShowsOperations", testLogShowsOperations)
	t.Run("StoreFlag", testStoreFlag)
}

func keysDir(userDir string) string {
	return filepath.Join(userDir, "keys")
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func testGenerateCreatesKeyFiles(t *testing.T) {
	userDir := setupTestEnvironment(t)

	output, err := runCLI(t, "keys", "generate", "alpha", "--bits", "64", "--show")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	for _, name := range []string{"alpha.pub", "alpha.key", "manifest.toml", "audit.jsonl"} {
		if _, err := os.Stat(filepath.Join(keysDir(userDir), name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
	if !strings.Contains(output, "Generated 64-bit key pair") {
		t.Errorf("Expected success message, got: %s", output)
	}
	if !strings.Contains(output, "fingerprint:") || !strings.Contains(output, "key:") {
		t.Errorf("Expected fingerprint and key text, got: %s", output)
	}
}

func testGenerateExistingNeedsForce(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "keys", "generate", "dup", "--bits", "32"); err != nil {
		t.Fatalf("First generate failed: %v", err)
	}

	output, err := runCLI(t, "keys", "generate", "dup", "--bits", "32")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "already exists") || !strings.Contains(output, "--force") {
		t.Errorf("Expected key exists message, got: %s", output)
	}

	output, err = runCLI(t, "keys", "generate", "dup", "--bits", "32", "--force")
	if err != nil {
		t.Fatalf("Forced generate failed: %v", err)
	}
	if !strings.Contains(output, "Generated 32-bit key pair") {
		t.Errorf("Expected success message, got: %s", output)
	}
}

func testGenerateBelowMinimum(t *testing.T) {
	userDir := setupTestEnvironment(t)

	output, err := runCLI(t, "keys", "generate", "tiny", "--bits", "8")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "below the minimum") {
		t.Errorf("Expected minimum size message, got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(keysDir(userDir), "tiny.pub")); !os.IsNotExist(err) {
		t.Errorf("No key should have been written")
	}
}

func testGenerateBatch(t *testing.T) {
	userDir := setupTestEnvironment(t)

	output, err := runCLI(t, "keys", "generate", "worker", "--bits", "32", "--count", "3", "--seed", "5")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	for _, name := range []string{"worker", "worker-2", "worker-3"} {
		if _, err := os.Stat(filepath.Join(keysDir(userDir), name+".pub")); err != nil {
			t.Errorf("Expected %s.pub to exist: %v", name, err)
		}
	}
	if !strings.Contains(output, "Seeded keys") {
		t.Errorf("Expected seeded warning, got: %s", output)
	}
}

func testApplyRoundTrip(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "keys", "generate", "rt", "--bits", "128", "--seed", "42"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	encoded, err := runCLIStdout(t, "keys", "apply", "--key", "rt", "--value", "123456789")
	if err != nil {
		t.Fatalf("Public apply failed: %v", err)
	}
	cipher := lastLine(encoded)
	if cipher == "123456789" {
		t.Errorf("Public apply should change the value")
	}

	decoded, err := runCLIStdout(t, "keys", "apply", "--key", "rt", "--private", "--value", cipher)
	if err != nil {
		t.Fatalf("Private apply failed: %v", err)
	}
	if got := lastLine(decoded); got != "123456789" {
		t.Errorf("Expected 123456789 after round trip, got %s", got)
	}
}

func testApplyLoosePermissionsHint(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on Windows")
	}
	userDir := setupTestEnvironment(t)

	if _, err := runCLI(t, "keys", "generate", "shared", "--bits", "64", "--seed", "7"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	privatePath := filepath.Join(keysDir(userDir), "shared.key")
	if err := os.Chmod(privatePath, 0644); err != nil {
		t.Fatalf("Failed to loosen permissions: %v", err)
	}

	output, err := runCLI(t, "keys", "apply", "--key", "shared", "--private", "--value", "42")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !strings.Contains(output, "chmod 600 "+privatePath) {
		t.Errorf("Expected chmod hint with the full key path %s, got: %s", privatePath, output)
	}
}

func testApplyKeyText(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLIStdout(t, "keys", "apply", "--key-text", "11,ca1", "--value", "65")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if got := lastLine(output); got != "2790" {
		t.Errorf("Expected 2790, got %s", got)
	}

	output, err = runCLIStdout(t, "keys", "apply", "--key-text", "ac1,ca1", "--value", "2790")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if got := lastLine(output); got != "65" {
		t.Errorf("Expected 65, got %s", got)
	}
}

func testApplyHexOutput(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLIStdout(t, "keys", "apply", "--key-text", "11,ca1", "--value", "0x41", "--hex")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if got := lastLine(output); got != "0xae6" {
		t.Errorf("Expected 0xae6, got %s", got)
	}
}

func testApplyMissingKey(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "keys", "apply", "--key", "ghost", "--value", "1")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "Key not found") || !strings.Contains(output, "rsakit keys list") {
		t.Errorf("Expected key not found message, got: %s", output)
	}
}

func testApplyNeedsKey(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "keys", "apply", "--value", "1"); err == nil {
		t.Errorf("Expected an error when neither --key nor --key-text is given")
	}
	if _, err := runCLI(t, "keys", "apply", "--key", "a", "--key-text", "11,ca1", "--value", "1"); err == nil {
		t.Errorf("Expected an error when both --key and --key-text are given")
	}
}

func testInspectStoredKey(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "keys", "generate", "look", "--bits", "48"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output, err := runCLIStdout(t, "keys", "inspect", "look", "--json")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, output)
	}
	if parsed["name"] != "look" || parsed["valid"] != true || parsed["has_private"] != true {
		t.Errorf("Unexpected inspect output: %v", parsed)
	}
	if bits, ok := parsed["bits"].(float64); !ok || bits != 48 {
		t.Errorf("Expected 48 bits, got %v", parsed["bits"])
	}
}

func testInspectInvalidKeyText(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "keys", "inspect", "--key-text", "not-a-key")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.Contains(output, "Not a valid key") {
		t.Errorf("Expected invalid key message, got: %s", output)
	}
}

func testListAndRemove(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "keys", "list")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(output, "No keys in") {
		t.Errorf("Expected empty store message, got: %s", output)
	}

	for _, name := range []string{"one", "two"} {
		if _, err := runCLI(t, "keys", "generate", name, "--bits", "32"); err != nil {
			t.Fatalf("Generate %s failed: %v", name, err)
		}
	}

	output, err = runCLI(t, "keys", "list")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(output, "one") || !strings.Contains(output, "two") {
		t.Errorf("Expected both keys listed, got: %s", output)
	}

	output, err = runCLI(t, "keys", "remove", "one")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !strings.Contains(output, "Removed key pair") {
		t.Errorf("Expected removal message, got: %s", output)
	}

	output, err = runCLI(t, "keys", "list")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if strings.Contains(output, "one ") {
		t.Errorf("Removed key still listed: %s", output)
	}

	output, err = runCLI(t, "keys", "remove", "one")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "Key not found") {
		t.Errorf("Expected key not found message, got: %s", output)
	}
}

func testLogShowsOperations(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "keys", "generate", "logged", "--bits", "32"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := runCLI(t, "keys", "apply", "--key", "logged", "--value", "7"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	output, err := runCLIStdout(t, "keys", "log", "--json")
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	var entries []audit.Entry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, output)
	}
	if len(entries) != 2 || entries[0].Operation != audit.OpGenerate || entries[1].Operation != audit.OpApply {
		t.Errorf("Unexpected log entries: %+v", entries)
	}

	output, err = runCLI(t, "keys", "log", "--since", "yesterday")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "YYYY-MM-DD") {
		t.Errorf("Expected date format message, got: %s", output)
	}
}

func testStoreFlag(t *testing.T) {
	userDir := setupTestEnvironment(t)
	custom := filepath.Join(userDir, "custom-store")

	if _, err := runCLI(t, "keys", "generate", "elsewhere", "--bits", "32", "--store", custom); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(custom, "elsewhere.pub")); err != nil {
		t.Errorf("Expected key in custom store: %v", err)
	}
	if _, err := os.Stat(filepath.Join(keysDir(userDir), "elsewhere.pub")); !os.IsNotExist(err) {
		t.Errorf("Key should not be in the default store")
	}
}
