// Package cmd contains testing utilities shared between command tests.
// This file provides helpers for isolating user settings, capturing output,
// and running commands through a fresh root command.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/rsakit/internal/configs"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points the user settings at a temporary directory and
// returns it. The original settings are restored when the test ends.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempUserDir := t.TempDir()
	originalUserSettings := configs.UserRsakitSettings
	t.Cleanup(func() {
		configs.UserRsakitSettings = originalUserSettings
	})

	configs.UserRsakitSettings = &configs.UserSettings{
		UserKeysPath:    filepath.Join(tempUserDir, "keys"),
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
	}
	return tempUserDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to copy stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to copy stderr: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}

// captureStdout captures only stdout during function execution.
func captureStdout(fn func() error) (string, error) {
	originalStdout := os.Stdout
	reader, writer, _ := os.Pipe()
	os.Stdout = writer

	outputChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, reader); err != nil {
			log.Fatalf("Failed to copy stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	writer.Close()
	os.Stdout = originalStdout
	return <-outputChan, err
}

// newTestRoot returns a fresh root command carrying the real KeysCmd and
// ConfigCmd, with all command state reset.
func newTestRoot(args ...string) *cobra.Command {
	ResetGlobalState()
	ResetConfigState()

	rootCmd := &cobra.Command{
		Use:           "rsakit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(KeysCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI runs the given arguments and returns combined stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return newTestRoot(args...).Execute()
	})
}

// runCLIStdout runs the given arguments and returns stdout only.
func runCLIStdout(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureStdout(func() error {
		return newTestRoot(args...).Execute()
	})
}
