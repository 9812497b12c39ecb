package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/rsakit/internal/configs"
	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/ui"
	"github.com/PolarWolf314/rsakit/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates a spinner with the given message and starts it when
// stdout is a terminal and neither verbose nor debug output is on.
// The returned cleanup function must be deferred. It prints FinalMSG, so
// callers set that instead of printing their own result lines.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	return startSpinnerWithFlags(message, verbose, debug)
}

// startSpinnerWithFlags is startSpinner for commands with their own flag variables.
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debugFlag
	animate := quiet && utils.IsTerminal(os.Stdout)
	if animate {
		s.Start()
	}
	if quiet {
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatKeyError turns a workflow error into a user-facing message.
func formatKeyError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrKeyNotFound):
		return ui.Error.Sprint("✗") + " Key not found: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rsakit keys list") + " to see stored keys"

	case errors.Is(err, kerrors.ErrKeyExists):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Pick another name or pass " + ui.Flag.Sprint("--force") + " to overwrite it"

	case errors.Is(err, kerrors.ErrInvalidKeyName):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Key names start with a letter or digit and contain only letters, digits, hyphens and underscores"

	case errors.Is(err, kerrors.ErrKeyMismatch):
		return ui.Error.Sprint("✗") + " The stored public and private keys do not belong together: " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidKey):
		return ui.Error.Sprint("✗") + " Invalid key: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Keys are written as " + ui.Code.Sprint("<hex-exponent>,<hex-modulus>")

	case errors.Is(err, kerrors.ErrInvalidValue):
		return ui.Error.Sprint("✗") + " Invalid value " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Values are non-negative integers, decimal or " + ui.Code.Sprint("0x") + "-prefixed hex"

	case errors.Is(err, kerrors.ErrGenerationFailed):
		return ui.Error.Sprint("✗") + " Key generation failed: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Try again, or raise " + ui.Code.Sprint("keygen.max_retries") + " in the config"

	case errors.Is(err, kerrors.ErrInvalidParameter),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check " + ui.Path.Sprint(configs.ConfigFilePath())

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError reports whether err should make the command exit non-zero
// in addition to printing a message.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrKeyNotFound),
		errors.Is(err, kerrors.ErrKeyExists),
		errors.Is(err, kerrors.ErrInvalidKeyName),
		errors.Is(err, kerrors.ErrInvalidKey),
		errors.Is(err, kerrors.ErrInvalidValue),
		errors.Is(err, kerrors.ErrInvalidParameter),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidConfig):
		return false
	default:
		return true
	}
}
