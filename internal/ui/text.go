package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI content. With colors enabled it paints the
// text; without, it wraps the text in plain-text markers.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprint renders the arguments as fmt.Sprint would join them.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf renders the formatted string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

// EnsureNewline appends a newline unless s already ends with one.
func EnsureNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s
	}
	return s + "\n"
}

// noColor reports whether output should stay plain: NO_COLOR is set
// (https://no-color.org/) or fatih/color decided the terminal cannot do color.
func noColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

var (
	// Code is for commands to run: yellow, or `backticks`.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path is for files and directories: yellow, or bare.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag is for flag names such as --bits: yellow, or bare.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Success marks completed operations: green, or bare.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error marks failures: red, or bare.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning marks things the user should look at: yellow, or bare.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info marks hints and next steps: cyan, or bare.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight is for user-supplied values: cyan, or 'quotes'.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted is for secondary detail: gray, or (parentheses).
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}

	// Key is for key names and key text: magenta, or <angle brackets>.
	Key = Formatter{color.New(color.FgMagenta), "<", ">"}
)

// Truncate shortens s to at most max runes, ending in "..." when cut.
// A max of zero or less leaves s alone.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
