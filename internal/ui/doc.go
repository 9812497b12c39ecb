// Package ui renders rsakit's terminal output.
//
// Each Formatter stands for a kind of content rather than a color, so
// commands say what they print and the package decides how it looks:
//
//	ui.Success.Sprint("✓") + " Generated key pair " + ui.Key.Sprint("deploy")
//	ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rsakit keys list")
//	"public: " + ui.Path.Sprint(store.PublicKeyPath("deploy"))
//
// Output is plain when NO_COLOR is set or the terminal cannot show color.
// Formatters whose meaning would otherwise be lost then add markers: Code
// uses backticks, Highlight single quotes, Muted parentheses and Key angle
// brackets.
package ui
