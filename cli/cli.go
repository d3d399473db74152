// Package cli provides the kong-driven command-line interface for the
// back-office toolkit: arbitrage detection, sweep-line balance reporting,
// and payment allocation, each as a kong subcommand. Adapted from the
// teacher's cli package, which provides the same shared
// styling/prompt/file-input plumbing for a beancount parser/formatter CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render(successSymbol), message)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", errorStyle.Render(errorSymbol), errorStyle.Render(message))
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n", infoStyle.Render(infoSymbol), formatted)
}

// promptYesNo prompts the user with a yes/no question. Returns false by
// default if stdin is not a terminal.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// FileOrStdin accepts either a file path or "-" for stdin, the way every
// subcommand's input document (currency quotes, balance changes, debt
// buckets) is supplied.
type FileOrStdin struct {
	Filename string
	Contents []byte
}

// Decode implements kong.MapperValue.
func (f *FileOrStdin) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}

	if filename == "-" || filename == "" {
		f.Filename = "-"
		return nil
	}

	if _, err := os.Stat(filename); err != nil {
		return err
	}
	f.Filename = filename
	f.Contents = nil
	return nil
}

// EnsureContents populates Contents from the file (or stdin if Filename is
// empty).
func (f *FileOrStdin) EnsureContents() error {
	if f.Filename == "" || f.Filename == "-" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		f.Filename = "<stdin>"
		f.Contents = contents
		return nil
	}
	if f.Contents == nil {
		contents, err := os.ReadFile(f.Filename)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Filename, err)
		}
		f.Contents = contents
	}
	return nil
}

// GetAbsoluteFilename returns the absolute path, or "<stdin>" for stdin.
func (f *FileOrStdin) GetAbsoluteFilename() string {
	if f.Filename == "<stdin>" || f.Filename == "" || f.Filename == "-" {
		return "<stdin>"
	}
	absPath, err := filepath.Abs(f.Filename)
	if err != nil {
		return f.Filename
	}
	return absPath
}

// DecodeJSON unmarshals the file's contents into v, wrapping any decode
// error with the filename for context.
func (f *FileOrStdin) DecodeJSON(v interface{}) error {
	if err := f.EnsureContents(); err != nil {
		return err
	}
	if err := json.Unmarshal(f.Contents, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", f.GetAbsoluteFilename(), err)
	}
	return nil
}
