// Package ui renders styled console output and the download progress bar.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// IsTerminal reports whether stdout is attached to a TTY. Non-terminal output
// gets neither colors nor the animated progress bar.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Printer writes user-facing lines, honoring quiet mode. Errors always print.
type Printer struct {
	Quiet bool
}

func (p Printer) Successf(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Println(successStyle.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func (p Printer) Infof(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Printf(format+"\n", args...)
}

func (p Printer) Dimf(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf(format, args...)))
}

func (p Printer) Warnf(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf(format, args...)))
}

func (p Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
}
