// Package console prints pfmray's status lines.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"charm.land/lipgloss/v2"
)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0AF68")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7768E")).Bold(true)
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
)

// Logger writes status to Out and problems to Err.
type Logger struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool // Enables Debugf
	NoColor bool

	mu sync.Mutex
}

// New returns a Logger on stdout and stderr.
func New() *Logger {
	return &Logger{Out: os.Stdout, Err: os.Stderr}
}

// Infof prints a status line.
func (l *Logger) Infof(format string, args ...any) {
	l.print(l.Out, infoStyle, "", format, args...)
}

// Warnf prints a warning to the error stream.
func (l *Logger) Warnf(format string, args ...any) {
	l.print(l.Err, warnStyle, "Warning: ", format, args...)
}

// Errorf prints an error to the error stream.
func (l *Logger) Errorf(format string, args ...any) {
	l.print(l.Err, errorStyle, "Error: ", format, args...)
}

// Debugf prints only when Verbose is set.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.print(l.Out, debugStyle, "", format, args...)
}

// Println writes s unstyled, e.g. a rendered preview.
func (l *Logger) Println(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.Out, s)
}

func (l *Logger) print(w io.Writer, style lipgloss.Style, prefix, format string, args ...any) {
	msg := prefix + fmt.Sprintf(format, args...)
	if !l.NoColor {
		msg = style.Render(msg)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(w, msg)
}
