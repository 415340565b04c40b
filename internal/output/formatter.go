// Package output renders user-facing CLI output on stdout: coloured status
// lines, the site list, tables and JSON. Startup diagnostics go to stderr.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects all output. nil restores os.Stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	stdout = w
}

// SetErrOutput redirects diagnostics. nil restores os.Stderr.
func SetErrOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	stderr = w
}

// Writer returns the current destination.
func Writer() io.Writer {
	return stdout
}

// JSON outputs data as JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table outputs data as a formatted table
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(stdout)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	tw.Render()
}

// Site prints one list line: a green dot and "(enabled)" for active sites,
// a yellow dot otherwise.
func Site(name string, enabled bool) {
	if enabled {
		_, _ = successColor.Fprintf(stdout, "🟢 %s (enabled)\n", name)
		return
	}
	_, _ = warnColor.Fprintf(stdout, "🟡 %s\n", name)
}

// ValidationFailed prints the nginx -t failure banner and its diagnostics.
func ValidationFailed(diagnostics string) {
	_, _ = errorColor.Fprintln(stdout, "❌ Nginx config test failed:")
	fmt.Fprint(stdout, diagnostics)
	if diagnostics != "" && !strings.HasSuffix(diagnostics, "\n") {
		fmt.Fprintln(stdout)
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(stdout, "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(stdout, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(stdout, "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(stdout, "→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format+"\n", args...)
}

// Diagnostic prints a plain "nginxtools: " prefixed message to stderr.
func Diagnostic(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "nginxtools: "+format+"\n", args...)
}
