// Package output provides consistent CLI output for fade's one-shot commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/fade/internal/catalog"
)

// Writer provides formatted output for the CLI.
// Errors from writing are intentionally ignored for console output.
type Writer struct {
	out io.Writer
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints a status message with an icon.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Candidates prints a numbered result list. Scores are shown when withScore is set.
func (w *Writer) Candidates(results []catalog.Candidate, withScore bool) {
	if len(results) == 0 {
		w.Status("", "No matches.")
		return
	}

	nameWidth := 0
	for _, c := range results {
		nameWidth = max(nameWidth, len(c.DisplayName))
	}

	for i, c := range results {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d. %-*s", i+1, nameWidth, c.DisplayName)
		if withScore {
			fmt.Fprintf(&sb, "  %7.2f", c.Score)
		}
		fmt.Fprintf(&sb, "  %s", c.Path)
		if c.Description != "" {
			fmt.Fprintf(&sb, "  (%s)", c.Description)
		}
		_, _ = fmt.Fprintln(w.out, strings.TrimRight(sb.String(), " "))
	}
}

// JSON writes v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Progress prints an in-place progress bar with message.
func (w *Writer) Progress(current, total int, msg string) {
	if total <= 0 {
		return
	}

	pct := float64(current) / float64(total) * 100
	_, _ = fmt.Fprintf(w.out, "\r[%s] %.0f%% %s", renderProgressBar(current, total, 30), pct, msg)

	if current >= total {
		_, _ = fmt.Fprintln(w.out)
	}
}

// renderProgressBar creates a text progress bar.
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}

	filled := int(float64(current) / float64(total) * float64(width))
	filled = min(max(filled, 0), width)

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
