package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Entry is one parsed JSON log line.
type Entry struct {
	Time  time.Time
	Level string
	Msg   string
	Attrs map[string]any
	Raw   string
	Valid bool
}

// ParseLine parses a JSON log line. Lines that are not JSON come back with Valid false.
func ParseLine(line string) Entry {
	entry := Entry{Raw: line}

	var data map[string]any
	if err := json.Unmarshal([]byte(line), &data); err != nil {
		return entry
	}
	entry.Valid = true

	if t, ok := data["time"].(string); ok {
		entry.Time, _ = time.Parse(time.RFC3339Nano, t)
	}
	entry.Level, _ = data["level"].(string)
	entry.Msg, _ = data["msg"].(string)

	entry.Attrs = make(map[string]any, len(data))
	for k, v := range data {
		switch k {
		case "time", "level", "msg":
		default:
			entry.Attrs[k] = v
		}
	}
	return entry
}

// Tail returns the last n entries of path at or above minLevel.
func Tail(path string, n int, minLevel string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return tailReader(f, n, minLevel)
}

func tailReader(r io.Reader, n int, minLevel string) ([]Entry, error) {
	threshold := ParseLevel(minLevel)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []Entry
	for sc.Scan() {
		e := ParseLine(sc.Text())
		if e.Valid && minLevel != "" && ParseLevel(e.Level) < threshold {
			continue
		}
		entries = append(entries, e)
		if n > 0 && len(entries) > n {
			entries = entries[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return entries, nil
}

var levelStyles = map[string]lipgloss.Style{
	"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

// FormatEntry renders e on one line with attributes sorted by key.
func FormatEntry(e Entry, noColor bool) string {
	if !e.Valid {
		return e.Raw
	}

	level := fmt.Sprintf("%-5s", strings.ToUpper(e.Level))
	if style, ok := levelStyles[strings.TrimSpace(level)]; ok && !noColor {
		level = style.Render(level)
	}

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	sb.WriteString(e.Time.Format("15:04:05.000"))
	sb.WriteString(" ")
	sb.WriteString(level)
	sb.WriteString(" ")
	sb.WriteString(e.Msg)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, e.Attrs[k])
	}
	return sb.String()
}
