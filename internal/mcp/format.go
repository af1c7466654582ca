package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/fade/internal/catalog"
)

// FormatSearchResults formats ranked applications as markdown.
func FormatSearchResults(query string, results []catalog.Candidate) string {
	if len(results) == 0 {
		return fmt.Sprintf("No applications found for \"%s\"", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Applications matching \"%s\"\n\n", query)
	writeCount(&sb, len(results))
	for i, c := range results {
		formatApp(&sb, i+1, c, true)
	}
	return sb.String()
}

// FormatRecent formats the recent list as markdown.
func FormatRecent(results []catalog.Candidate) string {
	if len(results) == 0 {
		return "No applications indexed yet."
	}

	var sb strings.Builder
	sb.WriteString("## Recent applications\n\n")
	writeCount(&sb, len(results))
	for i, c := range results {
		formatApp(&sb, i+1, c, false)
	}
	return sb.String()
}

func writeCount(sb *strings.Builder, n int) {
	fmt.Fprintf(sb, "Found %d application", n)
	if n != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")
}

func formatApp(sb *strings.Builder, n int, c catalog.Candidate, withScore bool) {
	fmt.Fprintf(sb, "%d. **%s**", n, c.DisplayName)
	if withScore {
		fmt.Fprintf(sb, " (score %.2f)", c.Score)
	}
	fmt.Fprintf(sb, "\n   `%s`", c.Path)
	if c.Description != "" {
		fmt.Fprintf(sb, " in %s", c.Description)
	}
	sb.WriteString("\n")
}
