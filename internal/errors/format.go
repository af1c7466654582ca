package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// FormatForCLI formats an error for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	var fe *FadeError
	if !stderrors.As(err, &fe) {
		fe = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "Error: %s\n", fe.Message)
	if fe.Suggestion != "" {
		_, _ = fmt.Fprintf(&sb, "  Hint: %s\n", fe.Suggestion)
	}
	_, _ = fmt.Fprintf(&sb, "  Code: %s\n", fe.Code)

	return sb.String()
}

// LogAttrs returns slog attributes describing err, details sorted by key.
func LogAttrs(err error) []slog.Attr {
	if err == nil {
		return nil
	}

	var fe *FadeError
	if !stderrors.As(err, &fe) {
		return []slog.Attr{slog.String("error", err.Error())}
	}

	attrs := []slog.Attr{
		slog.String("error_code", fe.Code),
		slog.String("error", fe.Message),
		slog.String("category", string(fe.Category)),
	}
	if fe.Cause != nil {
		attrs = append(attrs, slog.String("cause", fe.Cause.Error()))
	}

	keys := make([]string, 0, len(fe.Details))
	for k := range fe.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.String("detail_"+k, fe.Details[k]))
	}

	return attrs
}
