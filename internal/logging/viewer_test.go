package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `{"time":"2026-01-02T03:04:05.123Z","level":"DEBUG","msg":"scanning root","root":"/opt"}
{"time":"2026-01-02T03:04:06.000Z","level":"INFO","msg":"scan complete","count":12}
not json at all
{"time":"2026-01-02T03:04:07.000Z","level":"WARN","msg":"launch failed","path":"/opt/x","error_code":"ERR_301_LAUNCH_FAILED"}
`

func TestParseLine(t *testing.T) {
	e := ParseLine(`{"time":"2026-01-02T03:04:05.123Z","level":"INFO","msg":"hello","k":"v"}`)

	assert.True(t, e.Valid)
	assert.Equal(t, "INFO", e.Level)
	assert.Equal(t, "hello", e.Msg)
	assert.Equal(t, map[string]any{"k": "v"}, e.Attrs)
	assert.Equal(t, 2026, e.Time.Year())

	bad := ParseLine("plain text")
	assert.False(t, bad.Valid)
	assert.Equal(t, "plain text", bad.Raw)
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fade.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	tests := []struct {
		name     string
		n        int
		level    string
		wantMsgs []string
	}{
		{name: "all", n: 0, level: "", wantMsgs: []string{"scanning root", "scan complete", "", "launch failed"}},
		{name: "last two", n: 2, level: "", wantMsgs: []string{"", "launch failed"}},
		{name: "info and above", n: 0, level: "info", wantMsgs: []string{"scan complete", "", "launch failed"}},
		{name: "warn and above", n: 0, level: "warn", wantMsgs: []string{"", "launch failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.n, tt.level)
			require.NoError(t, err)

			msgs := make([]string, len(got))
			for i, e := range got {
				msgs[i] = e.Msg
			}
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	_, err := Tail(filepath.Join(t.TempDir(), "none.log"), 10, "")
	assert.Error(t, err)
}

func TestFormatEntry(t *testing.T) {
	entries, err := tailReader(strings.NewReader(sampleLog), 0, "")
	require.NoError(t, err)

	line := FormatEntry(entries[3], true)
	assert.Equal(t, "03:04:07.000 WARN  launch failed error_code=ERR_301_LAUNCH_FAILED path=/opt/x", line)

	assert.Equal(t, "not json at all", FormatEntry(entries[2], true))
}
