package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fade/internal/async"
	"github.com/Aman-CERP/fade/internal/catalog"
	"github.com/Aman-CERP/fade/internal/scanner"
	"github.com/Aman-CERP/fade/internal/telemetry"
)

func newTestEngine(entries ...catalog.Candidate) *Engine {
	e := NewEngine(EngineConfig{})
	e.Replace(entries)
	return e
}

func displayNames(cs []catalog.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.DisplayName
	}
	return out
}

func TestEngine_Search_WorkedExample(t *testing.T) {
	// Given: Calculator and Chrome
	e := newTestEngine(
		catalog.Candidate{DisplayName: "Calculator", Path: `C:\calc.exe`},
		catalog.Candidate{DisplayName: "Chrome", Path: `C:\chrome.exe`},
	)

	// When: searching "ch"
	got := e.Search("ch", 10)

	// Then: only Chrome, scored prefix + contains + path + length bonus
	require.Len(t, got, 1)
	assert.Equal(t, "Chrome", got[0].DisplayName)
	assert.InDelta(t, 50+25+10+20.0/7, got[0].Score, 1e-9)

	// When: searching "c"
	got = e.Search("c", 10)

	// Then: both match, the shorter name wins on the length bonus
	assert.Equal(t, []string{"Chrome", "Calculator"}, displayNames(got))
	assert.InDelta(t, 50+25+10+20.0/11, got[1].Score, 1e-9)
}

func TestEngine_Search_TiesKeepNameOrder(t *testing.T) {
	// Given: two equally long names with identical matches, inserted out of order
	e := newTestEngine(
		catalog.Candidate{DisplayName: "Notes Two", Path: "/apps/b.exe"},
		catalog.Candidate{DisplayName: "Notes One", Path: "/apps/a.exe"},
	)

	// When: searching a shared prefix repeatedly
	for i := 0; i < 5; i++ {
		got := e.Search("notes", 10)

		// Then: equal scores keep ascending name order
		require.Len(t, got, 2)
		assert.Equal(t, got[0].Score, got[1].Score)
		assert.Equal(t, []string{"Notes One", "Notes Two"}, displayNames(got))
	}
}

func TestEngine_Search_ExactBeatsPrefixBeatsSubstring(t *testing.T) {
	e := newTestEngine(
		catalog.Candidate{DisplayName: "Xterm", Path: "/bin/xterm"},
		catalog.Candidate{DisplayName: "Terminal", Path: "/bin/terminal"},
		catalog.Candidate{DisplayName: "Term", Path: "/bin/term"},
	)

	got := e.Search("term", 10)

	assert.Equal(t, []string{"Term", "Terminal", "Xterm"}, displayNames(got))
}

func TestEngine_Search_LimitAndPositiveScores(t *testing.T) {
	var entries []catalog.Candidate
	for i := 0; i < 30; i++ {
		entries = append(entries, catalog.Candidate{
			DisplayName: fmt.Sprintf("Tool %02d", i),
			Path:        fmt.Sprintf("/apps/tool%02d", i),
		})
	}
	entries = append(entries, catalog.Candidate{DisplayName: "Unrelated", Path: "/apps/other"})
	e := newTestEngine(entries...)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "explicit limit", limit: 5, want: 5},
		{name: "limit above matches", limit: 100, want: 30},
		{name: "zero uses default", limit: 0, want: DefaultLimit},
		{name: "negative uses default", limit: -1, want: DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Search("tool", tt.limit)

			assert.Len(t, got, tt.want)
			for i, c := range got {
				assert.Positive(t, c.Score)
				if i > 0 {
					assert.GreaterOrEqual(t, got[i-1].Score, c.Score)
				}
			}
		})
	}
}

func TestEngine_Search_NoMatches(t *testing.T) {
	e := newTestEngine(catalog.Candidate{DisplayName: "Editor", Path: "/apps/editor"})

	got := e.Search("zzz", 10)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEngine_Search_EmptyQueryEqualsRecent(t *testing.T) {
	e := newTestEngine(
		catalog.Candidate{DisplayName: "Alpha", Path: "/a"},
		catalog.Candidate{DisplayName: "Beta", Path: "/b"},
	)

	// Before any launch: both fall back to the index head.
	assert.Equal(t, e.Recent(5), e.Search("", 5))

	// After a launch: both return the history.
	e.RecordLaunch(catalog.Candidate{DisplayName: "Beta", Path: "/b"})
	assert.Equal(t, e.Recent(5), e.Search("", 5))
}

func TestEngine_Search_WhitespaceQueryIsScored(t *testing.T) {
	// Given: one name containing a space and one without
	e := newTestEngine(
		catalog.Candidate{DisplayName: "Alpha", Path: "/a"},
		catalog.Candidate{DisplayName: "Vlc Media Player", Path: "/v"},
	)

	// When/Then: a lone space is a query, not a request for the recent list
	assert.Equal(t, []string{"Vlc Media Player"}, displayNames(e.Search(" ", 5)))

	// Then: surrounding spaces are part of the query
	assert.Equal(t, []string{"Vlc Media Player"}, displayNames(e.Search("media ", 5)))
	assert.Empty(t, e.Search(" alpha", 5))
}

func TestEngine_Search_CaseInsensitiveQuery(t *testing.T) {
	e := newTestEngine(catalog.Candidate{DisplayName: "Firefox", Path: "/apps/ff"})

	got := e.Search("FIRE", 10)

	require.Len(t, got, 1)
	assert.Equal(t, "Firefox", got[0].DisplayName)
}

func TestEngine_Search_ResultsAreCopies(t *testing.T) {
	e := newTestEngine(catalog.Candidate{DisplayName: "Firefox", Path: "/apps/ff"})

	first := e.Search("fire", 10)
	first[0].DisplayName = "Mutated"
	first[0].Score = -1

	second := e.Search("fire", 10)
	assert.Equal(t, "Firefox", second[0].DisplayName)
	assert.Positive(t, second[0].Score)
	assert.Zero(t, e.Recent(1)[0].Score)
}

func TestEngine_Search_ReplaceInvalidatesCache(t *testing.T) {
	e := newTestEngine(catalog.Candidate{DisplayName: "Old App", Path: "/apps/old"})
	require.Len(t, e.Search("app", 10), 1)

	e.Replace([]catalog.Candidate{
		{DisplayName: "New App", Path: "/apps/new"},
		{DisplayName: "Another App", Path: "/apps/another"},
	})

	got := e.Search("app", 10)
	assert.ElementsMatch(t, []string{"New App", "Another App"}, displayNames(got))
}

func TestEngine_Recent_FallsBackToIndexHead(t *testing.T) {
	e := newTestEngine(
		catalog.Candidate{DisplayName: "Charlie", Path: "/c"},
		catalog.Candidate{DisplayName: "alpha", Path: "/a"},
		catalog.Candidate{DisplayName: "Bravo", Path: "/b"},
	)

	assert.Equal(t, []string{"alpha", "Bravo"}, displayNames(e.Recent(2)))
}

func TestEngine_Recent_EmptyEverything(t *testing.T) {
	e := NewEngine(EngineConfig{})

	got := e.Recent(5)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEngine_RecordLaunch(t *testing.T) {
	e := newTestEngine()
	for i := 1; i <= 21; i++ {
		e.RecordLaunch(catalog.Candidate{DisplayName: fmt.Sprintf("App %d", i), Path: fmt.Sprintf("/apps/%d", i)})
	}

	got := e.Recent(100)
	require.Len(t, got, 20)
	assert.Equal(t, "App 21", got[0].DisplayName)

	e.RecordLaunch(catalog.Candidate{DisplayName: "App 5", Path: "/apps/5"})
	got = e.Recent(100)
	assert.Len(t, got, 20)
	assert.Equal(t, "App 5", got[0].DisplayName)
}

func TestEngine_Lookup(t *testing.T) {
	e := newTestEngine(catalog.Candidate{DisplayName: "Indexed", Path: "/apps/indexed"})
	e.RecordLaunch(catalog.Candidate{DisplayName: "Gone", Path: "/apps/gone"})

	c, ok := e.Lookup("/apps/indexed")
	assert.True(t, ok)
	assert.Equal(t, "Indexed", c.DisplayName)

	c, ok = e.Lookup("/apps/gone")
	assert.True(t, ok)
	assert.Equal(t, "Gone", c.DisplayName)

	_, ok = e.Lookup("/apps/unknown")
	assert.False(t, ok)
}

func TestEngine_CustomDefaults(t *testing.T) {
	e := NewEngine(EngineConfig{DefaultLimit: 2, Weights: Weights{Path: 1}})
	e.Replace([]catalog.Candidate{
		{DisplayName: "A", Path: "/opt/one"},
		{DisplayName: "B", Path: "/opt/two"},
		{DisplayName: "C", Path: "/opt/three"},
	})

	assert.Equal(t, 2, e.DefaultLimit())
	assert.Equal(t, Weights{Path: 1}, e.Weights())
	assert.Len(t, e.Search("opt", 0), 2)
	assert.Empty(t, e.Search("a", 0), "name matches carry no weight")
}

func writeExe(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o755))
	return p
}

func TestEngine_BackgroundScan_CommitsSnapshot(t *testing.T) {
	// Given: a root with two launch targets
	root := t.TempDir()
	writeExe(t, root, "Editor.exe")
	writeExe(t, root, "Vendor/Browser.exe")
	e := NewEngine(EngineConfig{Scan: scanner.Options{
		Roots:      []string{root},
		Extensions: []string{".exe"},
	}})

	// When: the background scan runs to completion
	e.StartBackgroundScan(context.Background())
	require.NoError(t, e.WaitForScan(context.Background()))

	// Then: the index holds both and status reports ready
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, []string{"Browser", "Editor"}, displayNames(e.Recent(10)))

	status := e.Status()
	assert.Equal(t, string(async.StatusReady), status.Status)
	assert.Equal(t, 2, status.Candidates)
	assert.Equal(t, uint64(1), status.Generation)
}

func TestEngine_Rescan_PicksUpNewFiles(t *testing.T) {
	root := t.TempDir()
	writeExe(t, root, "First.exe")
	e := NewEngine(EngineConfig{Scan: scanner.Options{
		Roots:      []string{root},
		Extensions: []string{".exe"},
	}})
	e.StartBackgroundScan(context.Background())
	require.NoError(t, e.WaitForScan(context.Background()))
	require.Empty(t, e.Search("second", 5))

	writeExe(t, root, "Second.exe")
	require.True(t, e.Rescan(context.Background()))
	require.NoError(t, e.WaitForScan(context.Background()))

	assert.Len(t, e.Search("second", 5), 1)
	assert.Equal(t, 2, e.Status().Cycles)
}

func TestEngine_InterruptedScanKeepsSnapshot(t *testing.T) {
	// Given: a committed snapshot
	root := t.TempDir()
	writeExe(t, root, "Fresh.exe")
	e := NewEngine(EngineConfig{Scan: scanner.Options{
		Roots:      []string{root},
		Extensions: []string{".exe"},
	}})
	e.Replace([]catalog.Candidate{{DisplayName: "Committed", Path: "/apps/committed"}})

	// When: a cycle runs with an already cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e.StartBackgroundScan(ctx)
	err := e.WaitForScan(context.Background())

	// Then: nothing was committed
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"Committed"}, displayNames(e.Recent(5)))
	assert.Equal(t, string(async.StatusError), e.Status().Status)
}

func TestEngine_ReadsDuringScanSeeCommittedState(t *testing.T) {
	e := newTestEngine(catalog.Candidate{DisplayName: "Committed", Path: "/apps/committed"})

	// Status before any cycle is idle and search still works.
	assert.Equal(t, string(async.StatusIdle), e.Status().Status)
	assert.Len(t, e.Search("comm", 5), 1)
}

func TestEngine_Guard_RecoversToEmptyResult(t *testing.T) {
	// Given: an engine whose shared state is unusable
	e := &Engine{logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))}

	// When/Then: every reader returns an empty result instead of panicking
	assert.NotPanics(t, func() {
		got := e.Search("anything", 5)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
	assert.NotPanics(t, func() {
		assert.Empty(t, e.Recent(5))
	})
	assert.NotPanics(t, func() {
		e.RecordLaunch(catalog.Candidate{Path: "/x"})
	})
}

func TestEngine_Search_RecordsMetrics(t *testing.T) {
	// Given: an engine with a metrics collector
	m := telemetry.NewQueryMetrics(telemetry.DefaultConfig())
	e := NewEngine(EngineConfig{}, WithMetrics(m))
	e.Replace([]catalog.Candidate{{DisplayName: "Chrome", Path: "/apps/chrome.exe"}})

	// When: searching twice, once without matches, plus an empty query
	e.Search("chrome", 5)
	e.Search("zzz", 5)
	e.Search("", 5)

	// Then: only the non-empty queries are counted
	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalQueries)
	assert.Equal(t, []string{"zzz"}, snap.ZeroResultQueries)
}
