package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/fade/internal/catalog"
	ferrors "github.com/Aman-CERP/fade/internal/errors"
)

// Scanner discovers launch targets in a set of root directories.
type Scanner struct {
	logger *slog.Logger
}

// New creates a Scanner. A nil logger means slog.Default().
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// rootResult is what one root walk produced, in walk order.
type rootResult struct {
	candidates []catalog.Candidate
	stats      Stats
}

// Scan walks every root and returns the deduplicated, sorted snapshot.
// Per-entry failures and missing roots are skipped; the scan always returns whatever
// it could read. Cancelling ctx stops the walk early with a partial snapshot.
func (s *Scanner) Scan(ctx context.Context, opts Options) ([]catalog.Candidate, Stats) {
	start := time.Now()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	deny := opts.ExcludePatterns
	if deny == nil {
		deny = DefaultExcludePatterns
	}
	deny = lowerAll(deny)

	// Each root fills its own slot so merging can follow root order regardless
	// of which walk finished first.
	results := make([]rootResult, len(opts.Roots))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, root := range opts.Roots {
		g.Go(func() error {
			results[i] = s.walkRoot(gctx, root, exts, deny)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(opts.Roots))
			}
			return nil
		})
	}
	_ = g.Wait()

	snapshot, stats := merge(results)
	stats.Roots = len(opts.Roots)
	stats.Duration = time.Since(start)

	s.logger.Info("scan complete",
		slog.Int("roots", stats.Roots),
		slog.Int("missing_roots", stats.MissingRoots),
		slog.Int("count", stats.Accepted),
		slog.Int("denied", stats.Denied),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("errors", stats.Errors),
		slog.Duration("duration", stats.Duration))

	return snapshot, stats
}

// merge dedups root results in order and sorts the survivors by display name.
func merge(results []rootResult) ([]catalog.Candidate, Stats) {
	var stats Stats
	seenNames := make(map[string]struct{})
	seenPaths := make(map[string]struct{})
	var out []catalog.Candidate

	for _, r := range results {
		stats.add(r.stats)
		for _, c := range r.candidates {
			key := c.Key()
			if _, dup := seenNames[key]; dup {
				stats.Duplicates++
				continue
			}
			if _, dup := seenPaths[c.Path]; dup {
				stats.Duplicates++
				continue
			}
			seenNames[key] = struct{}{}
			seenPaths[c.Path] = struct{}{}
			out = append(out, c)
		}
	}

	slices.SortStableFunc(out, catalog.Compare)
	stats.Accepted = len(out)
	return out, stats
}

// walkRoot collects qualifying entries below root in lexical walk order.
func (s *Scanner) walkRoot(ctx context.Context, root string, exts map[string]struct{}, deny []string) rootResult {
	var res rootResult

	absRoot, err := filepath.Abs(root)
	if err != nil {
		res.stats.Errors++
		s.logEntryError(root, root, err)
		return res
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		res.stats.MissingRoots++
		s.logger.Debug("skipping root",
			slog.String("error_code", ferrors.ErrCodeRootMissing),
			slog.String("root", absRoot))
		return res
	}

	// WalkDir does not descend into a root that is itself a link, so walk
	// its target. Links below the root are still never followed.
	walkDir := absRoot
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		walkDir = resolved
	}

	s.logger.Debug("scanning root", slog.String("root", absRoot), slog.String("walk_dir", walkDir))

	err = filepath.WalkDir(walkDir, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Unreadable directory or entry; skip it and keep walking.
			res.stats.Errors++
			s.logEntryError(absRoot, path, walkErr)
			if d != nil && d.IsDir() && path != walkDir {
				return filepath.SkipDir
			}
			return nil
		}

		if path == walkDir {
			return nil
		}

		depth := entryDepth(walkDir, path)

		if d.IsDir() {
			if depth >= MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		res.stats.Visited++

		// Symlinks, devices, sockets and the like are not launch targets.
		if !d.Type().IsRegular() {
			return nil
		}

		if _, ok := exts[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		name := catalog.CleanName(d.Name())
		if name == "" {
			res.stats.Errors++
			s.logEntryError(absRoot, path, errMalformedName)
			return nil
		}

		if isDenied(name, deny) {
			res.stats.Denied++
			return nil
		}

		shown := rootedPath(absRoot, walkDir, path)
		res.candidates = append(res.candidates, catalog.Candidate{
			DisplayName: name,
			Path:        shown,
			Description: describe(shown, depth),
		})
		return nil
	})

	if err != nil && ctx.Err() == nil {
		res.stats.Errors++
		s.logEntryError(absRoot, absRoot, err)
	}

	return res
}

// logEntryError records a per-entry failure. These never abort a scan.
func (s *Scanner) logEntryError(root, path string, err error) {
	fe := ferrors.New(ferrors.ErrCodeScanEntry, "skipping unreadable entry", err).
		WithDetail("root", root).
		WithDetail("path", path)
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "scan entry skipped", ferrors.LogAttrs(fe)...)
}

// errMalformedName marks files whose name cleans down to nothing.
var errMalformedName = errors.New("file name has no usable characters")

// entryDepth returns how many levels path sits below root (direct children are 1).
func entryDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return MaxDepth + 1
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// rootedPath re-expresses path, found under walkDir, below the configured root.
func rootedPath(root, walkDir, path string) string {
	if root == walkDir {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(walkDir, path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(root, rel)
}

// describe returns the containing folder name for entries nested below the root.
func describe(path string, depth int) string {
	if depth < 2 {
		return ""
	}
	return filepath.Base(filepath.Dir(path))
}

// isDenied reports whether the lowercased display name contains a denylist token.
func isDenied(displayName string, deny []string) bool {
	lower := strings.ToLower(displayName)
	for _, token := range deny {
		if token != "" && strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.ToLower(v)
	}
	return out
}
