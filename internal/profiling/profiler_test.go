package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiler_CPUAndTrace(t *testing.T) {
	// Given: a profiler with CPU and trace running
	dir := t.TempDir()
	cpuPath := filepath.Join(dir, "cpu.prof")
	tracePath := filepath.Join(dir, "trace.out")

	p := NewProfiler()
	require.NoError(t, p.StartCPU(cpuPath))
	require.NoError(t, p.StartTrace(tracePath))

	// When: stopping
	p.Stop()
	p.Stop()

	// Then: both files have content
	for _, path := range []string{cpuPath, tracePath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), path)
	}
}

func TestProfiler_WriteHeap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.prof")

	require.NoError(t, NewProfiler().WriteHeap(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestProfiler_BadPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "dir", "x.prof")
	p := NewProfiler()

	assert.Error(t, p.StartCPU(bad))
	assert.Error(t, p.StartTrace(bad))
	assert.Error(t, p.WriteHeap(bad))
	p.Stop()
}
