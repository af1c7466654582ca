package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fade/internal/catalog"
	ferrors "github.com/Aman-CERP/fade/internal/errors"
)

// fakeStarter records which primitive was used.
type fakeStarter struct {
	spawned []string
	opened  []string
	err     error
}

func (f *fakeStarter) Spawn(path string) error {
	f.spawned = append(f.spawned, path)
	return f.err
}

func (f *fakeStarter) ShellOpen(path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

type fakeRecorder struct {
	recorded []catalog.Candidate
}

func (f *fakeRecorder) RecordLaunch(c catalog.Candidate) {
	f.recorded = append(f.recorded, c)
}

func TestLauncher_Launch_Dispatch(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantShell bool
	}{
		{name: "shortcut uses shell open", path: `C:\Apps\tool.lnk`, wantShell: true},
		{name: "uppercase shortcut uses shell open", path: `C:\Apps\TOOL.LNK`, wantShell: true},
		{name: "executable spawns", path: `C:\Apps\tool.exe`, wantShell: false},
		{name: "batch file spawns", path: `C:\Apps\run.bat`, wantShell: false},
		{name: "unix binary spawns", path: "/opt/app/bin/app", wantShell: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeStarter{}
			l := New(fake, nil)

			err := l.Launch(context.Background(), tt.path)

			require.NoError(t, err)
			if tt.wantShell {
				assert.Equal(t, []string{tt.path}, fake.opened)
				assert.Empty(t, fake.spawned)
			} else {
				assert.Equal(t, []string{tt.path}, fake.spawned)
				assert.Empty(t, fake.opened)
			}
		})
	}
}

func TestLauncher_Launch_SpawnFailure(t *testing.T) {
	// Given: a starter that fails
	cause := errors.New("file not found")
	l := New(&fakeStarter{err: cause}, nil)

	// When: launching
	err := l.Launch(context.Background(), `C:\Apps\gone.exe`)

	// Then: a LaunchError carrying path and cause
	var le *LaunchError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, `C:\Apps\gone.exe`, le.Path)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ferrors.ErrCodeLaunchFailed, ferrors.GetCode(err))
	assert.Contains(t, err.Error(), "gone.exe")
}

func TestLauncher_Launch_EmptyPath(t *testing.T) {
	fake := &fakeStarter{}
	l := New(fake, nil)

	for _, path := range []string{"", "   "} {
		err := l.Launch(context.Background(), path)

		var le *LaunchError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, ferrors.ErrCodeInvalidPath, ferrors.GetCode(err))
	}
	assert.Empty(t, fake.spawned)
	assert.Empty(t, fake.opened)
}

func TestLauncher_Launch_CancelledContext(t *testing.T) {
	fake := &fakeStarter{}
	l := New(fake, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Launch(ctx, "/opt/app")

	var le *LaunchError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.spawned)
}

func TestLaunchAndRecord(t *testing.T) {
	c := catalog.Candidate{DisplayName: "Tool", Path: `C:\Apps\tool.exe`}

	t.Run("success records", func(t *testing.T) {
		rec := &fakeRecorder{}
		err := LaunchAndRecord(context.Background(), New(&fakeStarter{}, nil), rec, c)

		require.NoError(t, err)
		assert.Equal(t, []catalog.Candidate{c}, rec.recorded)
	})

	t.Run("failure leaves history unchanged", func(t *testing.T) {
		rec := &fakeRecorder{}
		err := LaunchAndRecord(context.Background(), New(&fakeStarter{err: errors.New("denied")}, nil), rec, c)

		var le *LaunchError
		require.ErrorAs(t, err, &le)
		assert.Empty(t, rec.recorded)
	})
}

func TestIsShortcut(t *testing.T) {
	assert.True(t, IsShortcut("a.lnk"))
	assert.True(t, IsShortcut("a.Lnk"))
	assert.False(t, IsShortcut("a.lnk.exe"))
	assert.False(t, IsShortcut("lnk"))
}

func TestOSStarter_Spawn_MissingFile(t *testing.T) {
	l := New(OSStarter{}, nil)

	err := l.Launch(context.Background(), filepath.Join(t.TempDir(), "missing.exe"))

	var le *LaunchError
	require.ErrorAs(t, err, &le)
}

func TestOSStarter_Spawn_RealProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell script")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	// Given: an executable script that leaves a marker
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	script := filepath.Join(dir, "app.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ntouch \""+marker+"\"\n"), 0o755))

	// When: spawning it
	err := New(OSStarter{}, nil).Launch(context.Background(), script)

	// Then: Launch returns immediately and the child eventually runs
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, statErr := os.Stat(marker)
		return statErr == nil
	}, 5*time.Second, 10*time.Millisecond)
}
