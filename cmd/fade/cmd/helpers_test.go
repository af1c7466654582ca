package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupWorkspace isolates config and state in temp dirs, writes a project config
// whose only root holds a few fake applications, and changes into it.
func setupWorkspace(t *testing.T) (workDir, appsDir string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{"FADE_ROOTS", "FADE_EXTENSIONS", "FADE_MAX_RESULTS", "FADE_LOG_LEVEL", "NO_COLOR"} {
		t.Setenv(key, "")
	}

	appsDir = t.TempDir()
	for _, rel := range []string{"Chrome.exe", "Calculator.exe", "setup.exe", filepath.Join("tools", "Notepad.exe"), "readme.txt"} {
		path := filepath.Join(appsDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o755))
	}

	workDir = t.TempDir()
	projectCfg := "version: 1\n" +
		"scan:\n" +
		"  roots: [" + quoteYAML(appsDir) + "]\n" +
		"  extensions: [.exe]\n" +
		"logging:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".fade.yaml"), []byte(projectCfg), 0o644))
	t.Chdir(workDir)

	return workDir, appsDir
}

func quoteYAML(s string) string {
	return "'" + s + "'"
}

// executeCmd runs the root command with args and returns stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// writeProjectConfig replaces the project config in the working directory.
func writeProjectConfig(t *testing.T, content string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ".fade.yaml"), []byte(content), 0o644))
}
