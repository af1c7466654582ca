package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefaultRoots_Windows(t *testing.T) {
	env := fakeEnv(map[string]string{
		"ProgramFiles":      `C:\Program Files`,
		"ProgramFiles(x86)": `C:\Program Files (x86)`,
		"LOCALAPPDATA":      `C:\Users\u\AppData\Local`,
		"APPDATA":           `C:\Users\u\AppData\Roaming`,
		"ProgramData":       `C:\ProgramData`,
		"USERPROFILE":       `C:\Users\u`,
		"PATH":              `C:\Tools;;C:\PROGRAM FILES;C:\Go\bin`,
	})

	got := defaultRoots("windows", env, "")

	// filepath.Join uses the host separator, so compare against the same joins.
	want := []string{
		`C:\Program Files`,
		`C:\Program Files (x86)`,
		filepath.Join(`C:\Users\u\AppData\Local`, "Microsoft", "WindowsApps"),
		filepath.Join(`C:\Users\u\AppData\Roaming`, "Microsoft", "Windows", "Start Menu", "Programs"),
		filepath.Join(`C:\ProgramData`, "Microsoft", "Windows", "Start Menu", "Programs"),
		filepath.Join(`C:\Users\u`, "Desktop"),
		`C:\Tools`,
		`C:\Go\bin`,
	}
	assert.Equal(t, want, got)
}

func TestDefaultRoots_Windows_MissingVariables(t *testing.T) {
	got := defaultRoots("windows", fakeEnv(map[string]string{"ProgramFiles": `C:\Program Files`}), "")

	assert.Equal(t, []string{`C:\Program Files`}, got)
}

func TestDefaultRoots_Unix(t *testing.T) {
	env := fakeEnv(map[string]string{"PATH": "/usr/local/bin:/usr/bin::/opt"})

	got := defaultRoots("linux", env, "/home/u")

	assert.Equal(t, []string{
		filepath.Join("/home/u", "Applications"),
		filepath.Join("/home/u", ".local", "bin"),
		"/opt",
		"/usr/local/bin",
		"/usr/bin",
	}, got)
}

func TestDefaultExtensions(t *testing.T) {
	assert.Equal(t, []string{".exe", ".msi", ".bat", ".cmd", ".com", ".lnk"}, defaultExtensions("windows"))
	assert.Equal(t, []string{".sh", ".appimage", ".command", ".lnk"}, defaultExtensions("darwin"))
}
