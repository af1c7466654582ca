package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultExtensions returns the launchable extensions for the current platform.
func DefaultExtensions() []string {
	return defaultExtensions(runtime.GOOS)
}

func defaultExtensions(goos string) []string {
	if goos == "windows" {
		return []string{".exe", ".msi", ".bat", ".cmd", ".com", ".lnk"}
	}
	return []string{".sh", ".appimage", ".command", ".lnk"}
}

// DefaultRoots returns the platform's application folders followed by every PATH entry.
func DefaultRoots() []string {
	home, _ := os.UserHomeDir()
	return defaultRoots(runtime.GOOS, os.Getenv, home)
}

func defaultRoots(goos string, getenv func(string) string, home string) []string {
	var roots []string
	add := func(base string, elem ...string) {
		if base == "" {
			return
		}
		roots = append(roots, filepath.Join(append([]string{base}, elem...)...))
	}

	if goos == "windows" {
		startMenu := []string{"Microsoft", "Windows", "Start Menu", "Programs"}
		add(getenv("ProgramFiles"))
		add(getenv("ProgramFiles(x86)"))
		add(getenv("LOCALAPPDATA"), "Microsoft", "WindowsApps")
		add(getenv("APPDATA"), startMenu...)
		add(getenv("ProgramData"), startMenu...)
		add(getenv("USERPROFILE"), "Desktop")
	} else {
		add(home, "Applications")
		add(home, ".local", "bin")
		add("/opt")
	}

	roots = append(roots, pathEntries(goos, getenv("PATH"))...)
	return dedupRootsFor(goos, roots)
}

// pathEntries splits a PATH value using the separator of goos.
func pathEntries(goos, path string) []string {
	sep := ":"
	if goos == "windows" {
		sep = ";"
	}
	var out []string
	for _, p := range strings.Split(path, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupRoots(roots []string) []string {
	return dedupRootsFor(runtime.GOOS, roots)
}

// dedupRootsFor drops repeated roots, keeping the first. Windows paths compare
// case-insensitively.
func dedupRootsFor(goos string, roots []string) []string {
	seen := make(map[string]struct{}, len(roots))
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		key := filepath.Clean(r)
		if goos == "windows" {
			key = strings.ToLower(strings.TrimRight(key, `\/`))
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
