package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Aman-CERP/fade/internal/lock"
)

var defaultLookPath = exec.LookPath

// CheckRoots reports which scan roots are missing or unreadable.
// Some missing roots warn; no usable root at all fails.
func (c *Checker) CheckRoots(ctx context.Context, roots []string) CheckResult {
	result := CheckResult{
		Name:     "roots",
		Required: true,
	}

	if len(roots) == 0 {
		result.Status = StatusFail
		result.Message = "no roots configured"
		result.Details = "Add folders under roots: in .fade.yaml"
		return result
	}

	var bad []string
	for _, root := range roots {
		if ctx.Err() != nil {
			break
		}
		if err := readableDir(root); err != nil {
			bad = append(bad, fmt.Sprintf("%s (%v)", root, err))
		}
	}

	usable := len(roots) - len(bad)
	switch {
	case usable == 0:
		result.Status = StatusFail
		result.Message = fmt.Sprintf("none of %d roots are readable", len(roots))
	case len(bad) > 0:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%d of %d roots readable", usable, len(roots))
	default:
		result.Status = StatusPass
		result.Message = fmt.Sprintf("%d roots readable", len(roots))
	}
	result.Details = strings.Join(bad, "; ")
	return result
}

func readableDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("missing")
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// CheckInstanceLock warns when another launcher window holds the lock.
func (c *Checker) CheckInstanceLock(dir string) CheckResult {
	result := CheckResult{Name: "instance_lock"}

	l := lock.New(dir)
	acquired, err := l.TryLock()
	switch {
	case err != nil:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("cannot open lock file: %v", err)
	case !acquired:
		result.Status = StatusWarn
		result.Message = "held by a running launcher"
		result.Details = l.Path()
	default:
		_ = l.Unlock()
		result.Status = StatusPass
		result.Message = "free"
	}
	return result
}

// CheckOpenHelper looks for the program that opens shortcuts on this OS.
func (c *Checker) CheckOpenHelper() CheckResult {
	result := CheckResult{Name: "open_helper"}

	helper := openHelper()
	if _, err := c.lookPath(helper); err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%s not found in PATH", helper)
		result.Details = "Shortcut (.lnk) entries will fail to launch"
		return result
	}

	result.Status = StatusPass
	result.Message = helper
	return result
}

func openHelper() string {
	switch runtime.GOOS {
	case "windows":
		return "cmd"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}
