//go:build windows

package preflight

// CheckFileDescriptors is a no-op on Windows.
func (c *Checker) CheckFileDescriptors() CheckResult {
	return CheckResult{Name: "file_descriptors", Status: StatusPass, Message: "not applicable"}
}
