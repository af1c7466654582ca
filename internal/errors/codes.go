// Package errors provides structured error handling for fade.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Filesystem errors (scan entries, roots)
//   - 3XX: Process errors (launching targets)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryFS indicates filesystem traversal errors.
	CategoryFS Category = "FS"
	// CategoryProcess indicates process creation errors.
	CategoryProcess Category = "PROCESS"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid    = "ERR_102_CONFIG_INVALID"
	ErrCodeConfigPermission = "ERR_103_CONFIG_PERMISSION"

	// Filesystem errors (200-299)
	ErrCodeScanEntry   = "ERR_201_SCAN_ENTRY"
	ErrCodeRootMissing = "ERR_202_ROOT_MISSING"

	// Process errors (300-399)
	ErrCodeLaunchFailed = "ERR_301_LAUNCH_FAILED"
	ErrCodeInstanceHeld = "ERR_302_INSTANCE_HELD"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidPath  = "ERR_402_INVALID_PATH"
	ErrCodeUnknownPath  = "ERR_403_UNKNOWN_PATH"

	// Internal errors (500-599)
	ErrCodeInternal        = "ERR_501_INTERNAL"
	ErrCodeLockUnavailable = "ERR_502_LOCK_UNAVAILABLE"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryFS
	case '3':
		return CategoryProcess
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}
