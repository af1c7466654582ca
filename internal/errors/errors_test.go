package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFadeError_Unwrap_PreservesCause(t *testing.T) {
	// Given: an underlying OS error
	cause := stderrors.New("permission denied")

	// When: wrapping it
	err := New(ErrCodeLaunchFailed, "cannot start tool.exe", cause)

	// Then: the chain is preserved
	require.NotNil(t, err)
	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.True(t, stderrors.Is(err, cause))
}

func TestFadeError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{"config", ErrCodeConfigInvalid, "bad yaml", "[ERR_102_CONFIG_INVALID] bad yaml"},
		{"scan entry", ErrCodeScanEntry, "unreadable", "[ERR_201_SCAN_ENTRY] unreadable"},
		{"launch", ErrCodeLaunchFailed, "spawn failed", "[ERR_301_LAUNCH_FAILED] spawn failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.code, tt.message, nil).Error())
		})
	}
}

func TestFadeError_Is_MatchesByCode(t *testing.T) {
	a := New(ErrCodeUnknownPath, "a", nil)
	b := New(ErrCodeUnknownPath, "b", nil)
	c := New(ErrCodeInvalidPath, "c", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestCategory_DerivedFromCode(t *testing.T) {
	tests := []struct {
		code     string
		category Category
	}{
		{ErrCodeConfigPermission, CategoryConfig},
		{ErrCodeScanEntry, CategoryFS},
		{ErrCodeRootMissing, CategoryFS},
		{ErrCodeLaunchFailed, CategoryProcess},
		{ErrCodeInvalidInput, CategoryValidation},
		{ErrCodeLockUnavailable, CategoryInternal},
		{"BAD", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.category, New(tt.code, "msg", nil).Category)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError("query cannot be empty", nil)

	assert.Equal(t, ErrCodeInvalidInput, err.Code)
	assert.Equal(t, CategoryValidation, err.Category)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestGetCode_FindsWrappedFadeError(t *testing.T) {
	inner := New(ErrCodeInvalidPath, "empty path", nil)
	outer := fmt.Errorf("launch: %w", inner)

	assert.Equal(t, ErrCodeInvalidPath, GetCode(outer))
	assert.Equal(t, "", GetCode(stderrors.New("plain")))
}

func TestFormatForCLI(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "max_results must be positive", nil).
		WithSuggestion("edit ~/.config/fade/config.yaml")

	out := FormatForCLI(err)

	assert.Contains(t, out, "Error: max_results must be positive")
	assert.Contains(t, out, "Hint: edit ~/.config/fade/config.yaml")
	assert.Contains(t, out, "Code: ERR_102_CONFIG_INVALID")
	assert.Contains(t, FormatForCLI(stderrors.New("boom")), "ERR_501_INTERNAL")
	assert.Empty(t, FormatForCLI(nil))
}

func TestLogAttrs(t *testing.T) {
	err := New(ErrCodeScanEntry, "unreadable entry", stderrors.New("EACCES")).
		WithDetail("root", "/opt").
		WithDetail("path", "/opt/x")

	attrs := LogAttrs(err)

	require.Len(t, attrs, 6)
	assert.Equal(t, "error_code", attrs[0].Key)
	assert.Equal(t, ErrCodeScanEntry, attrs[0].Value.String())
	assert.Equal(t, "cause", attrs[3].Key)
	// details sorted by key
	assert.Equal(t, "detail_path", attrs[4].Key)
	assert.Equal(t, "detail_root", attrs[5].Key)

	plain := LogAttrs(stderrors.New("x"))
	require.Len(t, plain, 1)
	assert.Equal(t, "error", plain[0].Key)
	assert.Nil(t, LogAttrs(nil))
}
