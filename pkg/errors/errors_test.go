package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// CSVPlotError Tests
// -----------------------------------------------------------------------------

func TestNew(t *testing.T) {
	ce := New("TEST_ERROR", CategoryTable, "test message")

	assert.Equal(t, "TEST_ERROR", ce.Code)
	assert.Equal(t, CategoryTable, ce.Category)
	assert.Equal(t, "test message", ce.Message)
	assert.NotNil(t, ce.Context)
	assert.Nil(t, ce.Cause)
	assert.Nil(t, ce.Suggestions)
}

func TestCSVPlotError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CSVPlotError
		expected string
	}{
		{
			name:     "without cause",
			err:      TableNotLoaded(),
			expected: "TABLE_NOT_LOADED: Please load a CSV file first.",
		},
		{
			name:     "with cause",
			err:      Wrap(fmt.Errorf("permission denied"), ErrIOReadFailed, CategoryIO, "failed to read file"),
			expected: "IO_READ_FAILED: failed to read file: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCSVPlotError_IsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := ExportWriteFailed("default", "pdf", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, New(ErrExportWriteFailed, CategoryExport, "other message")))
	assert.False(t, errors.Is(err, New(ErrExportInvalidFormat, CategoryExport, "")))

	wrapped := fmt.Errorf("exporting: %w", err)
	ce, ok := AsCSVPlotError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrExportWriteFailed, ce.Code)
	assert.True(t, IsCode(wrapped, ErrExportWriteFailed))
	assert.True(t, IsCategory(wrapped, CategoryExport))
	assert.False(t, IsCode(cause, ErrExportWriteFailed))
}

func TestContextString(t *testing.T) {
	err := New("X", CategoryInput, "m").WithContext("b", "2").WithContext("a", "1")
	assert.Equal(t, `a="1", b="2"`, err.ContextString())
	assert.Equal(t, "", New("X", CategoryInput, "m").ContextString())
}

// -----------------------------------------------------------------------------
// Constructor Tests
// -----------------------------------------------------------------------------

func TestInputConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *CSVPlotError
		code    string
		message string
	}{
		{"not integer", NotInteger("abc"), ErrInputNotInteger, "Invalid input. Please enter a valid index."},
		{"out of range", IndexOutOfRange(5, 2), ErrInputIndexOutOfRange, "Invalid index. Please enter a valid index."},
		{"column pair", ColumnPairNotFound(0, 9, 2), ErrInputIndexOutOfRange, "One or both of the columns not found in the dataset."},
		{"no csv", NoCSVFiles("."), ErrTableNoCSVFiles, "No CSV files found in the current directory."},
		{"not loaded", TableNotLoaded(), ErrTableNotLoaded, "Please load a CSV file first."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Message)
		})
	}
}

func TestIndexOutOfRange_Context(t *testing.T) {
	err := IndexOutOfRange(3, 3)
	assert.Equal(t, "3", err.Context["index"])
	assert.Equal(t, "0-2", err.Context["valid_range"])

	assert.Equal(t, "none", IndexOutOfRange(0, 0).Context["valid_range"])
}

func TestInvalidPlotKind(t *testing.T) {
	err := InvalidPlotKind("pie", []string{"hist", "line", "bar", "box"})
	assert.Equal(t, "Invalid plot type. Supported types: 'hist', 'line', 'bar', 'box'", err.Message)
	assert.Equal(t, "pie", err.Context["kind"])

	err = InvalidPlotKind("pie", []string{"scatter", "line"})
	assert.Equal(t, "Invalid plot type. Supported types: 'scatter', 'line'", err.Message)
}

func TestExportInvalidFormat(t *testing.T) {
	err := ExportInvalidFormat("gif", []string{"pdf", "png", "svg"})
	assert.Equal(t, ErrExportInvalidFormat, err.Code)
	assert.Equal(t, "pdf, png, svg", err.Context["valid_formats"])
	assert.Contains(t, err.Suggestions, "Valid formats: pdf, png, svg")
}

func TestAllCodes_Unique(t *testing.T) {
	seen := map[string]Category{}
	for cat, codes := range AllCodes() {
		for _, code := range codes {
			prev, dup := seen[code]
			assert.False(t, dup, "code %s listed under %s and %s", code, prev, cat)
			seen[code] = cat
		}
	}
	assert.NotEmpty(t, seen)
}

// -----------------------------------------------------------------------------
// Multierror Interop
// -----------------------------------------------------------------------------

func TestMultierrorKeepsCodes(t *testing.T) {
	var merr *multierror.Error
	merr = multierror.Append(merr, ColumnOutOfRange(4, 2))
	merr = multierror.Append(merr, ColumnOutOfRange(7, 2))

	err := merr.ErrorOrNil()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrInputIndexOutOfRange))
}
