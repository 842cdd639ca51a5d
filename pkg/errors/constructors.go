package errors

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Input Errors
// -----------------------------------------------------------------------------

// NotInteger creates an INPUT_NOT_INTEGER error for a prompt answer that
// could not be parsed as an index.
func NotInteger(value string) *CSVPlotError {
	return New(ErrInputNotInteger, CategoryInput, "Invalid input. Please enter a valid index.").
		WithContext("input", value)
}

// IndexOutOfRange creates an INPUT_INDEX_OUT_OF_RANGE error for an index
// outside [0, count).
func IndexOutOfRange(index, count int) *CSVPlotError {
	return New(ErrInputIndexOutOfRange, CategoryInput, "Invalid index. Please enter a valid index.").
		WithContext("index", fmt.Sprintf("%d", index)).
		WithContext("valid_range", validRange(count))
}

// ColumnOutOfRange creates an INPUT_INDEX_OUT_OF_RANGE error for a column
// reference that does not exist in the loaded table.
func ColumnOutOfRange(index, count int) *CSVPlotError {
	return Newf(ErrInputIndexOutOfRange, CategoryInput, "Column index %d not found in the dataset.", index).
		WithContext("index", fmt.Sprintf("%d", index)).
		WithContext("valid_range", validRange(count))
}

// ColumnPairNotFound creates the error reported when either axis of a
// comparison does not exist in the loaded table.
func ColumnPairNotFound(x, y, count int) *CSVPlotError {
	return New(ErrInputIndexOutOfRange, CategoryInput, "One or both of the columns not found in the dataset.").
		WithContext("x", fmt.Sprintf("%d", x)).
		WithContext("y", fmt.Sprintf("%d", y)).
		WithContext("valid_range", validRange(count))
}

// NoColumns creates an INPUT_NO_COLUMNS error.
func NoColumns() *CSVPlotError {
	return New(ErrInputNoColumns, CategoryInput, "No columns selected.")
}

// InputAborted creates an INPUT_ABORTED error.
func InputAborted(cause error) *CSVPlotError {
	return Wrap(cause, ErrInputAborted, CategoryInput, "input closed before the prompt was answered")
}

func validRange(count int) string {
	if count <= 0 {
		return "none"
	}
	return fmt.Sprintf("0-%d", count-1)
}

// -----------------------------------------------------------------------------
// Table Errors
// -----------------------------------------------------------------------------

// NoCSVFiles creates a TABLE_NO_CSV_FILES error.
func NoCSVFiles(dir string) *CSVPlotError {
	return New(ErrTableNoCSVFiles, CategoryTable, "No CSV files found in the current directory.").
		WithContext("dir", dir)
}

// TableNotLoaded creates a TABLE_NOT_LOADED error.
func TableNotLoaded() *CSVPlotError {
	return New(ErrTableNotLoaded, CategoryTable, "Please load a CSV file first.")
}

// TableParseFailed creates a TABLE_PARSE_FAILED error.
func TableParseFailed(path string, cause error) *CSVPlotError {
	return AttachSuggestions(Wrap(cause, ErrTableParseFailed, CategoryTable, "failed to parse CSV file").
		WithContext("path", path))
}

// TableListFailed creates a TABLE_LIST_FAILED error.
func TableListFailed(dir string, cause error) *CSVPlotError {
	return Wrap(cause, ErrTableListFailed, CategoryTable, "failed to list directory").
		WithContext("dir", dir)
}

// -----------------------------------------------------------------------------
// Plot Errors
// -----------------------------------------------------------------------------

// InvalidPlotKind creates a PLOT_INVALID_KIND error listing the supported kinds.
func InvalidPlotKind(kind string, supported []string) *CSVPlotError {
	quoted := make([]string, len(supported))
	for i, s := range supported {
		quoted[i] = "'" + s + "'"
	}
	return New(ErrPlotInvalidKind, CategoryPlot,
		"Invalid plot type. Supported types: "+strings.Join(quoted, ", ")).
		WithContext("kind", kind)
}

// NonNumericColumn creates a PLOT_NON_NUMERIC error.
func NonNumericColumn(column, colType string) *CSVPlotError {
	return AttachSuggestions(Newf(ErrPlotNonNumeric, CategoryPlot, "column %q is not numeric", column).
		WithContext("column", column).
		WithContext("type", colType))
}

// RenderFailed creates a PLOT_RENDER_FAILED error.
func RenderFailed(title string, cause error) *CSVPlotError {
	return AttachSuggestions(Wrap(cause, ErrPlotRenderFailed, CategoryPlot, "failed to render chart").
		WithContext("title", title))
}

// RegressionFailed creates a PLOT_REGRESSION_FAILED error.
func RegressionFailed(reason string) *CSVPlotError {
	return New(ErrPlotRegressionFailed, CategoryPlot, "cannot compute best-fit line: "+reason)
}

// -----------------------------------------------------------------------------
// Export Errors
// -----------------------------------------------------------------------------

// ExportInvalidFormat creates an EXPORT_INVALID_FORMAT error.
func ExportInvalidFormat(format string, validFormats []string) *CSVPlotError {
	err := Newf(ErrExportInvalidFormat, CategoryExport, "invalid export format: %s", format).
		WithContext("format", format)
	if len(validFormats) > 0 {
		err.WithContext("valid_formats", strings.Join(validFormats, ", "))
		err.WithSuggestion("Valid formats: " + strings.Join(validFormats, ", "))
	}
	return err
}

// ExportWriteFailed creates an EXPORT_WRITE_FAILED error.
func ExportWriteFailed(path, format string, cause error) *CSVPlotError {
	return AttachSuggestions(Wrap(cause, ErrExportWriteFailed, CategoryExport, "failed to write export file").
		WithContext("path", path).
		WithContext("format", format))
}

// ExportEncodeFailed creates an EXPORT_ENCODE_FAILED error.
func ExportEncodeFailed(format string, cause error) *CSVPlotError {
	return Wrap(cause, ErrExportEncodeFailed, CategoryExport, "failed to encode chart").
		WithContext("format", format)
}

// -----------------------------------------------------------------------------
// Viewer Errors
// -----------------------------------------------------------------------------

// ViewerLaunchFailed creates a VIEWER_LAUNCH_FAILED error.
func ViewerLaunchFailed(command string, cause error) *CSVPlotError {
	return AttachSuggestions(Wrap(cause, ErrViewerLaunchFailed, CategoryViewer, "failed to open chart window").
		WithContext("command", command))
}

// ViewerExited creates a VIEWER_EXITED error.
func ViewerExited(command string, cause error) *CSVPlotError {
	return AttachSuggestions(Wrap(cause, ErrViewerExited, CategoryViewer, "chart window exited with an error").
		WithContext("command", command))
}

// ViewerImageInvalid creates a VIEWER_IMAGE_INVALID error.
func ViewerImageInvalid(path string, cause error) *CSVPlotError {
	return Wrap(cause, ErrViewerImageInvalid, CategoryViewer, "cannot read chart image").
		WithContext("path", path)
}

// -----------------------------------------------------------------------------
// Configuration Errors
// -----------------------------------------------------------------------------

// ConfigNotFound creates a CONFIG_NOT_FOUND error.
func ConfigNotFound(path string) *CSVPlotError {
	return AttachSuggestions(New(ErrConfigNotFound, CategoryConfig, "configuration file not found").
		WithContext("path", path))
}

// ConfigParseError creates a CONFIG_PARSE_FAILED error.
func ConfigParseError(path string, cause error) *CSVPlotError {
	return AttachSuggestions(Wrap(cause, ErrConfigParseFailed, CategoryConfig, "failed to parse configuration file").
		WithContext("path", path))
}

// ConfigInvalid creates a CONFIG_INVALID error.
func ConfigInvalid(field, reason string) *CSVPlotError {
	return Newf(ErrConfigInvalid, CategoryConfig, "invalid configuration: %s", reason).
		WithContext("field", field)
}

// ConfigReadFailed creates a CONFIG_READ_FAILED error.
func ConfigReadFailed(path string, cause error) *CSVPlotError {
	return Wrap(cause, ErrConfigReadFailed, CategoryConfig, "failed to read configuration file").
		WithContext("path", path)
}

// ConfigWriteFailed creates a CONFIG_WRITE_FAILED error.
func ConfigWriteFailed(path string, cause error) *CSVPlotError {
	return Wrap(cause, ErrConfigWriteFailed, CategoryConfig, "failed to write configuration file").
		WithContext("path", path)
}

// -----------------------------------------------------------------------------
// IO and Internal Errors
// -----------------------------------------------------------------------------

// IOReadFailed creates an IO_READ_FAILED error.
func IOReadFailed(path string, cause error) *CSVPlotError {
	return Wrap(cause, ErrIOReadFailed, CategoryIO, "failed to read file").
		WithContext("path", path)
}

// IOWriteFailed creates an IO_WRITE_FAILED error.
func IOWriteFailed(path string, cause error) *CSVPlotError {
	return AttachSuggestions(Wrap(cause, ErrIOWriteFailed, CategoryIO, "failed to write file").
		WithContext("path", path))
}

// InternalPanic creates an INTERNAL_ERROR from a recovered panic value.
func InternalPanic(recovered interface{}) *CSVPlotError {
	return AttachSuggestions(Newf(ErrInternalError, CategoryInternal, "panic recovered: %v", recovered))
}
