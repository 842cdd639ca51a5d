package errors

// -----------------------------------------------------------------------------
// Input Error Codes
// -----------------------------------------------------------------------------
// Use these codes for values typed at a menu prompt.

const (
	// ErrInputNotInteger indicates an index prompt received a non-integer.
	ErrInputNotInteger = "INPUT_NOT_INTEGER"

	// ErrInputIndexOutOfRange indicates an index outside the valid range.
	ErrInputIndexOutOfRange = "INPUT_INDEX_OUT_OF_RANGE"

	// ErrInputNoColumns indicates a plot was requested with an empty column list.
	ErrInputNoColumns = "INPUT_NO_COLUMNS"

	// ErrInputAborted indicates the user closed input while a prompt was pending.
	ErrInputAborted = "INPUT_ABORTED"
)

// -----------------------------------------------------------------------------
// Table Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrTableNoCSVFiles indicates the working directory has no .csv files.
	ErrTableNoCSVFiles = "TABLE_NO_CSV_FILES"

	// ErrTableNotLoaded indicates an action needs a loaded table.
	ErrTableNotLoaded = "TABLE_NOT_LOADED"

	// ErrTableParseFailed indicates the CSV file could not be parsed.
	ErrTableParseFailed = "TABLE_PARSE_FAILED"

	// ErrTableListFailed indicates the directory could not be listed.
	ErrTableListFailed = "TABLE_LIST_FAILED"
)

// -----------------------------------------------------------------------------
// Plot Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrPlotInvalidKind indicates an unrecognized plot type.
	ErrPlotInvalidKind = "PLOT_INVALID_KIND"

	// ErrPlotNonNumeric indicates a column that cannot be plotted as numbers.
	ErrPlotNonNumeric = "PLOT_NON_NUMERIC"

	// ErrPlotRenderFailed indicates the charting backend refused the chart.
	ErrPlotRenderFailed = "PLOT_RENDER_FAILED"

	// ErrPlotRegressionFailed indicates the best-fit line could not be computed.
	ErrPlotRegressionFailed = "PLOT_REGRESSION_FAILED"
)

// -----------------------------------------------------------------------------
// Export Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrExportInvalidFormat indicates an unsupported output format.
	ErrExportInvalidFormat = "EXPORT_INVALID_FORMAT"

	// ErrExportWriteFailed indicates the output file could not be written.
	ErrExportWriteFailed = "EXPORT_WRITE_FAILED"

	// ErrExportEncodeFailed indicates the chart image could not be re-encoded.
	ErrExportEncodeFailed = "EXPORT_ENCODE_FAILED"
)

// -----------------------------------------------------------------------------
// Viewer Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrViewerLaunchFailed indicates the viewer process could not be started.
	ErrViewerLaunchFailed = "VIEWER_LAUNCH_FAILED"

	// ErrViewerExited indicates the viewer process exited with an error.
	ErrViewerExited = "VIEWER_EXITED"

	// ErrViewerImageInvalid indicates the viewer was given an unreadable image.
	ErrViewerImageInvalid = "VIEWER_IMAGE_INVALID"
)

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = "CONFIG_NOT_FOUND"

	// ErrConfigParseFailed indicates the configuration file could not be parsed.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values are invalid.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigReadFailed indicates the config file could not be read.
	ErrConfigReadFailed = "CONFIG_READ_FAILED"

	// ErrConfigWriteFailed indicates the config file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// IO and Internal Error Codes
// -----------------------------------------------------------------------------

const (
	ErrIOReadFailed  = "IO_READ_FAILED"
	ErrIOWriteFailed = "IO_WRITE_FAILED"
	ErrInternalError = "INTERNAL_ERROR"
)

// AllCodes returns every defined error code grouped by category.
func AllCodes() map[Category][]string {
	return map[Category][]string{
		CategoryInput: {
			ErrInputNotInteger, ErrInputIndexOutOfRange, ErrInputNoColumns, ErrInputAborted,
		},
		CategoryTable: {
			ErrTableNoCSVFiles, ErrTableNotLoaded, ErrTableParseFailed, ErrTableListFailed,
		},
		CategoryPlot: {
			ErrPlotInvalidKind, ErrPlotNonNumeric, ErrPlotRenderFailed, ErrPlotRegressionFailed,
		},
		CategoryExport: {
			ErrExportInvalidFormat, ErrExportWriteFailed, ErrExportEncodeFailed,
		},
		CategoryViewer: {
			ErrViewerLaunchFailed, ErrViewerExited, ErrViewerImageInvalid,
		},
		CategoryConfig: {
			ErrConfigNotFound, ErrConfigParseFailed, ErrConfigInvalid,
			ErrConfigReadFailed, ErrConfigWriteFailed,
		},
		CategoryIO:       {ErrIOReadFailed, ErrIOWriteFailed},
		CategoryInternal: {ErrInternalError},
	}
}
