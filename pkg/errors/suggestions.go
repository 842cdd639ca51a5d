package errors

import (
	"runtime"
	"sort"
)

// Context keys used to select conditional suggestions.
const (
	// ContextOS is the operating system (e.g., "linux", "darwin", "windows")
	ContextOS = "os"
)

// OS values for platform-specific suggestions.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// Suggestion represents a remediation suggestion with optional conditions.
type Suggestion struct {
	// Text is the suggestion message displayed to the user.
	Text string

	// Conditions must all match the error context. Empty matches anything.
	Conditions map[string]string

	// Priority orders suggestions, highest first.
	Priority int
}

// Matches returns true if this suggestion's conditions match the given context.
func (s *Suggestion) Matches(ctx map[string]string) bool {
	for key, value := range s.Conditions {
		if ctx[key] != value {
			return false
		}
	}
	return true
}

// Registry maps error codes to their remediation suggestions.
type Registry struct {
	suggestions map[string][]Suggestion
}

// NewRegistry creates a new suggestion registry.
func NewRegistry() *Registry {
	return &Registry{
		suggestions: make(map[string][]Suggestion),
	}
}

// Register adds a suggestion for an error code.
func (r *Registry) Register(code, text string) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{Text: text})
	return r
}

// RegisterWithCondition adds a suggestion that only applies when the
// error context matches conditions.
func (r *Registry) RegisterWithCondition(code, text string, conditions map[string]string) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{
		Text:       text,
		Conditions: conditions,
	})
	return r
}

// RegisterWithPriority adds a suggestion with explicit priority.
func (r *Registry) RegisterWithPriority(code, text string, priority int) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{
		Text:     text,
		Priority: priority,
	})
	return r
}

// Get returns the suggestions for code that match ctx, highest priority first.
func (r *Registry) Get(code string, ctx map[string]string) []string {
	var matching []Suggestion
	for _, s := range r.suggestions[code] {
		if s.Matches(ctx) {
			matching = append(matching, s)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Priority > matching[j].Priority
	})

	if len(matching) == 0 {
		return nil
	}
	result := make([]string, len(matching))
	for i, s := range matching {
		result[i] = s.Text
	}
	return result
}

// HasSuggestions returns true if any suggestions exist for the error code.
func (r *Registry) HasSuggestions(code string) bool {
	return len(r.suggestions[code]) > 0
}

// DefaultContext returns a context map with current platform information.
func DefaultContext() map[string]string {
	return map[string]string{ContextOS: runtime.GOOS}
}

// MergeContext combines context maps; later maps override earlier ones.
func MergeContext(contexts ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, ctx := range contexts {
		for k, v := range ctx {
			result[k] = v
		}
	}
	return result
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the global registry with built-in suggestions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// AttachSuggestions appends registry suggestions matching err's context.
func AttachSuggestions(err *CSVPlotError) *CSVPlotError {
	if err == nil {
		return nil
	}
	ctx := MergeContext(DefaultContext(), err.Context)
	err.Suggestions = append(err.Suggestions, defaultRegistry.Get(err.Code, ctx)...)
	return err
}

func init() {
	registerTableSuggestions()
	registerPlotSuggestions()
	registerExportSuggestions()
	registerViewerSuggestions()
	registerConfigSuggestions()
	registerIOSuggestions()
}

func registerTableSuggestions() {
	defaultRegistry.Register(ErrTableNoCSVFiles,
		"Copy or move a .csv file into the directory csvplot was started from")
	defaultRegistry.Register(ErrTableNoCSVFiles,
		"Only files ending in .csv are listed")

	defaultRegistry.Register(ErrTableParseFailed,
		"Check that the first row is a header and every row has the same number of fields")
	defaultRegistry.Register(ErrTableParseFailed,
		"Quoted fields must close their quotes on the same record")
}

func registerPlotSuggestions() {
	defaultRegistry.Register(ErrPlotNonNumeric,
		"Use option 2 to list the columns and pick one holding numbers")

	defaultRegistry.Register(ErrPlotRenderFailed,
		"Charts need at least two distinct x values")
}

func registerExportSuggestions() {
	defaultRegistry.Register(ErrExportWriteFailed,
		"Check write permissions for the current directory")
	defaultRegistry.RegisterWithCondition(ErrExportWriteFailed,
		"Use 'df -h' to check free disk space",
		map[string]string{ContextOS: OSLinux})
	defaultRegistry.RegisterWithCondition(ErrExportWriteFailed,
		"Use 'df -h' to check free disk space",
		map[string]string{ContextOS: OSDarwin})
}

func registerViewerSuggestions() {
	defaultRegistry.RegisterWithPriority(ErrViewerLaunchFailed,
		"Use options 5 and 6 to save the chart to a file instead", 10)
	defaultRegistry.RegisterWithCondition(ErrViewerLaunchFailed,
		"Make sure DISPLAY or WAYLAND_DISPLAY is set for the chart window",
		map[string]string{ContextOS: OSLinux})
	defaultRegistry.Register(ErrViewerLaunchFailed,
		"Set viewer.command in the config file to use another image viewer")

	defaultRegistry.Register(ErrViewerExited,
		"Use options 5 and 6 to save the chart to a file instead")
}

func registerConfigSuggestions() {
	defaultRegistry.Register(ErrConfigNotFound,
		"Run 'csvplot --init' to create a default configuration file")

	defaultRegistry.Register(ErrConfigParseFailed,
		"Check the YAML syntax of the configuration file")
	defaultRegistry.Register(ErrConfigParseFailed,
		"Run 'csvplot --init' after removing the file to regenerate it")
}

func registerIOSuggestions() {
	defaultRegistry.Register(ErrIOWriteFailed,
		"Check file and directory permissions")
	defaultRegistry.RegisterWithCondition(ErrIOWriteFailed,
		"Try running as Administrator",
		map[string]string{ContextOS: OSWindows})

	defaultRegistry.Register(ErrInternalError,
		"This may be a bug - please report it with the error details")
}
