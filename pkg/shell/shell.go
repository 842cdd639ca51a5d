// Package shell provides the interactive csvplot menu loop.
package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/r3d91ll/csvplot/pkg/console"
	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
	"github.com/r3d91ll/csvplot/pkg/export"
	"github.com/r3d91ll/csvplot/pkg/help"
	"github.com/r3d91ll/csvplot/pkg/plot"
	"github.com/r3d91ll/csvplot/pkg/table"
)

// Prompt texts.
const (
	MenuPrompt = ">>> "

	PromptColumn      = "Enter the index of the column to plot (enter -1 to stop input): "
	PromptKind        = "Supported types are 'hist', 'line', 'bar', 'box' (default is hist): "
	PromptSaveKind    = "Supported types are 'hist', 'line', 'bar', 'box': "
	PromptXColumn     = "Enter the index of the x-axis column: "
	PromptYColumn     = "Enter the index of the y-axis column: "
	PromptCompareKind = "Enter in any options like line, or scatter plot: "
	PromptTitle       = "Enter in a plot title (or hit enter for default): "
	PromptFormat      = "Supported formats to save to are 'pdf', 'png', 'svg' (for default hit enter): "
	PromptFilename    = "Enter a title for the document (for default hit enter): "
)

// Messages printed in red bold.
const (
	BarWarning  = "CURRENTLY ONLY SUPPORTING ONE COLUMN PLOTTING FOR BAR PLOTS"
	HelpHeading = "\nUse the commands below"
	Farewell    = "Exiting the program."
)

// stopColumns ends the column list.
const stopColumns = -1

// Plotter is the chart backend used by the menu actions.
type Plotter interface {
	Render(ctx context.Context, t *table.Table, req plot.Request) error
	Export(ctx context.Context, t *table.Table, req plot.ExportRequest) (string, error)
	Compare(ctx context.Context, t *table.Table, req plot.CompareRequest) (*plot.Fit, error)
	CompareExport(ctx context.Context, t *table.Table, req plot.CompareRequest) (string, *plot.Fit, error)
}

// Config holds shell configuration.
type Config struct {
	// Out receives the menu and all action output.
	Out io.Writer

	// Loader selects and parses CSV files.
	Loader *table.Loader

	Plotter Plotter

	// Completer, when set, is switched to the candidates of each prompt.
	Completer *Completer

	// DefaultFormat replaces an empty answer at the format prompt.
	DefaultFormat string

	// Banner is printed once before the first menu.
	Banner string

	Logger *slog.Logger
}

// Shell is the interactive menu loop. It owns the currently loaded table.
type Shell struct {
	cfg      Config
	prompter Prompter
	out      *console.Printer
	help     *help.Renderer
	errs     *csverrors.Formatter
	logger   *slog.Logger

	table *table.Table
}

// New creates a shell reading answers from prompter.
func New(prompter Prompter, cfg Config) *Shell {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errs := csverrors.NewFormatter(cfg.Out)
	return &Shell{
		cfg:      cfg,
		prompter: prompter,
		out:      console.NewPrinter(cfg.Out),
		help:     help.NewRenderer(cfg.Out),
		errs:     errs,
		logger:   logger,
	}
}

// Table returns the currently loaded table, or nil.
func (s *Shell) Table() *table.Table {
	return s.table
}

// errExit ends the loop.
var errExit = errors.New("exit")

// Run prints the menu and dispatches choices until "exit", end of input or
// ctx is done. Action failures are printed and never end the loop.
func (s *Shell) Run(ctx context.Context) error {
	if s.cfg.Banner != "" {
		s.out.Plain(s.cfg.Banner)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.help.RenderMenu()
		choice, err := s.ask(MenuPrompt, help.Keys())
		if errors.Is(err, ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			s.farewell()
			return nil
		}
		if err != nil {
			return err
		}

		choice = strings.TrimSpace(choice)
		if r, ok := s.prompter.(interface{ Remember(string) }); ok && choice != "" {
			r.Remember(choice)
		}

		err = s.dispatch(ctx, choice)
		switch {
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			s.farewell()
			return nil
		case errors.Is(err, ErrInterrupt):
			s.out.Plain("")
		case errors.Is(err, context.Canceled):
			return err
		case err != nil:
			s.logger.Debug("action failed", slog.String("choice", choice), slog.Any("error", err))
			s.errs.Display(err)
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, choice string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("action panicked", slog.String("choice", choice), slog.Any("panic", r))
			err = csverrors.InternalPanic(r)
		}
	}()

	if opt, ok := help.GetOption(choice); ok && opt.NeedsTable && s.table == nil {
		return csverrors.TableNotLoaded()
	}
	if key, ok := strings.CutPrefix(choice, "help "); ok {
		s.help.RenderOption(strings.TrimSpace(key))
		return nil
	}

	switch choice {
	case "1":
		return s.readTable()
	case "2":
		return s.listColumns()
	case "3":
		return s.plotColumns(ctx)
	case "4":
		return s.plotVersus(ctx)
	case "5":
		return s.savePlotColumns(ctx)
	case "6":
		return s.savePlotVersus(ctx)
	case "help":
		s.out.Print(HelpHeading, "red", "bold")
		s.help.RenderFull()
		return nil
	case "exit":
		return errExit
	default:
		s.logger.Debug("ignoring menu input", slog.String("choice", choice))
		return nil
	}
}

func (s *Shell) farewell() {
	s.out.Print(Farewell, "red", "bold")
}

// ask reads one answer, offering words for tab completion.
func (s *Shell) ask(prompt string, words []string) (string, error) {
	if s.cfg.Completer != nil {
		s.cfg.Completer.SetWords(words)
	}
	return s.prompter.Ask(prompt)
}

// -----------------------------------------------------------------------------
// Actions
// -----------------------------------------------------------------------------

func (s *Shell) readTable() error {
	if s.cfg.Completer != nil {
		s.cfg.Completer.SetWords(nil)
	}
	t, err := s.cfg.Loader.Prompt(s.prompter)
	if err != nil {
		// A failed load keeps the previous table.
		return unwrapAbort(err)
	}
	s.table = t
	return nil
}

func (s *Shell) listColumns() error {
	table.WriteColumns(s.out.Writer(), s.table)
	return nil
}

func (s *Shell) plotColumns(ctx context.Context) error {
	req, err := s.columnRequest(PromptKind)
	if err != nil {
		return err
	}
	return s.cfg.Plotter.Render(ctx, s.table, req)
}

func (s *Shell) savePlotColumns(ctx context.Context) error {
	req, err := s.columnRequest(PromptSaveKind)
	if err != nil {
		return err
	}
	format, filename, err := s.askTarget()
	if err != nil {
		return err
	}

	path, err := s.cfg.Plotter.Export(ctx, s.table, plot.ExportRequest{
		Request:  req,
		Format:   format,
		Filename: filename,
	})
	if err != nil {
		return err
	}
	s.out.Printf("Plot saved to %s\n", path)
	return nil
}

func (s *Shell) plotVersus(ctx context.Context) error {
	req, err := s.compareRequest()
	if err != nil {
		return err
	}
	fit, err := s.cfg.Plotter.Compare(ctx, s.table, req)
	if err != nil {
		return err
	}
	s.printFit(fit)
	return nil
}

func (s *Shell) savePlotVersus(ctx context.Context) error {
	req, err := s.compareRequest()
	if err != nil {
		return err
	}
	req.Format, req.Filename, err = s.askTarget()
	if err != nil {
		return err
	}

	path, fit, err := s.cfg.Plotter.CompareExport(ctx, s.table, req)
	if err != nil {
		return err
	}
	s.printFit(fit)
	s.out.Printf("Plot saved to %s\n", path)
	return nil
}

// columnRequest prints the columns and reads the column list, kind and
// title of options 3 and 5.
func (s *Shell) columnRequest(kindPrompt string) (plot.Request, error) {
	table.WriteColumns(s.out.Writer(), s.table)

	var columns []int
	for {
		s.out.Print(BarWarning, "red", "bold")
		n, err := s.askIndex(PromptColumn)
		if err != nil {
			return plot.Request{}, err
		}
		if n == stopColumns {
			break
		}
		columns = append(columns, n)
	}

	kind, err := s.ask(kindPrompt, plot.SupportedKinds())
	if err != nil {
		return plot.Request{}, err
	}
	title, err := s.ask(PromptTitle, nil)
	if err != nil {
		return plot.Request{}, err
	}
	return plot.Request{Columns: columns, Kind: kind, Title: title}, nil
}

// compareRequest prints the columns and reads the axes, kind and title of
// options 4 and 6. The axes are range checked by the plotter after all
// answers are in.
func (s *Shell) compareRequest() (plot.CompareRequest, error) {
	table.WriteColumns(s.out.Writer(), s.table)

	x, err := s.askIndex(PromptXColumn)
	if err != nil {
		return plot.CompareRequest{}, err
	}
	y, err := s.askIndex(PromptYColumn)
	if err != nil {
		return plot.CompareRequest{}, err
	}
	kind, err := s.ask(PromptCompareKind, plot.SupportedCompareKinds())
	if err != nil {
		return plot.CompareRequest{}, err
	}
	title, err := s.ask(PromptTitle, nil)
	if err != nil {
		return plot.CompareRequest{}, err
	}
	return plot.CompareRequest{X: x, Y: y, Kind: kind, Title: title}, nil
}

func (s *Shell) askTarget() (format, filename string, err error) {
	format, err = s.ask(PromptFormat, export.SupportedFormats())
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(format) == "" {
		format = s.cfg.DefaultFormat
	}
	filename, err = s.ask(PromptFilename, nil)
	if err != nil {
		return "", "", err
	}
	return format, strings.TrimSpace(filename), nil
}

func (s *Shell) askIndex(prompt string) (int, error) {
	answer, err := s.ask(prompt, nil)
	if err != nil {
		return 0, err
	}
	return table.ParseIndex(answer)
}

func (s *Shell) printFit(fit *plot.Fit) {
	if fit == nil {
		return
	}
	s.out.Printf("Best-fit line: y = %.4g * x + %.4g (r = %.4f, n = %d)\n",
		fit.Slope, fit.Intercept, fit.R, fit.N)
}

// unwrapAbort turns an aborted prompt back into the prompter error so Run
// can tell Ctrl-C and end of input apart from failures.
func unwrapAbort(err error) error {
	if !csverrors.IsCode(err, csverrors.ErrInputAborted) {
		return err
	}
	if errors.Is(err, ErrInterrupt) || errors.Is(err, io.EOF) {
		ce, _ := csverrors.AsCSVPlotError(err)
		return ce.Cause
	}
	return err
}
