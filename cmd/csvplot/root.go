package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/r3d91ll/csvplot/pkg/config"
	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
	"github.com/r3d91ll/csvplot/pkg/help"
	"github.com/r3d91ll/csvplot/pkg/log"
	"github.com/r3d91ll/csvplot/pkg/plot"
	"github.com/r3d91ll/csvplot/pkg/shell"
	"github.com/r3d91ll/csvplot/pkg/spinner"
	"github.com/r3d91ll/csvplot/pkg/table"
	"github.com/r3d91ll/csvplot/pkg/viewer"
)

const (
	shortDesc = "Plot columns of CSV files from an interactive menu."
	longDesc  = `csvplot lists the CSV files in the current directory, loads one and
plots its columns. Charts are shown in a window or saved to pdf, png, svg
or jpg files.

Run without arguments to start the menu. Configuration is read from
~/.csvplot/config.yaml when it exists; create it with --init.`
)

type rootArgs struct {
	configPath string
	initConfig bool
	logLevel   string
	logFormat  string
}

// NewRootCmd builds the csvplot command tree.
func NewRootCmd() *cobra.Command {
	args := &rootArgs{}

	cmd := &cobra.Command{
		Use:           "csvplot",
		Short:         shortDesc,
		Long:          longDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			return run(cc, args)
		},
	}

	cmd.Flags().StringVar(&args.configPath, "config", "", "Config file path (default ~/.csvplot/config.yaml)")
	cmd.Flags().BoolVar(&args.initConfig, "init", false, "Write a default config file and exit")
	cmd.Flags().StringVar(&args.logLevel, "log-level", "", "Set the log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&args.logFormat, "log-format", "", "Set the log format (text, logfmt, json)")

	if err := cmd.MarkFlagFilename("config", "yaml", "yml"); err != nil {
		panic(err)
	}

	cmd.AddCommand(newVersionCmd(), newViewCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the csvplot version",
		Args:  cobra.NoArgs,
		Run: func(cc *cobra.Command, _ []string) {
			fmt.Fprintf(cc.OutOrStdout(), "csvplot %s\n", version)
		},
	}
}

// newViewCmd is the chart window started by the menu for each plot.
func newViewCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:    "view [flags] FILE",
		Short:  "Show a PNG chart in a window",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return viewer.ViewFile(args[0], title)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Window title")
	return cmd
}

func run(cc *cobra.Command, args *rootArgs) error {
	cfgPath := args.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}

	if args.initConfig {
		return initConfig(cc.OutOrStdout(), cfgPath)
	}

	cfg, err := loadConfig(cfgPath, args.configPath != "")
	if err != nil {
		return err
	}

	logger, palette, err := setup(cc.ErrOrStderr(), cfg, args)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cc.Context(), syscall.SIGTERM)
	defer stop()

	return startShell(ctx, cc, cfg, logger, palette)
}

func initConfig(w io.Writer, path string) error {
	created, err := config.InitConfig(path)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "Config initialized at: %s\n", path)
	} else {
		fmt.Fprintf(w, "Config already exists at: %s\n", path)
	}
	return nil
}

// loadConfig reads the config file. A missing file is an error only when
// the path was given explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}

// setup builds the logger and the palette, reporting every invalid
// setting at once.
func setup(stderr io.Writer, cfg *config.Config, args *rootArgs) (*slog.Logger, plot.Palette, error) {
	var merr *multierror.Error

	level := firstNonEmpty(args.logLevel, cfg.Logging.Level)
	format := firstNonEmpty(args.logFormat, cfg.Logging.Format)
	h, err := log.CreateHandlerWithStrings(stderr, level, format)
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	palette, err := plot.ParsePalette(cfg.Chart.Palette)
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, nil, err
	}
	return slog.New(h), palette, nil
}

func startShell(ctx context.Context, cc *cobra.Command, cfg *config.Config, logger *slog.Logger, palette plot.Palette) error {
	busy := spinner.Busy(cc.ErrOrStderr(), cfg.Shell.Spinner)
	sessionID := uuid.NewString()[:8]
	logger = logger.With(slog.String("session", sessionID))

	completer := shell.NewCompleter(help.Keys()...)
	prompter, closePrompter, err := newPrompter(cc, cfg.Shell.HistoryFile, completer)
	if err != nil {
		return err
	}
	defer closePrompter()

	out := promptOutput(prompter, cc.OutOrStdout())

	sh := shell.New(prompter, shell.Config{
		Out: out,
		Loader: &table.Loader{
			Dir:    ".",
			Out:    out,
			Logger: logger,
			Busy:   busy,
		},
		Plotter: &plot.Plotter{
			Viewer:  viewer.NewProcess(cfg.Viewer.Command, logger),
			Palette: palette,
			Dir:     cfg.Export.Dir,
			Width:   cfg.Chart.Width,
			Height:  cfg.Chart.Height,
			Logger:  logger,
			Busy:    busy,
			Version: version,
		},
		Completer:     completer,
		DefaultFormat: cfg.Export.Format,
		Banner:        help.Banner(version, sessionID),
		Logger:        logger,
	})

	logger.Debug("starting shell", slog.String("version", version))
	return sh.Run(ctx)
}

// newPrompter uses readline on a terminal and plain line reads otherwise.
func newPrompter(cc *cobra.Command, historyFile string, completer *shell.Completer) (shell.Prompter, func(), error) {
	if f, ok := cc.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if historyFile != "" {
			if err := os.MkdirAll(filepath.Dir(historyFile), 0o755); err != nil {
				return nil, nil, csverrors.IOWriteFailed(historyFile, err)
			}
		}
		p, err := shell.NewReadlinePrompter(historyFile, completer)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	}
	return shell.NewLinePrompter(cc.InOrStdin(), cc.OutOrStdout()), func() {}, nil
}

// promptOutput returns the prompter's own writer when it has one, so output
// printed while a line is being edited does not garble the prompt.
func promptOutput(p shell.Prompter, fallback io.Writer) io.Writer {
	if sp, ok := p.(interface{ Stdout() io.Writer }); ok {
		return sp.Stdout()
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
