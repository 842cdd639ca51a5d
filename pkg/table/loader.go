package table

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// Asker reads one answer for a prompt.
type Asker interface {
	Ask(prompt string) (string, error)
}

// Prompt texts.
const (
	PromptFileIndex = "Enter the index of the CSV file you want to import: "
)

// Loader runs the interactive file selection.
type Loader struct {
	Dir    string
	Out    io.Writer
	Logger *slog.Logger

	// Busy, when set, is called around the parse. The returned function
	// ends the busy state with the parse result.
	Busy func(msg string) func(error)
}

// Prompt lists the CSV files in the loader directory, asks for one and
// parses it. It prompts only when at least one file exists.
func (l *Loader) Prompt(ask Asker) (*Table, error) {
	files, err := ListCandidates(l.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, csverrors.NoCSVFiles(l.Dir)
	}

	WriteCandidates(l.Out, files)

	answer, err := ask.Ask(PromptFileIndex)
	if err != nil {
		return nil, csverrors.InputAborted(err)
	}
	index, err := ParseIndex(answer)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(files) {
		return nil, csverrors.IndexOutOfRange(index, len(files))
	}

	done := func(error) {}
	if l.Busy != nil {
		done = l.Busy("Reading " + files[index])
	}
	t, err := Load(l.Dir, files, index)
	done(err)
	if err != nil {
		return nil, err
	}

	l.logger().Debug("loaded table",
		slog.String("file", t.Name),
		slog.Int("columns", t.NumColumns()),
		slog.Int("rows", t.NumRows()),
	)
	fmt.Fprintf(l.Out, "Successfully imported CSV file: %s\n", t.Name)
	return t, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// ParseIndex parses an index answer.
func ParseIndex(answer string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, csverrors.NotInteger(answer)
	}
	return n, nil
}
