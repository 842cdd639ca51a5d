// Package viewer shows rendered charts in a desktop window.
//
// The window runs in a child process (the hidden "view" command of the
// csvplot binary) so that each chart gets a fresh GUI event loop and the
// interactive prompt resumes once the window is closed.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// Placeholders substituted in a configured viewer command.
const (
	PlaceholderFile  = "{file}"
	PlaceholderTitle = "{title}"
)

// Process shows charts by running a viewer command on a temporary PNG file
// and waiting for it to exit.
type Process struct {
	// Command is the argv of the viewer. Placeholders are substituted; when
	// no argument contains PlaceholderFile the file path is appended. Empty
	// means the "view" command of the running executable.
	Command []string

	// TempDir holds the temporary image files. Empty means os.TempDir.
	TempDir string

	Logger *slog.Logger
}

// NewProcess returns a Process using command, or the built-in window when
// command is empty.
func NewProcess(command []string, logger *slog.Logger) *Process {
	return &Process{Command: command, Logger: logger}
}

// Show implements plot.Viewer.
func (p *Process) Show(ctx context.Context, title string, png []byte) error {
	path, err := p.writeTemp(png)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	argv, err := p.argv(title, path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	p.logger().Debug("launching viewer", slog.String("command", strings.Join(argv, " ")))
	if err := cmd.Start(); err != nil {
		return csverrors.ViewerLaunchFailed(argv[0], err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return csverrors.ViewerExited(argv[0], err)
		}
		return csverrors.ViewerLaunchFailed(argv[0], err)
	}
	return nil
}

func (p *Process) writeTemp(png []byte) (string, error) {
	dir := p.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("csvplot-%s.png", uuid.NewString()))
	if err := os.WriteFile(path, png, 0o600); err != nil {
		return "", csverrors.IOWriteFailed(path, err)
	}
	return path, nil
}

func (p *Process) argv(title, path string) ([]string, error) {
	if len(p.Command) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return nil, csverrors.ViewerLaunchFailed("csvplot view", err)
		}
		return []string{exe, "view", "--title", title, path}, nil
	}

	argv := make([]string, 0, len(p.Command)+1)
	hasFile := false
	for _, arg := range p.Command {
		if strings.Contains(arg, PlaceholderFile) {
			hasFile = true
		}
		arg = strings.ReplaceAll(arg, PlaceholderFile, path)
		arg = strings.ReplaceAll(arg, PlaceholderTitle, title)
		argv = append(argv, arg)
	}
	if !hasFile {
		argv = append(argv, path)
	}
	return argv, nil
}

func (p *Process) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
