// Package plot builds charts from table columns and either shows them or
// writes them to files.
package plot

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/wcharczuk/go-chart/v2"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
	"github.com/r3d91ll/csvplot/pkg/export"
	"github.com/r3d91ll/csvplot/pkg/table"
)

// Viewer presents a rendered chart and blocks until the user closes it.
type Viewer interface {
	Show(ctx context.Context, title string, png []byte) error
}

var errNoViewer = errors.New("no viewer configured")

// Plotter renders and exports charts.
type Plotter struct {
	Viewer  Viewer
	Palette Palette

	// Dir is where exported files are written.
	Dir string

	// Width and Height size the chart in pixels. Zero uses the chart
	// library defaults.
	Width, Height int

	Logger *slog.Logger

	// Busy, when set, is called around rendering. The returned function
	// ends the busy state with the render result.
	Busy func(msg string) func(error)

	// Version is recorded in exported document metadata.
	Version string
}

func (p *Plotter) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Plotter) busy(msg string) func(error) {
	if p.Busy == nil {
		return func(error) {}
	}
	return p.Busy(msg)
}

func (p *Plotter) size(c *chart.Chart) {
	c.Width = p.Width
	c.Height = p.Height
}

// Render draws the requested columns on one chart and shows it.
func (p *Plotter) Render(ctx context.Context, t *table.Table, req Request) error {
	fig, err := BuildColumns(t, req, p.Palette)
	if err != nil {
		return err
	}
	for i, name := range fig.SeriesNames() {
		p.logger().Debug("column color", slog.String("column", name), slog.String("color", p.Palette.Color(i).String()))
	}
	return p.show(ctx, fig)
}

// Export writes the requested columns as one chart to a file and returns
// the file path.
func (p *Plotter) Export(ctx context.Context, t *table.Table, req ExportRequest) (string, error) {
	target, err := export.ResolveTarget(req.Filename, req.Format, "")
	if err != nil {
		return "", err
	}
	fig, err := buildColumns(t, req.Request, p.Palette, modeExport)
	if err != nil {
		return "", err
	}
	return p.write(ctx, fig, target)
}

// Compare draws column Y against column X and shows it. For CompareLine
// the fitted line is returned.
func (p *Plotter) Compare(ctx context.Context, t *table.Table, req CompareRequest) (*Fit, error) {
	fig, err := BuildCompare(t, req)
	if err != nil {
		return nil, err
	}
	if err := p.show(ctx, fig); err != nil {
		return fig.Fit, err
	}
	return fig.Fit, nil
}

// CompareExport writes the comparison chart to a file. Without a file name
// the chart title names the file.
func (p *Plotter) CompareExport(ctx context.Context, t *table.Table, req CompareRequest) (string, *Fit, error) {
	// Parse the format before building so an invalid one is reported
	// ahead of any data error.
	if _, err := export.ParseFormat(req.Format); err != nil {
		return "", nil, err
	}
	fig, err := BuildCompare(t, req)
	if err != nil {
		return "", nil, err
	}
	target, err := export.ResolveTarget(req.Filename, req.Format, fig.Title)
	if err != nil {
		return "", nil, err
	}
	path, err := p.write(ctx, fig, target)
	return path, fig.Fit, err
}

func (p *Plotter) show(ctx context.Context, fig *Figure) error {
	if p.Viewer == nil {
		return csverrors.ViewerLaunchFailed("", errNoViewer)
	}
	p.size(fig.Chart)

	done := p.busy("Rendering " + fig.Title)
	var buf bytes.Buffer
	err := fig.RenderPNG(&buf)
	done(err)
	if err != nil {
		return csverrors.RenderFailed(fig.Title, err)
	}

	p.logger().Debug("showing chart", slog.String("title", fig.Title), slog.Int("bytes", buf.Len()))
	return p.Viewer.Show(ctx, fig.Title, buf.Bytes())
}

func (p *Plotter) write(ctx context.Context, fig *Figure, target export.Target) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.size(fig.Chart)
	path := target.Path(p.Dir)

	done := p.busy("Saving " + target.Name)
	err := export.WriteFile(path, target.Format, fig, export.Meta{Title: fig.Title, ToolVersion: p.Version})
	done(err)
	if err != nil {
		if csverrors.IsCode(err, csverrors.ErrExportEncodeFailed) {
			ce, _ := csverrors.AsCSVPlotError(err)
			return "", csverrors.RenderFailed(fig.Title, ce.Cause)
		}
		return "", err
	}

	p.logger().Debug("exported chart",
		slog.String("path", path),
		slog.String("format", target.Format.String()),
		slog.String("title", fig.Title),
	)
	return path, nil
}
