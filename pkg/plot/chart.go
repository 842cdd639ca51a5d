package plot

import (
	"io"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/wcharczuk/go-chart/v2"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
	"github.com/r3d91ll/csvplot/pkg/table"
)

// Request asks for one chart over one or more columns.
type Request struct {
	Columns []int
	Kind    string
	Title   string
}

// ExportRequest is a Request written to a file.
type ExportRequest struct {
	Request

	Format   string
	Filename string
}

// CompareRequest asks for a chart of column Y against column X.
type CompareRequest struct {
	X, Y  int
	Kind  string
	Title string

	// Format and Filename are only used when exporting.
	Format   string
	Filename string
}

// mode selects how series are colored.
type mode int

const (
	// modeInteractive colors columns from the palette.
	modeInteractive mode = iota
	// modeExport leaves colors to the chart's default series colors.
	modeExport
)

// Figure is a built chart ready to render.
type Figure struct {
	Title string
	Chart *chart.Chart
	// Fit is set for comparison charts with a best-fit line.
	Fit *Fit
}

// RenderPNG implements export.Renderer.
func (f *Figure) RenderPNG(w io.Writer) error {
	return f.Chart.Render(chart.PNG, w)
}

// RenderSVG implements export.Renderer.
func (f *Figure) RenderSVG(w io.Writer) error {
	return f.Chart.Render(chart.SVG, w)
}

// SeriesNames lists the names of the series on the chart in order.
func (f *Figure) SeriesNames() []string {
	names := make([]string, len(f.Chart.Series))
	for i, s := range f.Chart.Series {
		names[i] = s.GetName()
	}
	return names
}

// validateColumns checks every reference before anything is drawn.
func validateColumns(t *table.Table, refs []int) error {
	if len(refs) == 0 {
		return csverrors.NoColumns()
	}
	var result *multierror.Error
	for _, ref := range refs {
		if ref < 0 || ref >= t.NumColumns() {
			result = multierror.Append(result, csverrors.ColumnOutOfRange(ref, t.NumColumns()))
		}
	}
	return result.ErrorOrNil()
}

// BuildColumns builds the chart for a Request. The kind is validated
// first, then every column; nothing is built if either check fails.
func BuildColumns(t *table.Table, req Request, palette Palette) (*Figure, error) {
	return buildColumns(t, req, palette, modeInteractive)
}

func buildColumns(t *table.Table, req Request, palette Palette, m mode) (*Figure, error) {
	if t == nil {
		return nil, csverrors.TableNotLoaded()
	}
	kind, err := ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	if err := validateColumns(t, req.Columns); err != nil {
		return nil, err
	}

	type column struct {
		name   string
		values []float64
	}
	cols := make([]column, 0, len(req.Columns))
	for _, ref := range req.Columns {
		values, err := t.Floats(ref)
		if err != nil {
			return nil, err
		}
		c, _ := t.Column(ref)
		cols = append(cols, column{name: c.Name, values: values})
	}

	c := &chart.Chart{
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{GridMajorStyle: gridStyle()},
		YAxis:      chart.YAxis{GridMajorStyle: gridStyle()},
	}

	title := req.Title
	var ticks []chart.Tick
	for i, col := range cols {
		if req.Title == "" {
			title = kind.Title(col.name)
		}

		var style chart.Style
		if m == modeInteractive {
			style = chart.Style{StrokeColor: palette.Color(i)}
		}

		switch kind {
		case KindHist:
			c.Series = append(c.Series, histSeries{
				Name:  col.name,
				Style: style,
				Bins:  histogram(table.DropNaN(col.values), HistogramBins),
			})
		case KindLine:
			xs, ys := indexed(col.values)
			c.Series = append(c.Series, chart.ContinuousSeries{
				Name:    col.name,
				Style:   style,
				XValues: xs,
				YValues: ys,
			})
		case KindBar:
			c.Series = append(c.Series, barSeries{
				Name:   col.name,
				Style:  style,
				Values: col.values,
			})
		case KindBox:
			pos := float64(i + 1)
			stats, ok := summarize(table.DropNaN(col.values))
			if ok {
				c.Series = append(c.Series, boxSeries{
					Name:     col.name,
					Style:    style,
					Position: pos,
					Stats:    stats,
				})
			}
			ticks = append(ticks, chart.Tick{Value: pos, Label: col.name})
		}
	}

	if kind == KindBox {
		c.XAxis.Ticks = append([]chart.Tick{{Value: 0.5}}, ticks...)
		c.XAxis.Ticks = append(c.XAxis.Ticks, chart.Tick{Value: float64(len(cols)) + 0.5})
	}
	if kind == KindHist {
		c.YAxis.Name = "Frequency"
	}

	c.Title = title
	padRanges(c)
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return &Figure{Title: title, Chart: c}, nil
}

// BuildCompare builds a scatter chart of column Y against column X, with
// the least-squares line for CompareLine.
func BuildCompare(t *table.Table, req CompareRequest) (*Figure, error) {
	if t == nil {
		return nil, csverrors.TableNotLoaded()
	}
	kind, err := ParseCompareKind(req.Kind)
	if err != nil {
		return nil, err
	}
	if req.X < 0 || req.X >= t.NumColumns() || req.Y < 0 || req.Y >= t.NumColumns() {
		return nil, csverrors.ColumnPairNotFound(req.X, req.Y, t.NumColumns())
	}

	xcol, _ := t.Column(req.X)
	ycol, _ := t.Column(req.Y)

	var result *multierror.Error
	xv, err := t.Floats(req.X)
	if err != nil {
		result = multierror.Append(result, err)
	}
	yv, err := t.Floats(req.Y)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	xs, ys := pairs(xv, yv)
	title := CompareTitle(xcol.Name, ycol.Name, req.Title)

	scatterName := "Scatter Plot of " + xcol.Name + " VS " + ycol.Name
	if kind == CompareLine {
		scatterName = "Scatter Plot"
	}

	c := &chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xcol.Name, GridMajorStyle: gridStyle()},
		YAxis:      chart.YAxis{Name: ycol.Name, GridMajorStyle: gridStyle()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    scatterName,
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	fig := &Figure{Title: title, Chart: c}
	if kind == CompareLine {
		fit, err := Regress(xs, ys)
		if err != nil {
			return nil, err
		}
		lo, hi := minMax(xs)
		c.Series = append(c.Series, chart.ContinuousSeries{
			Name:    "Linear Regression Line",
			Style:   chart.Style{StrokeColor: fitColor, StrokeWidth: 2},
			XValues: []float64{lo, hi},
			YValues: []float64{fit.At(lo), fit.At(hi)},
		})
		fig.Fit = &fit
	}

	padRanges(c)
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return fig, nil
}

func gridStyle() chart.Style {
	return chart.Style{StrokeColor: gridColor, StrokeWidth: 1}
}

// indexed pairs each present value with its row index.
func indexed(values []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	return xs, ys
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// padRanges widens an axis whose values are all equal, which the chart
// cannot scale.
func padRanges(c *chart.Chart) {
	minx, maxx := math.Inf(1), math.Inf(-1)
	miny, maxy := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		switch vp := s.(type) {
		case chart.BoundedValuesProvider:
			for i := 0; i < vp.Len(); i++ {
				x, y1, y2 := vp.GetBoundedValues(i)
				minx, maxx = math.Min(minx, x), math.Max(maxx, x)
				miny, maxy = math.Min(miny, math.Min(y1, y2)), math.Max(maxy, math.Max(y1, y2))
			}
		case chart.ValuesProvider:
			for i := 0; i < vp.Len(); i++ {
				x, y := vp.GetValues(i)
				minx, maxx = math.Min(minx, x), math.Max(maxx, x)
				miny, maxy = math.Min(miny, y), math.Max(maxy, y)
			}
		}
	}

	if len(c.XAxis.Ticks) == 0 && minx == maxx {
		c.XAxis.Range = &chart.ContinuousRange{Min: minx - 1, Max: maxx + 1}
	}
	if miny == maxy {
		c.YAxis.Range = &chart.ContinuousRange{Min: miny - 1, Max: maxy + 1}
	}
}
