package plot

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
	"github.com/r3d91ll/csvplot/pkg/table"
)

type shown struct {
	title string
	png   []byte
}

type fakeViewer struct {
	shown []shown
}

func (f *fakeViewer) Show(_ context.Context, title string, png []byte) error {
	f.shown = append(f.shown, shown{title: title, png: png})
	return nil
}

func linearTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.Parse("linear.csv", strings.NewReader("x,y,name\n1,2,a\n2,4,b\n3,6,c\n4,8,d\n5,10,e\n"))
	require.NoError(t, err)
	return tbl
}

func newPlotter(t *testing.T) (*Plotter, *fakeViewer) {
	t.Helper()
	v := &fakeViewer{}
	return &Plotter{Viewer: v, Dir: t.TempDir(), Width: 320, Height: 240}, v
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestRender_AllKinds(t *testing.T) {
	tbl := linearTable(t)

	for _, kind := range SupportedKinds() {
		t.Run(kind, func(t *testing.T) {
			p, v := newPlotter(t)

			require.NoError(t, p.Render(context.Background(), tbl, Request{Columns: []int{0, 1}, Kind: kind}))
			require.Len(t, v.shown, 1)

			img, err := png.Decode(bytes.NewReader(v.shown[0].png))
			require.NoError(t, err)
			assert.Equal(t, 320, img.Bounds().Dx())
		})
	}
}

func TestRender_InvalidKind(t *testing.T) {
	p, v := newPlotter(t)

	err := p.Render(context.Background(), linearTable(t), Request{Columns: []int{0, 1}, Kind: "pie"})

	assert.True(t, csverrors.IsCode(err, csverrors.ErrPlotInvalidKind))
	assert.Empty(t, v.shown)
}

func TestRender_Titles(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    string
		columns []string
	}{
		{
			name:    "generated title uses the last column",
			req:     Request{Columns: []int{0, 1}, Kind: "line"},
			want:    "Line plot of y",
			columns: []string{"x", "y"},
		},
		{
			name:    "default kind",
			req:     Request{Columns: []int{1}},
			want:    "Histogram of y",
			columns: []string{"y"},
		},
		{
			name:    "literal title",
			req:     Request{Columns: []int{0}, Kind: "box", Title: "Sizes"},
			want:    "Sizes",
			columns: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, v := newPlotter(t)
			require.NoError(t, p.Render(context.Background(), linearTable(t), tt.req))
			require.Len(t, v.shown, 1)
			assert.Equal(t, tt.want, v.shown[0].title)

			fig, err := BuildColumns(linearTable(t), tt.req, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.columns, fig.SeriesNames())
		})
	}
}

func TestBuildColumns_Bar(t *testing.T) {
	tbl := linearTable(t)

	single, err := BuildColumns(tbl, Request{Columns: []int{0}, Kind: "bar"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, single.SeriesNames())

	both, err := BuildColumns(tbl, Request{Columns: []int{0, 1}, Kind: "bar"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, both.SeriesNames())

	// Both columns share the same slots.
	first := both.Chart.Series[0].(barSeries)
	second := both.Chart.Series[1].(barSeries)
	x0, _, _ := first.GetBoundedValues(0)
	x1, _, _ := second.GetBoundedValues(0)
	assert.InDelta(t, x0, x1, 0)

	var buf bytes.Buffer
	require.NoError(t, both.RenderPNG(&buf))
}

func TestBuildColumns_InteractivePalette(t *testing.T) {
	fig, err := BuildColumns(linearTable(t), Request{Columns: []int{0, 1, 0}, Kind: "line"}, nil)
	require.NoError(t, err)

	for i, s := range fig.Chart.Series {
		assert.Equal(t, defaultPalette.Color(i), s.GetStyle().StrokeColor)
	}
}

func TestBuildColumns_ExportUsesChartColors(t *testing.T) {
	fig, err := buildColumns(linearTable(t), Request{Columns: []int{0, 1}, Kind: "line"}, nil, modeExport)
	require.NoError(t, err)

	for _, s := range fig.Chart.Series {
		assert.True(t, s.GetStyle().StrokeColor.IsZero())
	}
}

func TestBuildColumns_ValidatesAllColumns(t *testing.T) {
	_, err := BuildColumns(linearTable(t), Request{Columns: []int{0, 7, -2}, Kind: "hist"}, nil)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Equal(t,
		"Column index 7 not found in the dataset.\nColumn index -2 not found in the dataset.",
		csverrors.Sprint(err))
}

func TestBuildColumns_Errors(t *testing.T) {
	tbl := linearTable(t)

	tests := []struct {
		name string
		tbl  *table.Table
		req  Request
		code string
	}{
		{"no table", nil, Request{Columns: []int{0}}, csverrors.ErrTableNotLoaded},
		{"no columns", tbl, Request{}, csverrors.ErrInputNoColumns},
		{"non numeric", tbl, Request{Columns: []int{0, 2}}, csverrors.ErrPlotNonNumeric},
		{"kind checked before columns", tbl, Request{Columns: []int{9}, Kind: "pie"}, csverrors.ErrPlotInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildColumns(tt.tbl, tt.req, nil)
			assert.True(t, csverrors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestBuildColumns_BoxTicks(t *testing.T) {
	fig, err := BuildColumns(linearTable(t), Request{Columns: []int{0, 1}, Kind: "box"}, nil)
	require.NoError(t, err)

	ticks := fig.Chart.XAxis.Ticks
	require.Len(t, ticks, 4)
	assert.InDelta(t, 0.5, ticks[0].Value, 0)
	assert.Equal(t, "x", ticks[1].Label)
	assert.Equal(t, "y", ticks[2].Label)
	assert.InDelta(t, 2.5, ticks[3].Value, 0)
}

func TestBuildColumns_ConstantColumn(t *testing.T) {
	tbl, err := table.Parse("flat.csv", strings.NewReader("v\n3\n3\n3\n"))
	require.NoError(t, err)

	for _, kind := range SupportedKinds() {
		t.Run(kind, func(t *testing.T) {
			fig, err := BuildColumns(tbl, Request{Columns: []int{0}, Kind: kind}, nil)
			require.NoError(t, err)
			require.NoError(t, fig.RenderPNG(&bytes.Buffer{}))
		})
	}
}

func TestRender_InfiniteValues(t *testing.T) {
	tbl, err := table.Parse("inf.csv", strings.NewReader("a,b\n1,2\ninf,4\n2,-inf\n3,8\n"))
	require.NoError(t, err)

	for _, kind := range SupportedKinds() {
		t.Run(kind, func(t *testing.T) {
			p, v := newPlotter(t)
			require.NoError(t, p.Render(context.Background(), tbl, Request{Columns: []int{0}, Kind: kind}))
			assert.Len(t, v.shown, 1)

			path, err := p.Export(context.Background(), tbl, ExportRequest{
				Request: Request{Columns: []int{0, 1}, Kind: kind},
				Format:  "png",
			})
			require.NoError(t, err)
			assert.FileExists(t, path)
		})
	}

	p, _ := newPlotter(t)
	fit, err := p.Compare(context.Background(), tbl, CompareRequest{X: 0, Y: 1, Kind: "line"})
	require.NoError(t, err)
	require.NotNil(t, fit)
	assert.Equal(t, 2, fit.N)
}

func TestCompare_Line(t *testing.T) {
	p, v := newPlotter(t)

	fit, err := p.Compare(context.Background(), linearTable(t), CompareRequest{X: 0, Y: 1, Kind: "line", Title: "doubling"})
	require.NoError(t, err)
	require.NotNil(t, fit)
	assert.InDelta(t, 2, fit.Slope, 1e-9)
	assert.InDelta(t, 0, fit.Intercept, 1e-9)

	require.Len(t, v.shown, 1)
	assert.Equal(t, "x versus y for doubling", v.shown[0].title)

	fig, err := BuildCompare(linearTable(t), CompareRequest{X: 0, Y: 1, Kind: "line"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Scatter Plot", "Linear Regression Line"}, fig.SeriesNames())
	assert.Equal(t, fitColor, fig.Chart.Series[1].GetStyle().StrokeColor)
	assert.Equal(t, "x", fig.Chart.XAxis.Name)
	assert.Equal(t, "y", fig.Chart.YAxis.Name)
}

func TestCompare_Scatter(t *testing.T) {
	p, v := newPlotter(t)

	fit, err := p.Compare(context.Background(), linearTable(t), CompareRequest{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Nil(t, fit)
	require.Len(t, v.shown, 1)
	assert.Equal(t, "y versus x for ", v.shown[0].title)

	fig, err := BuildCompare(linearTable(t), CompareRequest{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"Scatter Plot of y VS x"}, fig.SeriesNames())
}

func TestCompare_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  CompareRequest
		code string
	}{
		{"invalid kind", CompareRequest{X: 0, Y: 1, Kind: "bar"}, csverrors.ErrPlotInvalidKind},
		{"x out of range", CompareRequest{X: 5, Y: 1}, csverrors.ErrInputIndexOutOfRange},
		{"y out of range", CompareRequest{X: 0, Y: -1}, csverrors.ErrInputIndexOutOfRange},
		{"non numeric", CompareRequest{X: 0, Y: 2, Kind: "line"}, csverrors.ErrPlotNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, v := newPlotter(t)
			_, err := p.Compare(context.Background(), linearTable(t), tt.req)
			assert.True(t, csverrors.IsCode(err, tt.code), "got %v", err)
			assert.Empty(t, v.shown)
		})
	}
}

func TestExport_Defaults(t *testing.T) {
	p, v := newPlotter(t)

	path, err := p.Export(context.Background(), linearTable(t), ExportRequest{
		Request: Request{Columns: []int{0}, Kind: "hist"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Dir, "default"), path)
	assert.Empty(t, v.shown)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "/Title (Histogram of x)")
}

func TestExport_FilenameAndFormat(t *testing.T) {
	p, _ := newPlotter(t)

	path, err := p.Export(context.Background(), linearTable(t), ExportRequest{
		Request:  Request{Columns: []int{0, 1}, Kind: "bar"},
		Format:   "png",
		Filename: "bars.png",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestExport_InvalidInputsWriteNothing(t *testing.T) {
	tests := []struct {
		name string
		req  ExportRequest
		code string
	}{
		{
			name: "invalid kind",
			req:  ExportRequest{Request: Request{Columns: []int{0}, Kind: "pie"}},
			code: csverrors.ErrPlotInvalidKind,
		},
		{
			name: "invalid format",
			req:  ExportRequest{Request: Request{Columns: []int{0}}, Format: "gif"},
			code: csverrors.ErrExportInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPlotter(t)
			_, err := p.Export(context.Background(), linearTable(t), tt.req)
			assert.True(t, csverrors.IsCode(err, tt.code), "got %v", err)
			assert.Empty(t, dirEntries(t, p.Dir))
		})
	}
}

func TestCompareExport(t *testing.T) {
	tests := []struct {
		name     string
		req      CompareRequest
		wantFile string
		wantPDF  bool
	}{
		{
			name:     "no filename uses the title",
			req:      CompareRequest{X: 0, Y: 1, Kind: "line", Title: "run"},
			wantFile: "x versus y for run",
			wantPDF:  true,
		},
		{
			name:     "format only uses the title",
			req:      CompareRequest{X: 0, Y: 1, Format: "svg"},
			wantFile: "x versus y for ",
		},
		{
			name:     "filename given",
			req:      CompareRequest{X: 0, Y: 1, Filename: "cmp"},
			wantFile: "cmp",
			wantPDF:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, v := newPlotter(t)

			path, _, err := p.CompareExport(context.Background(), linearTable(t), tt.req)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(p.Dir, tt.wantFile), path)
			assert.Equal(t, []string{tt.wantFile}, dirEntries(t, p.Dir))
			assert.Empty(t, v.shown)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPDF, bytes.HasPrefix(data, []byte("%PDF-")))
		})
	}
}

func TestCompareExport_InvalidKindWritesNothing(t *testing.T) {
	p, _ := newPlotter(t)

	_, _, err := p.CompareExport(context.Background(), linearTable(t), CompareRequest{X: 0, Y: 1, Kind: "hist"})
	assert.True(t, csverrors.IsCode(err, csverrors.ErrPlotInvalidKind))
	assert.Empty(t, dirEntries(t, p.Dir))
}

func TestCompareExport_ReturnsFit(t *testing.T) {
	p, _ := newPlotter(t)

	_, fit, err := p.CompareExport(context.Background(), linearTable(t), CompareRequest{X: 0, Y: 1, Kind: "line", Format: "png"})
	require.NoError(t, err)
	require.NotNil(t, fit)
	assert.InDelta(t, 2, fit.Slope, 1e-9)
}

func TestRender_NoViewer(t *testing.T) {
	p := &Plotter{}
	err := p.Render(context.Background(), linearTable(t), Request{Columns: []int{0}})
	assert.True(t, csverrors.IsCode(err, csverrors.ErrViewerLaunchFailed))
}

func TestRender_BusyWrapsRendering(t *testing.T) {
	p, _ := newPlotter(t)
	var started, finished []string
	p.Busy = func(msg string) func(error) {
		started = append(started, msg)
		return func(err error) {
			assert.NoError(t, err)
			finished = append(finished, msg)
		}
	}

	require.NoError(t, p.Render(context.Background(), linearTable(t), Request{Columns: []int{0}}))
	assert.Equal(t, []string{"Rendering Histogram of x"}, started)
	assert.Equal(t, started, finished)
}
