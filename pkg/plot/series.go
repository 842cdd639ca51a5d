package plot

import (
	"errors"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// barWidth is the width of a bar in x units. Bars of different columns
// share the same slots.
const barWidth = 0.8

// boxWidth is the width of a box in x units.
const boxWidth = 0.5

// fillStyle gives filled series a fill. Without an explicit fill, the
// series color becomes the fill and the edge is black.
func fillStyle(s chart.Style, defaults chart.Style) chart.Style {
	style := s.InheritFrom(defaults)
	if style.FillColor.IsZero() {
		style.FillColor = style.StrokeColor
		style.StrokeColor = edgeColor
		style.StrokeWidth = 1
	}
	return style
}

func translateX(canvasBox chart.Box, xrange chart.Range, v float64) int {
	return canvasBox.Left + xrange.Translate(v)
}

func translateY(canvasBox chart.Box, yrange chart.Range, v float64) int {
	return canvasBox.Bottom - yrange.Translate(v)
}

// barSeries draws one bar per row at x = row index.
type barSeries struct {
	Name   string
	Style  chart.Style
	Values []float64
}

var _ chart.BoundedValuesProvider = barSeries{}

func (bs barSeries) GetName() string           { return bs.Name }
func (bs barSeries) GetStyle() chart.Style     { return bs.Style }
func (bs barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

// Len counts both edges of every bar.
func (bs barSeries) Len() int { return 2 * len(bs.Values) }

func (bs barSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	row := index / 2
	x = float64(row) - barWidth/2
	if index%2 == 1 {
		x = float64(row) + barWidth/2
	}
	v := bs.Values[row]
	if math.IsNaN(v) {
		return x, 0, 0
	}
	return x, v, 0
}

func (bs barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := fillStyle(bs.Style, defaults)
	for row, v := range bs.Values {
		if math.IsNaN(v) {
			continue
		}
		chart.Draw.Box(r, chart.Box{
			Left:   translateX(canvasBox, xrange, float64(row)-barWidth/2),
			Right:  translateX(canvasBox, xrange, float64(row)+barWidth/2),
			Top:    translateY(canvasBox, yrange, math.Max(v, 0)),
			Bottom: translateY(canvasBox, yrange, math.Min(v, 0)),
		}, style)
	}
}

func (bs barSeries) Validate() error {
	if len(bs.Values) == 0 {
		return errors.New("bar series has no values")
	}
	return nil
}

// histSeries draws precomputed histogram bins.
type histSeries struct {
	Name  string
	Style chart.Style
	Bins  []bin
}

var _ chart.BoundedValuesProvider = histSeries{}

func (hs histSeries) GetName() string           { return hs.Name }
func (hs histSeries) GetStyle() chart.Style     { return hs.Style }
func (hs histSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (hs histSeries) Len() int { return 2 * len(hs.Bins) }

func (hs histSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	b := hs.Bins[index/2]
	x = b.Lo
	if index%2 == 1 {
		x = b.Hi
	}
	return x, b.Count, 0
}

func (hs histSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := fillStyle(hs.Style, defaults)
	for _, b := range hs.Bins {
		if b.Count == 0 {
			continue
		}
		chart.Draw.Box(r, chart.Box{
			Left:   translateX(canvasBox, xrange, b.Lo),
			Right:  translateX(canvasBox, xrange, b.Hi),
			Top:    translateY(canvasBox, yrange, b.Count),
			Bottom: translateY(canvasBox, yrange, 0),
		}, style)
	}
}

func (hs histSeries) Validate() error {
	if len(hs.Bins) == 0 {
		return errors.New("histogram series has no bins")
	}
	return nil
}

// boxSeries draws one box and whiskers at slot Position.
type boxSeries struct {
	Name     string
	Style    chart.Style
	Position float64
	Stats    boxStats
}

var _ chart.BoundedValuesProvider = boxSeries{}

func (bs boxSeries) GetName() string           { return bs.Name }
func (bs boxSeries) GetStyle() chart.Style     { return bs.Style }
func (bs boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (bs boxSeries) Len() int { return 2 }

func (bs boxSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	x = bs.Position - boxWidth/2
	if index == 1 {
		x = bs.Position + boxWidth/2
	}
	return x, bs.Stats.Min, bs.Stats.Max
}

func (bs boxSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.Style.InheritFrom(defaults)
	line := chart.Style{StrokeColor: style.StrokeColor, StrokeWidth: style.GetStrokeWidth()}
	s := bs.Stats

	left := translateX(canvasBox, xrange, bs.Position-boxWidth/2)
	right := translateX(canvasBox, xrange, bs.Position+boxWidth/2)
	center := translateX(canvasBox, xrange, bs.Position)
	capLeft := translateX(canvasBox, xrange, bs.Position-boxWidth/4)
	capRight := translateX(canvasBox, xrange, bs.Position+boxWidth/4)
	y := func(v float64) int { return translateY(canvasBox, yrange, v) }

	chart.Draw.Box(r, chart.Box{Left: left, Right: right, Top: y(s.Q3), Bottom: y(s.Q1)}, line)

	segment := func(x0, y0, x1, y1 int, st chart.Style) {
		st.WriteDrawingOptionsToRenderer(r)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y1)
		r.Stroke()
		r.ResetStyle()
	}
	medianStyle := line
	medianStyle.StrokeWidth = line.StrokeWidth + 1
	segment(left, y(s.Median), right, y(s.Median), medianStyle)
	segment(center, y(s.Q3), center, y(s.HighWhisker), line)
	segment(center, y(s.Q1), center, y(s.LowWhisker), line)
	segment(capLeft, y(s.HighWhisker), capRight, y(s.HighWhisker), line)
	segment(capLeft, y(s.LowWhisker), capRight, y(s.LowWhisker), line)

	if len(s.Outliers) > 0 {
		dot := chart.Style{StrokeColor: style.StrokeColor, StrokeWidth: 1, FillColor: drawing.ColorWhite}
		dot.WriteDrawingOptionsToRenderer(r)
		for _, v := range s.Outliers {
			r.Circle(3, center, y(v))
			r.FillStroke()
		}
		r.ResetStyle()
	}
}

func (bs boxSeries) Validate() error {
	return nil
}
