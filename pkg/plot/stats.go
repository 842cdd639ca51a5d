package plot

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// HistogramBins is the number of equal-width bins of a histogram.
const HistogramBins = 10

// Fit is an ordinary least-squares line y = Slope*x + Intercept.
type Fit struct {
	Slope     float64
	Intercept float64
	// R is the Pearson correlation coefficient. It is NaN when y is constant.
	R float64
	N int
}

// At evaluates the fitted line.
func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// Regress fits y against x. Rows where either value is NaN are skipped.
func Regress(x, y []float64) (Fit, error) {
	xs, ys := pairs(x, y)
	if len(xs) < 2 {
		return Fit{}, csverrors.RegressionFailed("at least two points are required")
	}
	if stat.Variance(xs, nil) == 0 {
		return Fit{}, csverrors.RegressionFailed("all x values are equal")
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return Fit{
		Slope:     slope,
		Intercept: intercept,
		R:         stat.Correlation(xs, ys, nil),
		N:         len(xs),
	}, nil
}

// pairs returns the rows where both x and y are present.
func pairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// bin is one histogram bar covering [Lo, Hi).
type bin struct {
	Lo, Hi float64
	Count  float64
}

// histogram splits values into n equal-width bins over their range. A
// constant column gets the range value±0.5.
func histogram(values []float64, n int) []bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(n)

	dividers := make([]float64, n+1)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	bins := make([]bin, n)
	for i := range bins {
		bins[i] = bin{Lo: lo + float64(i)*width, Hi: lo + float64(i+1)*width, Count: counts[i]}
	}
	return bins
}

// boxStats summarises a column the way a box plot draws it. Whiskers end
// at the most extreme values within 1.5 IQR of the box.
type boxStats struct {
	Min, Max       float64
	Q1, Median, Q3 float64
	LowWhisker     float64
	HighWhisker    float64
	Outliers       []float64
}

func summarize(values []float64) (boxStats, bool) {
	if len(values) == 0 {
		return boxStats{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := boxStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.LinInterp, sorted, nil),
	}
	iqr := s.Q3 - s.Q1
	lowFence, highFence := s.Q1-1.5*iqr, s.Q3+1.5*iqr

	s.LowWhisker, s.HighWhisker = s.Q1, s.Q3
	for _, v := range sorted {
		if v >= lowFence {
			s.LowWhisker = math.Min(v, s.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			s.HighWhisker = math.Max(sorted[i], s.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			s.Outliers = append(s.Outliers, v)
		}
	}
	return s, true
}
