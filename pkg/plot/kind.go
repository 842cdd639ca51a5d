package plot

import (
	"strings"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// Kind is a single-column chart type.
type Kind string

const (
	KindHist Kind = "hist"
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindBox  Kind = "box"
)

// DefaultKind is used when no kind is given.
const DefaultKind = KindHist

var kinds = []Kind{KindHist, KindLine, KindBar, KindBox}

var kindLabels = map[Kind]string{
	KindHist: "Histogram",
	KindLine: "Line plot",
	KindBar:  "Bar plot",
	KindBox:  "Box plot",
}

// SupportedKinds returns the accepted kind names in display order.
func SupportedKinds() []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// ParseKind maps a name to a Kind. An empty name yields DefaultKind.
// Matching is exact apart from surrounding whitespace.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultKind, nil
	}
	for _, k := range kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", csverrors.InvalidPlotKind(name, SupportedKinds())
}

func (k Kind) String() string {
	return string(k)
}

// Label is the title prefix used for generated titles, e.g. "Histogram".
func (k Kind) Label() string {
	return kindLabels[k]
}

// Title returns the generated title for one column.
func (k Kind) Title(column string) string {
	return k.Label() + " of " + column
}

// CompareKind is a two-column chart type.
type CompareKind string

const (
	// CompareScatter draws y against x as points.
	CompareScatter CompareKind = "scatter"
	// CompareLine draws the points plus their least-squares line.
	CompareLine CompareKind = "line"
)

// DefaultCompareKind is used when no comparison kind is given.
const DefaultCompareKind = CompareScatter

var compareKinds = []CompareKind{CompareScatter, CompareLine}

// SupportedCompareKinds returns the accepted comparison kind names.
func SupportedCompareKinds() []string {
	out := make([]string, len(compareKinds))
	for i, k := range compareKinds {
		out[i] = string(k)
	}
	return out
}

// ParseCompareKind maps a name to a CompareKind. An empty name yields
// DefaultCompareKind.
func ParseCompareKind(name string) (CompareKind, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCompareKind, nil
	}
	for _, k := range compareKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", csverrors.InvalidPlotKind(name, SupportedCompareKinds())
}

func (k CompareKind) String() string {
	return string(k)
}

// CompareTitle is the title of every comparison chart. An empty title
// still leaves the trailing "for ".
func CompareTitle(x, y, title string) string {
	return x + " versus " + y + " for " + title
}
