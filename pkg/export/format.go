// Package export writes rendered charts to files.
//
// A chart reaches this package as a Renderer that can produce PNG and SVG
// bytes. PNG and SVG are written as rendered; JPEG and PDF are built from
// the PNG raster.
package export

import (
	"path/filepath"
	"strings"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatJPG Format = "jpg"
)

// DefaultFormat is used when no format is given.
const DefaultFormat = FormatPDF

// DefaultName is the file name used when neither a file name nor a
// generated title is available.
const DefaultName = "default"

var formats = []Format{FormatPDF, FormatPNG, FormatSVG, FormatJPG}

var formatAliases = map[string]Format{
	"jpeg": FormatJPG,
}

// SupportedFormats returns the accepted format names in display order.
func SupportedFormats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat maps a format name to a Format. An empty name yields
// DefaultFormat. Names are matched case-insensitively.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultFormat, nil
	}
	for _, f := range formats {
		if string(f) == name {
			return f, nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return "", csverrors.ExportInvalidFormat(name, SupportedFormats())
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Raster reports whether the format is produced from the PNG raster.
func (f Format) Raster() bool {
	return f != FormatSVG
}

// Target is a resolved output file.
type Target struct {
	// Name is the file name exactly as it will be created. No extension is
	// appended.
	Name   string
	Format Format
}

// ResolveTarget applies the default naming rules:
//
//	filename and format given  -> filename, format
//	only filename              -> filename, pdf
//	only format                -> fallback, format
//	neither                    -> fallback, pdf
//
// An empty fallback means DefaultName.
func ResolveTarget(filename, format, fallback string) (Target, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return Target{}, err
	}

	name := filename
	if name == "" {
		name = fallback
	}
	if name == "" {
		name = DefaultName
	}
	return Target{Name: name, Format: f}, nil
}

// Path joins the target name onto dir.
func (t Target) Path(dir string) string {
	if dir == "" {
		return t.Name
	}
	return filepath.Join(dir, t.Name)
}
