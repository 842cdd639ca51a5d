package export

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// JPEGQuality is the quality used for jpg output.
const JPEGQuality = 90

// Renderer produces the bytes of one chart.
type Renderer interface {
	RenderPNG(w io.Writer) error
	RenderSVG(w io.Writer) error
}

// Meta describes a chart for formats that carry document metadata.
type Meta struct {
	Title       string
	ToolVersion string
}

// Encode renders r in format f to w.
func Encode(w io.Writer, f Format, r Renderer, meta Meta) error {
	switch f {
	case FormatPNG:
		if err := r.RenderPNG(w); err != nil {
			return csverrors.ExportEncodeFailed(f.String(), err)
		}
		return nil
	case FormatSVG:
		if err := r.RenderSVG(w); err != nil {
			return csverrors.ExportEncodeFailed(f.String(), err)
		}
		return nil
	case FormatJPG, FormatPDF:
		img, err := rasterize(r)
		if err != nil {
			return csverrors.ExportEncodeFailed(f.String(), err)
		}
		if f == FormatJPG {
			err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
		} else {
			cfg := DefaultPDFConfig()
			cfg.Title = meta.Title
			cfg.ToolVersion = meta.ToolVersion
			err = EncodePDF(w, img, cfg)
		}
		if err != nil {
			return csverrors.ExportEncodeFailed(f.String(), err)
		}
		return nil
	default:
		return csverrors.ExportInvalidFormat(f.String(), SupportedFormats())
	}
}

// WriteFile renders r to path. The chart is encoded in memory first so a
// failed render never leaves a partial file behind.
func WriteFile(path string, f Format, r Renderer, meta Meta) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f, r, meta); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return csverrors.ExportWriteFailed(path, f.String(), err)
	}
	return nil
}

func rasterize(r Renderer) (image.Image, error) {
	var buf bytes.Buffer
	if err := r.RenderPNG(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
