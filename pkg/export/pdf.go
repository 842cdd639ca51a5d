package export

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"io"
	"strings"
	"time"
)

// PDF constants for document generation.
const (
	// PDFVersion is the PDF specification version used.
	PDFVersion = "1.4"

	// PDFProducer is the producer string embedded in PDF metadata.
	PDFProducer = "csvplot export package"

	// DefaultPDFDPI maps one image pixel to one point.
	DefaultPDFDPI = 72
)

// PDFConfig specifies options for wrapping a chart image in a PDF.
type PDFConfig struct {
	// Title is stored in the document metadata.
	Title string

	// Subject is stored in the document metadata.
	Subject string

	// ToolVersion is included in the /Creator entry.
	ToolVersion string

	// DPI converts image pixels to page points.
	// Default: 72
	DPI float64

	// IncludeMetadata embeds an /Info dictionary.
	// Default: true
	IncludeMetadata bool

	// Compress deflates the page and image streams.
	// Default: true
	Compress bool

	// Now is the creation timestamp. Zero means time.Now.
	Now time.Time
}

// DefaultPDFConfig returns a PDFConfig with defaults.
func DefaultPDFConfig() *PDFConfig {
	return &PDFConfig{
		DPI:             DefaultPDFDPI,
		IncludeMetadata: true,
		Compress:        true,
	}
}

// EncodePDF writes a single-page PDF whose page is exactly the size of img.
func EncodePDF(w io.Writer, img image.Image, config *PDFConfig) error {
	if config == nil {
		config = DefaultPDFConfig()
	}
	dpi := config.DPI
	if dpi <= 0 {
		dpi = DefaultPDFDPI
	}

	b := img.Bounds()
	width := float64(b.Dx()) * 72 / dpi
	height := float64(b.Dy()) * 72 / dpi

	doc := newPDFDocument(config)
	imgObj := doc.addImage(img)
	content := fmt.Sprintf("q\n%.2f 0 0 %.2f 0 0 cm\n/Im1 Do\nQ\n", width, height)
	doc.addPage(width, height, content, imgObj)

	_, err := w.Write(doc.build())
	return err
}

// escapePDFString escapes special characters for PDF text strings.
func escapePDFString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}

// -----------------------------------------------------------------------------
// PDF Document Builder (Internal)
// -----------------------------------------------------------------------------

// Objects 1 and 2 are always the catalog and the page tree.
const reservedObjects = 2

type pdfDocument struct {
	config  *PDFConfig
	objects []string
	pages   []int
}

func newPDFDocument(config *PDFConfig) *pdfDocument {
	return &pdfDocument{config: config}
}

// addObject adds an object and returns its final object number.
func (doc *pdfDocument) addObject(content string) int {
	doc.objects = append(doc.objects, content)
	return len(doc.objects) + reservedObjects
}

// stream returns data, compressed when the document asks for it, and the
// matching /Filter entry.
func (doc *pdfDocument) stream(data []byte) ([]byte, string) {
	if !doc.config.Compress {
		return data, ""
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes(), "/Filter /FlateDecode\n"
}

// addImage stores img as an 8-bit DeviceRGB image XObject.
func (doc *pdfDocument) addImage(img image.Image) int {
	b := img.Bounds()
	raw := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			// Composite onto white; charts are opaque except for
			// anti-aliased edges.
			r = r + (0xffff - a)
			g = g + (0xffff - a)
			bl = bl + (0xffff - a)
			raw = append(raw, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}

	data, filter := doc.stream(raw)
	obj := fmt.Sprintf("<< /Type /XObject\n/Subtype /Image\n/Width %d\n/Height %d\n/ColorSpace /DeviceRGB\n/BitsPerComponent 8\n/Length %d\n%s>>\nstream\n%s\nendstream",
		b.Dx(), b.Dy(), len(data), filter, data)
	return doc.addObject(obj)
}

// addPage adds a page drawing the given content stream with image
// object imgObj available as /Im1.
func (doc *pdfDocument) addPage(width, height float64, content string, imgObj int) {
	data, filter := doc.stream([]byte(content))
	streamObj := fmt.Sprintf("<< /Length %d\n%s>>\nstream\n%s\nendstream", len(data), filter, data)
	streamObjNum := doc.addObject(streamObj)

	pageObj := fmt.Sprintf("<< /Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents %d 0 R\n/Resources << /XObject << /Im1 %d 0 R >> >>\n>>",
		width, height, streamObjNum, imgObj)
	doc.pages = append(doc.pages, doc.addObject(pageObj))
}

// build generates the complete PDF file.
func (doc *pdfDocument) build() []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%%PDF-%s\n", PDFVersion))
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	kids := make([]string, len(doc.pages))
	for i, pageNum := range doc.pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageNum)
	}

	finalObjects := []string{
		"<< /Type /Catalog\n/Pages 2 0 R\n>>",
		fmt.Sprintf("<< /Type /Pages\n/Kids [%s]\n/Count %d\n>>", strings.Join(kids, " "), len(doc.pages)),
	}
	finalObjects = append(finalObjects, doc.objects...)

	infoObjNum := 0
	if doc.config.IncludeMetadata {
		finalObjects = append(finalObjects, doc.buildInfoDict())
		infoObjNum = len(finalObjects)
	}

	xref := make([]int, len(finalObjects)+1)
	for i, obj := range finalObjects {
		xref[i+1] = buf.Len()
		buf.WriteString(fmt.Sprintf("%d 0 obj\n%s\nendobj\n", i+1, obj))
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	buf.WriteString(fmt.Sprintf("0 %d\n", len(finalObjects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(finalObjects); i++ {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", xref[i]))
	}

	buf.WriteString("trailer\n")
	buf.WriteString(fmt.Sprintf("<< /Size %d\n/Root 1 0 R\n", len(finalObjects)+1))
	if infoObjNum > 0 {
		buf.WriteString(fmt.Sprintf("/Info %d 0 R\n", infoObjNum))
	}
	buf.WriteString(">>\n")
	buf.WriteString("startxref\n")
	buf.WriteString(fmt.Sprintf("%d\n", xrefPos))
	buf.WriteString("%%EOF\n")

	return buf.Bytes()
}

// buildInfoDict creates the PDF Info dictionary for metadata.
func (doc *pdfDocument) buildInfoDict() string {
	var sb strings.Builder
	sb.WriteString("<<\n")

	if doc.config.Title != "" {
		sb.WriteString(fmt.Sprintf("/Title (%s)\n", escapePDFString(doc.config.Title)))
	}
	if doc.config.Subject != "" {
		sb.WriteString(fmt.Sprintf("/Subject (%s)\n", escapePDFString(doc.config.Subject)))
	}

	sb.WriteString(fmt.Sprintf("/Producer (%s)\n", escapePDFString(PDFProducer)))
	if doc.config.ToolVersion != "" {
		sb.WriteString(fmt.Sprintf("/Creator (csvplot %s)\n", escapePDFString(doc.config.ToolVersion)))
	} else {
		sb.WriteString("/Creator (csvplot)\n")
	}

	now := doc.config.Now
	if now.IsZero() {
		now = time.Now()
	}
	dateStr := now.UTC().Format("D:20060102150405Z")
	sb.WriteString(fmt.Sprintf("/CreationDate (%s)\n", dateStr))
	sb.WriteString(fmt.Sprintf("/ModDate (%s)\n", dateStr))

	sb.WriteString(">>")
	return sb.String()
}
