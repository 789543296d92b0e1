package layout

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PageWriter accumulates draw commands and serialises them into a document.
// A writer serves exactly one render.
type PageWriter interface {
	Text(c Text) error
	FilledRect(c FilledRect) error
	Line(c Line) error
	Image(c Image) error
	Finalize() ([]byte, error)
}

// DocumentMeta is the document-level information stamped on the output
type DocumentMeta struct {
	Title       string
	Producer    string
	Date        time.Time
	RightMargin float64
}

// WriterFactory creates a fresh page writer for one render
type WriterFactory func(meta DocumentMeta) PageWriter

// PDFWriter is the gofpdf-backed page writer
type PDFWriter struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

// NewPDFWriter starts a single A4 page in millimetre units.
// Metadata dates are fixed so identical input yields identical bytes.
func NewPDFWriter(meta DocumentMeta) PageWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(LeftMargin, LeftMargin, meta.RightMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(meta.Date)
	pdf.SetModificationDate(meta.Date)
	pdf.SetProducer(meta.Producer, true)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()

	return &PDFWriter{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (w *PDFWriter) Text(c Text) error {
	style := ""
	if c.Bold {
		style = "B"
	}
	w.pdf.SetFont(fontFamily, style, c.Size)
	w.pdf.SetTextColor(c.Color.R, c.Color.G, c.Color.B)

	s := w.translate(c.Value)
	x := c.X
	if c.Align == AlignRight {
		x -= w.pdf.GetStringWidth(s)
	}
	w.pdf.Text(x, c.Y, s)
	return w.pdf.Error()
}

func (w *PDFWriter) FilledRect(c FilledRect) error {
	w.pdf.SetFillColor(c.Fill.R, c.Fill.G, c.Fill.B)
	w.pdf.Rect(c.X, c.Y, c.W, c.H, "F")
	return w.pdf.Error()
}

func (w *PDFWriter) Line(c Line) error {
	w.pdf.SetDrawColor(c.Color.R, c.Color.G, c.Color.B)
	w.pdf.Line(c.X1, c.Y1, c.X2, c.Y2)
	return w.pdf.Error()
}

// Image registers the PNG under the command name and places it.
// A registration failure clears the writer error and reports ErrImageRejected.
func (w *PDFWriter) Image(c Image) error {
	if c.Data == nil || len(c.Data.PNG) == 0 {
		return ErrImageRejected
	}
	if err := w.pdf.Error(); err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(c.Name, opts, bytes.NewReader(c.Data.PNG))
	if err := w.pdf.Error(); err != nil {
		w.pdf.ClearError()
		return fmt.Errorf("%w: %s: %v", ErrImageRejected, c.Name, err)
	}

	w.pdf.ImageOptions(c.Name, c.X, c.Y, c.W, c.H, false, opts, 0, "")
	return w.pdf.Error()
}

// Finalize closes the document and returns its bytes
func (w *PDFWriter) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
