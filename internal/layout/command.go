package layout

import "github.com/garyjia/invoice-renderer/internal/domain/entity"

// Color is an RGB triple in 0-255
type Color struct {
	R, G, B int
}

var (
	black       = Color{0, 0, 0}
	headerFill  = Color{230, 230, 230}
	separator   = Color{200, 200, 200}
	summaryFill = Color{240, 245, 240}
)

// Align controls how a Text command is anchored on X
type Align int

const (
	// AlignLeft anchors the start of the string at X
	AlignLeft Align = iota
	// AlignRight anchors the end of the string at X
	AlignRight
)

// Command is a single draw instruction in page millimetres
// (origin top-left, Y growing downward)
type Command interface {
	Apply(w PageWriter) error
}

// Text draws a string with its baseline at Y
type Text struct {
	X, Y  float64
	Value string
	Bold  bool
	Size  float64
	Color Color
	Align Align
}

// FilledRect fills a rectangle without a border
type FilledRect struct {
	X, Y, W, H float64
	Fill       Color
}

// Line strokes a straight segment
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
}

// Image places a raster asset with its top-left corner at X, Y
type Image struct {
	Name string
	X, Y float64
	W, H float64
	Data *entity.Image
}

func (c Text) Apply(w PageWriter) error       { return w.Text(c) }
func (c FilledRect) Apply(w PageWriter) error { return w.FilledRect(c) }
func (c Line) Apply(w PageWriter) error       { return w.Line(c) }
func (c Image) Apply(w PageWriter) error      { return w.Image(c) }
