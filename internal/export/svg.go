package export

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

func init() {
	Register("svg", func(o Options) Exporter { return &SVG{Scale: o.Scale} })
}

// SVG writes documents as SVG 1.1. The viewBox is the logical canvas in grid
// units; width and height give the display size.
type SVG struct {
	Scale float64
}

type svgDocument struct {
	XMLName xml.Name  `xml:"svg"`
	Xmlns   string    `xml:"xmlns,attr"`
	ViewBox string    `xml:"viewBox,attr"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	Paths   []svgPath `xml:"path"`
}

type svgPath struct {
	D    string `xml:"d,attr"`
	Fill string `xml:"fill,attr"`
}

func (e *SVG) MIMEType() string  { return "image/svg+xml" }
func (e *SVG) Extension() string { return "svg" }

// Encode writes doc to w.
func (e *SVG) Encode(w io.Writer, doc *Document) error {
	out := svgDocument{
		Xmlns:   "http://www.w3.org/2000/svg",
		ViewBox: fmt.Sprintf("0 0 %d %d", doc.Width, doc.Height),
		Width:   formatLength(float64(doc.Width) * e.Scale),
		Height:  formatLength(float64(doc.Height) * e.Scale),
	}
	fill := hexColor(Fill)
	for _, sp := range doc.Paths {
		out.Paths = append(out.Paths, svgPath{D: PathData(sp), Fill: fill})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// PathData renders a sub-path as SVG path data, e.g. "M 0 0 L 2 0 L 2 2 Z".
func PathData(sp SubPath) string {
	var b strings.Builder
	for i, seg := range sp.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch seg.Op {
		case MoveTo:
			fmt.Fprintf(&b, "M %d %d", seg.Pt.Col, seg.Pt.Row)
		case LineTo:
			fmt.Fprintf(&b, "L %d %d", seg.Pt.Col, seg.Pt.Row)
		case ClosePath:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
