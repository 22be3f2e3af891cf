package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

func init() {
	Register("pdf", func(o Options) Exporter { return &PDF{Scale: o.Scale} })
}

// PDF writes documents as a single page whose size follows the logical
// canvas. Each sub-path becomes one filled polygon.
type PDF struct {
	// Scale is tenths of a millimetre per grid unit.
	Scale float64
}

func (e *PDF) MIMEType() string  { return "application/pdf" }
func (e *PDF) Extension() string { return "pdf" }

func (e *PDF) Encode(w io.Writer, doc *Document) error {
	unit := e.Scale / 10
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: float64(doc.Width) * unit, Ht: float64(doc.Height) * unit},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetFillColor(int(Fill.R), int(Fill.G), int(Fill.B))

	for _, sp := range doc.Paths {
		verts := sp.Vertices()
		pts := make([]gofpdf.PointType, 0, len(verts))
		for _, v := range verts {
			pts = append(pts, gofpdf.PointType{X: float64(v.Col) * unit, Y: float64(v.Row) * unit})
		}
		p.Polygon(pts, "F")
	}
	return p.Output(w)
}
