package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"IshiGrid/internal/grid"
)

func init() {
	Register("png", func(o Options) Exporter { return &PNG{Scale: o.Scale} })
}

// PNG writes a raster preview of a document on a white background.
type PNG struct {
	// Scale is pixels per grid unit.
	Scale float64
}

func (e *PNG) MIMEType() string  { return "image/png" }
func (e *PNG) Extension() string { return "png" }

func (e *PNG) Encode(w io.Writer, doc *Document) error {
	width := int(math.Round(float64(doc.Width) * e.Scale))
	height := int(math.Round(float64(doc.Height) * e.Scale))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	Rasterize(img, doc.Paths, Fill)
	return png.Encode(w, img)
}

// Rasterize fills each sub-path onto dst, scaling the grid to dst's bounds.
// Sub-paths are painted in order.
func Rasterize(dst draw.Image, paths []SubPath, fill color.Color) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if b.Empty() {
		return
	}
	src := image.NewUniform(fill)
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, sp := range paths {
		z.Reset(b.Dx(), b.Dy())
		for _, seg := range sp.Segments {
			x, y := grid.ToRender(seg.Pt, w, h)
			switch seg.Op {
			case MoveTo:
				z.MoveTo(float32(x), float32(y))
			case LineTo:
				z.LineTo(float32(x), float32(y))
			case ClosePath:
				z.ClosePath()
			}
		}
		z.Draw(dst, b, src, image.Point{})
	}
}
