package export

import (
	"bytes"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IshiGrid/internal/grid"
	"IshiGrid/internal/state"
)

type nopExporter struct{}

func (nopExporter) Encode(io.Writer, *Document) error { return nil }
func (nopExporter) MIMEType() string                  { return "text/plain" }
func (nopExporter) Extension() string                 { return "txt" }

func unregister(format string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, format)
}

func TestBuiltinFormats(t *testing.T) {
	assert.Equal(t, []string{"pdf", "png", "svg"}, Formats())
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("bmp")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegisterPanics(t *testing.T) {
	assert.Panics(t, func() { Register("svg", func(Options) Exporter { return nopExporter{} }) })
	assert.Panics(t, func() { Register("nil", nil) })
}

func TestRegisterCustom(t *testing.T) {
	Register("txt", func(Options) Exporter { return nopExporter{} })
	defer unregister("txt")

	e, err := New("txt")
	require.NoError(t, err)
	assert.Equal(t, "drawing.txt", Filename("drawing", e))
	assert.Contains(t, Formats(), "txt")
}

func squareSnapshot() state.Snapshot {
	return state.Snapshot{Shapes: []state.Shape{shape(unitSquare...)}}
}

func TestRender(t *testing.T) {
	res, err := Render(squareSnapshot(), "svg", "ishi-unit")
	require.NoError(t, err)
	assert.Equal(t, "ishi-unit.svg", res.Filename)
	assert.Equal(t, "image/svg+xml", res.MIME)
	assert.Contains(t, string(res.Data), `d="M 0 0 L 2 0 L 2 2 L 0 2 Z"`)
}

func TestRenderNothingToExport(t *testing.T) {
	res, err := Render(state.Snapshot{CurrentPath: state.Path{grid.Pt(1, 1)}}, "svg", "ishi-unit")
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Nil(t, res)
}

func TestRenderPDF(t *testing.T) {
	res, err := Render(squareSnapshot(), "pdf", "ishi-unit")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.MIME)
	assert.Equal(t, "ishi-unit.pdf", res.Filename)
	assert.True(t, bytes.HasPrefix(res.Data, []byte("%PDF-")))
}

func TestRenderPNG(t *testing.T) {
	res, err := Render(squareSnapshot(), "png", "ishi-unit", WithScale(10))
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MIME)

	img, err := png.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 140, img.Bounds().Dy())

	// Inside the 2×2 square, then well outside it.
	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(60, 100).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}
