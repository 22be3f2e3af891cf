package export

import (
	"bytes"
	"encoding/xml"
	"testing"

	"github.com/srwiley/oksvg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IshiGrid/internal/grid"
	"IshiGrid/internal/state"
)

func encodeSVG(t *testing.T, doc *Document) []byte {
	t.Helper()
	e, err := New("svg")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, e.Encode(&buf, doc))
	return buf.Bytes()
}

func TestSVGSquare(t *testing.T) {
	doc, err := Build([]state.Shape{shape(unitSquare...)}, nil)
	require.NoError(t, err)
	out := encodeSVG(t, doc)

	var parsed svgDocument
	require.NoError(t, xml.Unmarshal(out, &parsed))
	assert.Equal(t, "0 0 10 14", parsed.ViewBox)
	assert.Equal(t, "1000", parsed.Width)
	assert.Equal(t, "1400", parsed.Height)
	require.Len(t, parsed.Paths, 1)
	assert.Equal(t, "M 0 0 L 2 0 L 2 2 L 0 2 Z", parsed.Paths[0].D)
	assert.Equal(t, "#000000", parsed.Paths[0].Fill)
	assert.NotContains(t, string(out), "stroke")
}

func TestSVGOrder(t *testing.T) {
	doc, err := Build(
		[]state.Shape{shape(grid.Pt(0, 0), grid.Pt(1, 0), grid.Pt(1, 1))},
		state.Path{grid.Pt(10, 14), grid.Pt(9, 14), grid.Pt(9, 13)},
	)
	require.NoError(t, err)

	var parsed svgDocument
	require.NoError(t, xml.Unmarshal(encodeSVG(t, doc), &parsed))
	require.Len(t, parsed.Paths, 2)
	assert.Equal(t, "M 0 0 L 1 0 L 1 1 Z", parsed.Paths[0].D)
	assert.Equal(t, "M 10 14 L 9 14 L 9 13 Z", parsed.Paths[1].D)
}

func TestSVGScale(t *testing.T) {
	doc, err := Build([]state.Shape{shape(unitSquare...)}, nil)
	require.NoError(t, err)
	e, err := New("svg", WithScale(48))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Encode(&buf, doc))
	var parsed svgDocument
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, "480", parsed.Width)
	assert.Equal(t, "672", parsed.Height)
	assert.Equal(t, "0 0 10 14", parsed.ViewBox)
}

func TestSVGReadableByOksvg(t *testing.T) {
	doc, err := Build([]state.Shape{shape(unitSquare...), shape(grid.Pt(4, 4), grid.Pt(8, 4), grid.Pt(6, 9))}, nil)
	require.NoError(t, err)

	icon, err := oksvg.ReadIconStream(bytes.NewReader(encodeSVG(t, doc)))
	require.NoError(t, err)
	assert.Equal(t, 10.0, icon.ViewBox.W)
	assert.Equal(t, 14.0, icon.ViewBox.H)
	assert.Len(t, icon.SVGPaths, 2)
}

func TestPathData(t *testing.T) {
	sp := subPath([]grid.Point{grid.Pt(1, 2), grid.Pt(3, 4), grid.Pt(5, 6)})
	assert.Equal(t, "M 1 2 L 3 4 L 5 6 Z", PathData(sp))
}
