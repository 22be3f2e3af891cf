package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRender(t *testing.T) {
	tests := []struct {
		name          string
		p             Point
		width, height float64
		wantX, wantY  float64
	}{
		{"origin", Pt(0, 0), 480, 672, 0, 0},
		{"far corner", Pt(Cols, Rows), 480, 672, 480, 672},
		{"interior", Pt(3, 7), 480, 672, 144, 336},
		{"non-matching aspect", Pt(5, 7), 100, 100, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ToRender(tt.p, tt.width, tt.height)
			assert.InDelta(t, tt.wantX, x, 1e-9)
			assert.InDelta(t, tt.wantY, y, 1e-9)
		})
	}
}

func TestFromRender(t *testing.T) {
	// 10 px per cell on both axes.
	const w, h = 100, 140
	tests := []struct {
		name string
		x, y float64
		want Point
	}{
		{"exact", 30, 70, Pt(3, 7)},
		{"nearest below half", 34.9, 74.9, Pt(3, 7)},
		{"half rounds up", 35, 75, Pt(4, 8)},
		{"negative clamps", -50, -1, Pt(0, 0)},
		{"small negative rounds to zero", -4, -4, Pt(0, 0)},
		{"beyond surface clamps", 1e6, 1e6, Pt(Cols, Rows)},
		{"axes clamp independently", 1e6, -1e6, Pt(Cols, 0)},
		{"NaN", math.NaN(), 20, Pt(0, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromRender(tt.x, tt.y, w, h))
		})
	}
}

func TestFromRenderDegenerateSurface(t *testing.T) {
	assert.Equal(t, Pt(0, 0), FromRender(10, 10, 0, -5))
}

func TestFromRenderIdempotent(t *testing.T) {
	const w, h = 480, 672
	for x := -100.0; x < 600; x += 13.7 {
		for y := -100.0; y < 800; y += 17.3 {
			p := FromRender(x, y, w, h)
			require.True(t, p.Valid(), "(%v,%v) -> %v", x, y, p)
			assert.Equal(t, p, Clamp(p))

			rx, ry := ToRender(p, w, h)
			assert.Equal(t, p, FromRender(rx, ry, w, h))
		}
	}
}

func TestRoundTripSnapsToGrid(t *testing.T) {
	const w, h = 100, 140
	x, y := ToRender(FromRender(33, 66, w, h), w, h)
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 70.0, y)
}

func TestValidAndClamp(t *testing.T) {
	assert.True(t, Pt(0, 0).Valid())
	assert.True(t, Pt(Cols, Rows).Valid())
	assert.False(t, Pt(-1, 0).Valid())
	assert.False(t, Pt(0, Rows+1).Valid())
	assert.Equal(t, Pt(Cols, 0), Clamp(Pt(99, -3)))
}

func TestIntersections(t *testing.T) {
	pts := Intersections()
	require.Len(t, pts, IntersectionCols*IntersectionRows)
	assert.Equal(t, Pt(0, 0), pts[0])
	assert.Equal(t, Pt(1, 0), pts[1])
	assert.Equal(t, Pt(Cols, Rows), pts[len(pts)-1])
}
