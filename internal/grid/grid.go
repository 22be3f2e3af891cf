// Package grid defines the fixed editing grid and the mapping between grid
// intersections and continuous render-surface coordinates.
package grid

import (
	"fmt"
	"math"
)

const (
	Cols = 10
	Rows = 14

	// IntersectionCols and IntersectionRows count pickable intersections per axis.
	IntersectionCols = Cols + 1
	IntersectionRows = Rows + 1
)

// Point is a grid intersection. Equality is plain integer equality (==).
type Point struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Pt is shorthand for Point{Col: col, Row: row}.
func Pt(col, row int) Point {
	return Point{Col: col, Row: row}
}

// Valid reports whether p lies on the grid.
func (p Point) Valid() bool {
	return p.Col >= 0 && p.Col <= Cols && p.Row >= 0 && p.Row <= Rows
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// ToRender maps p onto a render surface of the given size.
// Each axis is scaled independently; the aspect ratio is not enforced.
func ToRender(p Point, width, height float64) (x, y float64) {
	x = float64(p.Col) * width / Cols
	y = float64(p.Row) * height / Rows
	return x, y
}

// FromRender returns the intersection nearest to (x, y) on a surface of the
// given size. Ties round toward the larger coordinate and the result is
// clamped to the grid, so every input yields a valid Point.
func FromRender(x, y, width, height float64) Point {
	return Point{
		Col: quantize(x, width/Cols, Cols),
		Row: quantize(y, height/Rows, Rows),
	}
}

func quantize(v, cell float64, limit int) int {
	if !(cell > 0) || math.IsNaN(v) {
		return 0
	}
	n := math.Floor(v/cell + 0.5)
	switch {
	case n < 0:
		return 0
	case n > float64(limit):
		return limit
	}
	return int(n)
}

// Clamp pulls p onto the grid, axis by axis.
func Clamp(p Point) Point {
	return Point{
		Col: min(max(p.Col, 0), Cols),
		Row: min(max(p.Row, 0), Rows),
	}
}

// Intersections lists every intersection in row-major order.
func Intersections() []Point {
	pts := make([]Point, 0, IntersectionCols*IntersectionRows)
	for row := 0; row <= Rows; row++ {
		for col := 0; col <= Cols; col++ {
			pts = append(pts, Point{Col: col, Row: row})
		}
	}
	return pts
}
