// Package export turns editor state into vector and raster documents.
//
// Build assembles a format-neutral Document from the committed shapes and
// the path in progress. Exporters registered by format name ("svg", "pdf",
// "png") encode a Document to a writer.
package export

import (
	"errors"
	"image/color"

	"IshiGrid/internal/grid"
	"IshiGrid/internal/state"
)

// ErrNothingToExport is returned when no shape is eligible for export.
var ErrNothingToExport = errors.New("export: nothing to export")

// Fill is the solid color of every exported shape.
var Fill = color.NRGBA{A: 0xff}

// Op is a path construction instruction.
type Op int

const (
	MoveTo Op = iota
	LineTo
	ClosePath
)

// Segment is one instruction of a sub-path. Close carries no point.
type Segment struct {
	Op Op
	Pt grid.Point
}

// SubPath is one closed, filled polygon.
type SubPath struct {
	Segments []Segment
}

// Vertices returns the points visited by the sub-path, in order.
func (sp SubPath) Vertices() []grid.Point {
	pts := make([]grid.Point, 0, len(sp.Segments))
	for _, seg := range sp.Segments {
		if seg.Op != ClosePath {
			pts = append(pts, seg.Pt)
		}
	}
	return pts
}

// Document is a format-neutral vector image on a logical canvas measured in
// grid units.
type Document struct {
	Width, Height int
	Paths         []SubPath
}

// Build assembles the document for the committed shapes plus the path in
// progress. The path is appended as the last shape only when it has enough
// vertices to form a polygon; a shorter one is dropped silently.
func Build(shapes []state.Shape, current state.Path) (*Document, error) {
	polys := make([][]grid.Point, 0, len(shapes)+1)
	for _, s := range shapes {
		polys = append(polys, s.Vertices)
	}
	if len(current) >= state.MinShapeVertices {
		polys = append(polys, current)
	}

	doc := &Document{Width: grid.Cols, Height: grid.Rows}
	for _, poly := range polys {
		// Committed shapes always have three vertices; the guard only
		// protects against hand-built input.
		if len(poly) < state.MinShapeVertices {
			continue
		}
		doc.Paths = append(doc.Paths, subPath(poly))
	}
	if len(doc.Paths) == 0 {
		return nil, ErrNothingToExport
	}
	return doc, nil
}

// FromSnapshot builds the document for a session snapshot.
func FromSnapshot(snap state.Snapshot) (*Document, error) {
	return Build(snap.Shapes, snap.CurrentPath)
}

func subPath(poly []grid.Point) SubPath {
	segs := make([]Segment, 0, len(poly)+1)
	for i, p := range poly {
		op := LineTo
		if i == 0 {
			op = MoveTo
		}
		segs = append(segs, Segment{Op: op, Pt: p})
	}
	segs = append(segs, Segment{Op: ClosePath})
	return SubPath{Segments: segs}
}
