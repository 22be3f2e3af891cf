package state

import (
	"errors"
	"slices"

	"IshiGrid/internal/grid"
)

var (
	// ErrEmptyState is returned when there is nothing to undo or retract.
	ErrEmptyState = errors.New("state: nothing to undo")
	// ErrDegenerateShape is returned when committing a path of fewer than three vertices.
	ErrDegenerateShape = errors.New("state: shape needs at least 3 vertices")
)

// MinShapeVertices is the smallest vertex count that can close into a Shape.
const MinShapeVertices = 3

// Path is an open polygon under construction.
type Path []grid.Point

// Clone returns a copy that does not share the receiver's backing array.
func (p Path) Clone() Path {
	if p == nil {
		return Path{}
	}
	return slices.Clone(p)
}

// First returns the starting vertex, if any.
func (p Path) First() (grid.Point, bool) {
	if len(p) == 0 {
		return grid.Point{}, false
	}
	return p[0], true
}

// Shape is a closed polygon. The edge from the last vertex back to the first
// is implied and never stored.
type Shape struct {
	ID       string       `json:"id"`
	Vertices []grid.Point `json:"vertices"`
}

func (s Shape) clone() Shape {
	s.Vertices = slices.Clone(s.Vertices)
	return s
}

func cloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.clone()
	}
	return out
}

// Action is the outcome of a pick.
type Action int

const (
	Ignored Action = iota
	Started
	Appended
	Closed
)

func (a Action) String() string {
	switch a {
	case Started:
		return "started"
	case Appended:
		return "appended"
	case Closed:
		return "closed"
	default:
		return "ignored"
	}
}

// MarshalText lets actions travel as strings in JSON messages.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UndoResult reports which part of the state an undo touched.
type UndoResult int

const (
	UndoNothing UndoResult = iota
	UndoRetractedVertex
	UndoRemovedShape
)

func (u UndoResult) String() string {
	switch u {
	case UndoRetractedVertex:
		return "retracted-vertex"
	case UndoRemovedShape:
		return "removed-shape"
	default:
		return "nothing"
	}
}

func (u UndoResult) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}
