package state

import "IshiGrid/internal/grid"

// PathBuilder turns a stream of picks into an open path. When a pick closes
// the path, the caller takes it with Take and commits it.
//
// PathBuilder is not safe for concurrent use; Session serializes access.
type PathBuilder struct {
	path Path
}

// AcceptPick applies one pick.
//
// The first pick starts a path. Picking the starting vertex again closes the
// path when it has at least three vertices and is ignored otherwise. Every
// other pick is appended, so paths may revisit interior vertices.
func (b *PathBuilder) AcceptPick(p grid.Point) Action {
	first, ok := b.path.First()
	if !ok {
		b.path = append(b.path, p)
		return Started
	}
	if p == first {
		if len(b.path) >= MinShapeVertices {
			return Closed
		}
		return Ignored
	}
	b.path = append(b.path, p)
	return Appended
}

// RetractLast removes the most recent vertex. It returns ErrEmptyState when
// the path is already empty.
func (b *PathBuilder) RetractLast() (grid.Point, error) {
	n := len(b.path)
	if n == 0 {
		return grid.Point{}, ErrEmptyState
	}
	last := b.path[n-1]
	b.path = b.path[:n-1]
	if len(b.path) == 0 {
		b.path = nil
	}
	return last, nil
}

// Take returns the path and leaves the builder empty.
func (b *PathBuilder) Take() Path {
	p := b.path.Clone()
	b.path = nil
	return p
}

// Clear drops the path.
func (b *PathBuilder) Clear() {
	b.path = nil
}

// Path returns a copy of the path under construction.
func (b *PathBuilder) Path() Path {
	return b.path.Clone()
}

// Len returns the number of vertices in the path.
func (b *PathBuilder) Len() int {
	return len(b.path)
}

// CanClose reports whether picking the starting vertex would close the path.
func (b *PathBuilder) CanClose() bool {
	return len(b.path) >= MinShapeVertices
}
