package state

// ShapeStore holds the committed shapes in paint order and the history of
// prior shape sequences used for undo.
//
// ShapeStore is not safe for concurrent use; Session serializes access.
type ShapeStore struct {
	shapes  []Shape
	history [][]Shape
	limit   int
}

// NewShapeStore returns an empty store. A positive historyLimit caps the
// number of retained snapshots; zero keeps them all.
func NewShapeStore(historyLimit int) *ShapeStore {
	return &ShapeStore{limit: max(historyLimit, 0)}
}

// Commit appends a new shape built from a copy of path.
func (s *ShapeStore) Commit(path Path) (Shape, error) {
	if len(path) < MinShapeVertices {
		return Shape{}, ErrDegenerateShape
	}
	s.history = append(s.history, s.shapes)
	if s.limit > 0 && len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}

	shape := Shape{ID: newID(), Vertices: path.Clone()}
	next := make([]Shape, len(s.shapes), len(s.shapes)+1)
	copy(next, s.shapes)
	s.shapes = append(next, shape)
	return shape.clone(), nil
}

// UndoLastShape restores the shape sequence from before the last commit and
// returns the shape that was removed.
func (s *ShapeStore) UndoLastShape() (Shape, error) {
	n := len(s.shapes)
	if n == 0 {
		return Shape{}, ErrEmptyState
	}
	removed := s.shapes[n-1]

	if h := len(s.history); h > 0 {
		s.shapes = s.history[h-1]
		s.history = s.history[:h-1]
	} else {
		// History was trimmed by the limit; dropping the tail is equivalent.
		s.shapes = s.shapes[:n-1:n-1]
	}
	return removed.clone(), nil
}

// Reset drops all shapes and history.
func (s *ShapeStore) Reset() {
	s.shapes = nil
	s.history = nil
}

// Shapes returns a deep copy of the committed shapes.
func (s *ShapeStore) Shapes() []Shape {
	return cloneShapes(s.shapes)
}

// Len returns the number of committed shapes.
func (s *ShapeStore) Len() int {
	return len(s.shapes)
}

// HistoryDepth returns the number of retained snapshots.
func (s *ShapeStore) HistoryDepth() int {
	return len(s.history)
}
