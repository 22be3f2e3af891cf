package state

import (
	"log/slog"
	"sync"

	"IshiGrid/internal/grid"
)

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	historyLimit int
	onChange     func(Snapshot)
}

// WithHistoryLimit caps the undo history kept by the session's ShapeStore.
// Zero, the default, keeps every snapshot.
func WithHistoryLimit(n int) SessionOption {
	return func(o *sessionOptions) {
		o.historyLimit = n
	}
}

// WithOnChange registers a callback invoked after every state change with a
// snapshot of the new state. It runs outside the session lock.
func WithOnChange(fn func(Snapshot)) SessionOption {
	return func(o *sessionOptions) {
		o.onChange = fn
	}
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	SessionID    string  `json:"session_id"`
	Revision     uint64  `json:"revision"`
	Shapes       []Shape `json:"shapes"`
	CurrentPath  Path    `json:"current_path"`
	HistoryDepth int     `json:"history_depth"`
	CanUndo      bool    `json:"can_undo"`
	CanClose     bool    `json:"can_close"`
}

// Session owns the editing state of one user: the path under construction,
// the committed shapes and their history. Every operation runs under one
// lock, so a Session may be driven from several goroutines.
type Session struct {
	id       string
	mu       sync.Mutex
	builder  PathBuilder
	store    *ShapeStore
	rev      Revision
	onChange func(Snapshot)
	log      *slog.Logger
}

// NewSession creates an empty session.
func NewSession(opts ...SessionOption) *Session {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	id := newID()
	return &Session{
		id:       id,
		store:    NewShapeStore(o.historyLimit),
		onChange: o.onChange,
		log:      Logger().With("session", id),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Pick feeds one grid intersection to the path builder. A pick that closes
// the path commits it as a new shape. Points off the grid are ignored.
func (s *Session) Pick(p grid.Point) Action {
	if !p.Valid() {
		s.log.Warn("pick outside grid ignored", "point", p)
		return Ignored
	}

	s.mu.Lock()
	action := s.builder.AcceptPick(p)
	if action == Closed {
		shape, err := s.store.Commit(s.builder.Path())
		if err != nil {
			s.log.Error("commit closed path", "error", err)
			action = Ignored
		} else {
			s.builder.Clear()
			s.log.Debug("shape committed", "shape", shape.ID, "vertices", len(shape.Vertices))
		}
	}
	snap, changed := s.finishLocked(action != Ignored)
	s.mu.Unlock()

	s.log.Debug("pick", "point", p, "action", action)
	if changed {
		s.notify(snap)
	}
	return action
}

// PickAt quantizes a pointer position on a render surface of the given size
// and picks the resulting intersection.
func (s *Session) PickAt(x, y, width, height float64) (grid.Point, Action) {
	p := grid.FromRender(x, y, width, height)
	return p, s.Pick(p)
}

// Undo reverts the most recent edit. A vertex of the path under
// construction is retracted first; only when no path is in progress is the
// last committed shape removed. With nothing to undo it returns
// ErrEmptyState.
func (s *Session) Undo() (UndoResult, error) {
	s.mu.Lock()
	result, err := s.undoLocked()
	snap, changed := s.finishLocked(err == nil)
	s.mu.Unlock()

	if err != nil {
		s.log.Debug("undo with empty state")
		return UndoNothing, err
	}
	s.log.Debug("undo", "result", result)
	if changed {
		s.notify(snap)
	}
	return result, nil
}

func (s *Session) undoLocked() (UndoResult, error) {
	if s.builder.Len() > 0 {
		if _, err := s.builder.RetractLast(); err != nil {
			return UndoNothing, err
		}
		return UndoRetractedVertex, nil
	}
	if _, err := s.store.UndoLastShape(); err != nil {
		return UndoNothing, err
	}
	return UndoRemovedShape, nil
}

// Reset clears shapes, history and the path under construction.
func (s *Session) Reset() {
	s.mu.Lock()
	s.store.Reset()
	s.builder.Clear()
	snap, _ := s.finishLocked(true)
	s.mu.Unlock()

	s.log.Info("session reset")
	s.notify(snap)
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canUndoLocked()
}

// CanReset reports whether there is anything to reset. It matches CanUndo.
func (s *Session) CanReset() bool {
	return s.CanUndo()
}

func (s *Session) canUndoLocked() bool {
	return s.builder.Len() > 0 || s.store.Len() > 0
}

// Shapes returns a copy of the committed shapes in paint order.
func (s *Session) Shapes() []Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Shapes()
}

// CurrentPath returns a copy of the path under construction.
func (s *Session) CurrentPath() Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builder.Path()
}

// Snapshot returns a consistent copy of the whole session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:    s.id,
		Revision:     s.rev.Load(),
		Shapes:       s.store.Shapes(),
		CurrentPath:  s.builder.Path(),
		HistoryDepth: s.store.HistoryDepth(),
		CanUndo:      s.canUndoLocked(),
		CanClose:     s.builder.CanClose(),
	}
}

// finishLocked bumps the revision when the state changed and prepares the
// snapshot handed to the change callback.
func (s *Session) finishLocked(changed bool) (Snapshot, bool) {
	if !changed {
		return Snapshot{}, false
	}
	s.rev.Tick()
	if s.onChange == nil {
		return Snapshot{}, false
	}
	return s.snapshotLocked(), true
}

func (s *Session) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}
