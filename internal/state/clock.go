package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Revision counts state-changing events of one session. Front ends compare
// revisions to skip redundant redraws.
type Revision struct {
	n atomic.Uint64
}

// Tick advances the revision and returns the new value.
func (r *Revision) Tick() uint64 {
	return r.n.Add(1)
}

// Load returns the current value.
func (r *Revision) Load() uint64 {
	return r.n.Load()
}

func newID() string {
	return uuid.NewString()
}
