package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IshiGrid/internal/grid"
)

func TestAcceptPick(t *testing.T) {
	var b PathBuilder

	assert.Equal(t, Started, b.AcceptPick(grid.Pt(0, 0)))
	assert.Equal(t, Appended, b.AcceptPick(grid.Pt(3, 0)))
	assert.Equal(t, Appended, b.AcceptPick(grid.Pt(3, 3)))
	assert.True(t, b.CanClose())
	assert.Equal(t, Closed, b.AcceptPick(grid.Pt(0, 0)))

	// Closing leaves the path for the caller to take.
	assert.Equal(t, 3, b.Len())
	p := b.Take()
	assert.Equal(t, Path{grid.Pt(0, 0), grid.Pt(3, 0), grid.Pt(3, 3)}, p)
	assert.Zero(t, b.Len())
}

func TestAcceptPickIgnoresEarlyClose(t *testing.T) {
	for _, n := range []int{1, 2} {
		var b PathBuilder
		b.AcceptPick(grid.Pt(1, 1))
		if n == 2 {
			b.AcceptPick(grid.Pt(2, 1))
		}
		before := b.Path()

		assert.Equal(t, Ignored, b.AcceptPick(grid.Pt(1, 1)), "length %d", n)
		assert.Equal(t, before, b.Path())
	}
}

func TestAcceptPickAllowsRevisits(t *testing.T) {
	var b PathBuilder
	picks := []grid.Point{grid.Pt(0, 0), grid.Pt(2, 0), grid.Pt(2, 2), grid.Pt(2, 0), grid.Pt(2, 0)}
	require.Equal(t, Started, b.AcceptPick(picks[0]))
	for _, p := range picks[1:] {
		assert.Equal(t, Appended, b.AcceptPick(p))
	}
	assert.Equal(t, len(picks), b.Len())
}

func TestPathNeverExceedsAcceptedPicks(t *testing.T) {
	var b PathBuilder
	picks := []grid.Point{
		grid.Pt(4, 4), grid.Pt(4, 4), grid.Pt(5, 4), grid.Pt(4, 4),
		grid.Pt(5, 5), grid.Pt(6, 7), grid.Pt(4, 4),
	}
	accepted := 0
	for _, p := range picks {
		switch b.AcceptPick(p) {
		case Started, Appended:
			accepted++
		case Closed:
			b.Take()
			accepted = 0
		}
		assert.LessOrEqual(t, b.Len(), accepted)
	}
	assert.Zero(t, b.Len())
}

func TestRetractLast(t *testing.T) {
	var b PathBuilder
	const n = 4
	for i := 0; i < n; i++ {
		b.AcceptPick(grid.Pt(i, i+1))
	}

	for i := n - 1; i >= 0; i-- {
		p, err := b.RetractLast()
		require.NoError(t, err)
		assert.Equal(t, grid.Pt(i, i+1), p)
	}
	assert.Zero(t, b.Len())

	_, err := b.RetractLast()
	assert.ErrorIs(t, err, ErrEmptyState)

	// Back in the initial state, the next pick starts a new path.
	assert.Equal(t, Started, b.AcceptPick(grid.Pt(9, 9)))
}

func TestPathCopiesAreIndependent(t *testing.T) {
	var b PathBuilder
	b.AcceptPick(grid.Pt(1, 1))
	p := b.Path()
	p[0] = grid.Pt(7, 7)
	assert.Equal(t, Path{grid.Pt(1, 1)}, b.Path())
}
