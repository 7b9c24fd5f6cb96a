// Package motion resolves pending directional moves against the grid.
//
// Each entity is a two-state machine: Idle (no pending move) and
// MoveRequested (a pending move is armed). Input events arm or cancel the
// pending move; resolution runs once per tick and always returns the
// entity to Idle, whether the move succeeded or bumped into something.
package motion

import (
	"errors"

	"github.com/rs/zerolog"

	"tilerogue/pkg/engine/world"
)

// Resolver validates and applies pending moves for entities on one grid
type Resolver struct {
	grid *world.Grid
	log  zerolog.Logger
}

// NewResolver creates a resolver bound to a grid. The logger is the
// injected diagnostics sink; pass zerolog.Nop() to silence it.
func NewResolver(grid *world.Grid, logger zerolog.Logger) *Resolver {
	return &Resolver{grid: grid, log: logger}
}

// SetPendingMove arms a directional intent for the entity, overwriting any
// prior intent (last key wins). The token identifies the input that armed
// the move so a matching release can cancel it.
func (r *Resolver) SetPendingMove(id world.EntityID, dir world.Direction, token int) {
	if !dir.IsValid() {
		return
	}
	r.grid.Entity(id).SetPendingMove(dir, token)
}

// ClearPendingMove cancels the entity's pending move if it was armed by
// the same input token
func (r *Resolver) ClearPendingMove(id world.EntityID, token int) {
	r.grid.Entity(id).ReleasePendingMove(token)
}

// Resolve consumes the entity's pending move and attempts to apply it.
// Bumping into the grid edge or another entity is a normal negative
// outcome, not an error: the pending move is cleared, no state changes,
// and ok is false. On success the entity has been relocated and the
// applied direction is returned.
//
// Resolve never retries within a tick; a failed move requires a fresh
// input event.
func (r *Resolver) Resolve(id world.EntityID) (applied world.Direction, ok bool) {
	e := r.grid.Entity(id)

	dir, armed := e.TakePendingMove()
	if !armed || !e.Placed() {
		return 0, false
	}

	src := r.grid.Tile(e.Tile)
	dx, dy := dir.Delta()
	targetCol := src.GridX + dx
	targetRow := src.GridY + dy

	err := r.grid.Relocate(id, targetCol, targetRow)
	switch {
	case err == nil:
		return dir, true
	case errors.Is(err, world.ErrOutOfBounds):
		r.log.Debug().Str("entity", e.Name).Stringer("dir", dir).
			Msg("cannot move: out of bounds")
	case errors.Is(err, world.ErrCellOccupied):
		r.log.Debug().Str("entity", e.Name).Stringer("dir", dir).
			Msg("cannot move: tile occupied")
	default:
		r.log.Debug().Str("entity", e.Name).Err(err).Msg("cannot move")
	}
	return 0, false
}
