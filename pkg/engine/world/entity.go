package world

// EntityID is a stable handle into the grid's entity arena.
type EntityID int

// NoEntity marks a tile with no occupant.
const NoEntity EntityID = -1

// Entity is a mobile occupant of the grid. It occupies exactly one tile
// once placed, and may carry a pending directional move awaiting
// resolution on the next tick.
type Entity struct {
	// Name identifies the entity ("player", "npc3", ...)
	Name string

	// Tile is the handle of the occupied tile, or NoTile before placement.
	Tile TileIndex

	hasPending   bool
	pendingDir   Direction
	pendingToken int
}

// Placed returns true once the entity occupies a tile
func (e *Entity) Placed() bool {
	return e.Tile != NoTile
}

// SetPendingMove stores a directional intent together with the input token
// that produced it. Any prior pending move is overwritten (last key wins).
func (e *Entity) SetPendingMove(dir Direction, token int) {
	e.hasPending = true
	e.pendingDir = dir
	e.pendingToken = token
}

// ReleasePendingMove cancels the pending move, but only when token matches
// the token that armed it. Releasing a key the player is no longer moving
// with must not cancel a newer intent.
func (e *Entity) ReleasePendingMove(token int) bool {
	if !e.hasPending || e.pendingToken != token {
		return false
	}
	e.hasPending = false
	return true
}

// PendingMove returns the stored intent without consuming it
func (e *Entity) PendingMove() (Direction, bool) {
	if !e.hasPending {
		return 0, false
	}
	return e.pendingDir, true
}

// TakePendingMove returns the stored intent and clears it. Resolution
// consumes the intent whether or not the move succeeds; a fresh input
// event is required to try again.
func (e *Entity) TakePendingMove() (Direction, bool) {
	if !e.hasPending {
		return 0, false
	}
	e.hasPending = false
	return e.pendingDir, true
}
