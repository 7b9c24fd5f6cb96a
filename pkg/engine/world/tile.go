// Package world provides generic 2D grid-based world primitives.
// Tiles and entities live in arenas owned by the Grid and refer to each
// other through stable handles, never through pointers, so the cyclic
// occupancy relationship carries no ownership cycle.
package world

// TileIndex is a stable handle into the grid's tile arena.
type TileIndex int

// NoTile marks an entity that has not been placed on any tile.
const NoTile TileIndex = -1

// Tile represents a single cell of the grid.
type Tile struct {
	// Grid position, immutable after creation
	GridX int
	GridY int

	// Occupant is the handle of the entity standing on this tile,
	// or NoEntity when the tile is empty.
	Occupant EntityID

	// Active reports whether the tile is inside the visible viewport
	// window and eligible for rendering.
	Active bool

	// Screen position in pixels. Meaningful only while Active.
	ScreenX int
	ScreenY int
}

// Occupied returns true if an entity is standing on this tile
func (t *Tile) Occupied() bool {
	return t.Occupant != NoEntity
}

// Activate marks the tile as visible at the given screen position
func (t *Tile) Activate(screenX, screenY int) {
	t.Active = true
	t.ScreenX = screenX
	t.ScreenY = screenY
}

// Deactivate marks the tile as outside the visible window
func (t *Tile) Deactivate() {
	t.Active = false
	t.ScreenX = 0
	t.ScreenY = 0
}
