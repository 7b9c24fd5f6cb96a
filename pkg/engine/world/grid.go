package world

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Grid owns the tile and entity arenas for one level. Its shape is fixed
// at creation and never changes for the session.
//
// Occupancy is a dual-handle link: the tile stores the occupant's EntityID
// and the entity stores the tile's TileIndex. Both sides are always updated
// together; a disagreement means a prior mutation was not applied
// atomically and is treated as fatal.
type Grid struct {
	tiles    []Tile
	entities []Entity
	cols     int
	rows     int

	log zerolog.Logger
}

// NewGrid creates a cols x rows grid of empty walkable tiles.
// The logger is the injected diagnostics sink; pass zerolog.Nop() to
// silence it.
func NewGrid(cols, rows int, logger zerolog.Logger) *Grid {
	if cols <= 0 || rows <= 0 {
		panic("grid dimensions must be positive")
	}

	g := &Grid{
		tiles: make([]Tile, cols*rows),
		cols:  cols,
		rows:  rows,
		log:   logger,
	}

	start := time.Now()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.tiles[row*cols+col] = Tile{
				GridX:    col,
				GridY:    row,
				Occupant: NoEntity,
			}
		}
	}
	g.log.Debug().
		Int("cols", cols).
		Int("rows", rows).
		Dur("took", time.Since(start)).
		Msg("grid initialized")

	return g
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// InBounds checks if a col/row position is within grid bounds
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Index returns the tile handle for a position, or NoTile if out of bounds
func (g *Grid) Index(col, row int) TileIndex {
	if !g.InBounds(col, row) {
		return NoTile
	}
	return TileIndex(row*g.cols + col)
}

// TileAt returns the tile at the given position, or ErrOutOfBounds
func (g *Grid) TileAt(col, row int) (*Tile, error) {
	if !g.InBounds(col, row) {
		return nil, fmt.Errorf("tile at (%d,%d): %w", col, row, ErrOutOfBounds)
	}
	return &g.tiles[row*g.cols+col], nil
}

// Tile returns the tile for a handle previously obtained from this grid
func (g *Grid) Tile(idx TileIndex) *Tile {
	return &g.tiles[idx]
}

// Spawn creates a new entity and places it on the given tile.
// Returns the entity handle, or an error if the target is out of bounds
// or occupied.
func (g *Grid) Spawn(name string, col, row int) (EntityID, error) {
	g.entities = append(g.entities, Entity{Name: name, Tile: NoTile})
	id := EntityID(len(g.entities) - 1)

	if err := g.Place(id, col, row); err != nil {
		g.entities = g.entities[:len(g.entities)-1]
		return NoEntity, err
	}
	return id, nil
}

// Entity returns the entity for a handle previously obtained from this
// grid. The pointer stays valid until the next Spawn; hold the EntityID
// across spawns, not the pointer.
func (g *Grid) Entity(id EntityID) *Entity {
	return &g.entities[id]
}

// EntityCount returns the number of entities spawned into the grid
func (g *Grid) EntityCount() int {
	return len(g.entities)
}

// Place sets both sides of the occupancy link between an unplaced entity
// and an empty tile. Fails with ErrOutOfBounds, ErrCellOccupied, or
// ErrEntityPlaced without modifying any state.
func (g *Grid) Place(id EntityID, col, row int) error {
	e := g.Entity(id)
	if e.Placed() {
		return fmt.Errorf("place %q: %w", e.Name, ErrEntityPlaced)
	}

	t, err := g.TileAt(col, row)
	if err != nil {
		return fmt.Errorf("place %q: %w", e.Name, err)
	}
	if t.Occupied() {
		return fmt.Errorf("place %q at (%d,%d): %w", e.Name, col, row, ErrCellOccupied)
	}

	t.Occupant = id
	e.Tile = g.Index(col, row)

	g.log.Debug().
		Str("entity", e.Name).
		Int("col", col).
		Int("row", row).
		Msg("entity placed")
	return nil
}

// Vacate clears the tile side of the occupancy link without checking who
// occupies it. The caller is responsible for clearing the entity side in
// the same mutation; prefer Relocate or Remove, which keep both sides
// consistent.
func (g *Grid) Vacate(t *Tile) {
	t.Occupant = NoEntity
}

// Remove takes an entity off the grid, clearing both sides of the link.
// Removing an unplaced entity is a no-op.
func (g *Grid) Remove(id EntityID) {
	e := g.Entity(id)
	if !e.Placed() {
		return
	}
	g.assertLinked(id)

	g.Vacate(g.Tile(e.Tile))
	e.Tile = NoTile
}

// Relocate moves a placed entity to the target tile, vacating the source
// and claiming the target in one step. Fails with ErrOutOfBounds or
// ErrCellOccupied leaving all occupancy state untouched.
func (g *Grid) Relocate(id EntityID, col, row int) error {
	e := g.Entity(id)
	if !e.Placed() {
		return fmt.Errorf("relocate %q: entity not placed", e.Name)
	}
	g.assertLinked(id)

	target, err := g.TileAt(col, row)
	if err != nil {
		return fmt.Errorf("relocate %q: %w", e.Name, err)
	}
	if target.Occupied() {
		return fmt.Errorf("relocate %q to (%d,%d): %w", e.Name, col, row, ErrCellOccupied)
	}

	g.Vacate(g.Tile(e.Tile))
	target.Occupant = id
	e.Tile = g.Index(col, row)
	return nil
}

// ForEachTile iterates over all tiles in the grid, calling the provided
// function for each
func (g *Grid) ForEachTile(fn func(col, row int, t *Tile)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			fn(col, row, &g.tiles[row*g.cols+col])
		}
	}
}

// ForEachEntity iterates over all entities spawned into the grid
func (g *Grid) ForEachEntity(fn func(id EntityID, e *Entity)) {
	for i := range g.entities {
		fn(EntityID(i), &g.entities[i])
	}
}

// assertLinked verifies the dual-handle occupancy invariant for one placed
// entity. A disagreement can only arise from a bug inside the engine, so
// it is fatal.
func (g *Grid) assertLinked(id EntityID) {
	e := g.Entity(id)
	t := g.Tile(e.Tile)
	if t.Occupant != id {
		panic(fmt.Sprintf(
			"occupancy invariant violated: entity %q points at tile (%d,%d) occupied by %d",
			e.Name, t.GridX, t.GridY, t.Occupant,
		))
	}
}
