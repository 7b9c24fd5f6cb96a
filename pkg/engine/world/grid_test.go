package world

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

func newTestGrid(t *testing.T, cols, rows int) *Grid {
	t.Helper()
	return NewGrid(cols, rows, zerolog.Nop())
}

// checkOccupancyLinks verifies the dual-handle invariant in both
// directions: every occupied tile's occupant points back at it, and every
// placed entity's tile points back at the entity.
func checkOccupancyLinks(t *testing.T, g *Grid) {
	t.Helper()
	g.ForEachTile(func(col, row int, tile *Tile) {
		if !tile.Occupied() {
			return
		}
		e := g.Entity(tile.Occupant)
		if e.Tile != g.Index(col, row) {
			t.Fatalf("tile (%d,%d) occupied by %q, but entity points at tile %d",
				col, row, e.Name, e.Tile)
		}
	})
	g.ForEachEntity(func(id EntityID, e *Entity) {
		if !e.Placed() {
			return
		}
		tile := g.Tile(e.Tile)
		if tile.Occupant != id {
			t.Fatalf("entity %q points at tile (%d,%d), but tile is occupied by %d",
				e.Name, tile.GridX, tile.GridY, tile.Occupant)
		}
	})
}

func TestNewGrid_Dimensions(t *testing.T) {
	g := newTestGrid(t, 7, 3)
	if g.Cols() != 7 || g.Rows() != 3 {
		t.Errorf("grid = %dx%d, want 7x3", g.Cols(), g.Rows())
	}
	count := 0
	g.ForEachTile(func(col, row int, tile *Tile) {
		if tile.GridX != col || tile.GridY != row {
			t.Errorf("tile at (%d,%d) carries coords (%d,%d)", col, row, tile.GridX, tile.GridY)
		}
		if tile.Occupied() {
			t.Errorf("fresh tile (%d,%d) has occupant %d", col, row, tile.Occupant)
		}
		count++
	})
	if count != 21 {
		t.Errorf("ForEachTile visited %d tiles, want 21", count)
	}
}

func TestNewGrid_InvalidDimensionsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGrid(0, 5) did not panic")
		}
	}()
	NewGrid(0, 5, zerolog.Nop())
}

func TestTileAt_OutOfBounds(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	cases := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}}
	for _, c := range cases {
		if _, err := g.TileAt(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("TileAt(%d,%d) err = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}
	if _, err := g.TileAt(3, 3); err != nil {
		t.Errorf("TileAt(3,3) err = %v, want nil", err)
	}
}

func TestSpawn_LinksBothSides(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	id, err := g.Spawn("player", 2, 5)
	if err != nil {
		t.Fatalf("Spawn err = %v", err)
	}

	tile, _ := g.TileAt(2, 5)
	if tile.Occupant != id {
		t.Errorf("tile occupant = %d, want %d", tile.Occupant, id)
	}
	if e := g.Entity(id); e.Tile != g.Index(2, 5) {
		t.Errorf("entity tile = %d, want %d", e.Tile, g.Index(2, 5))
	}
	checkOccupancyLinks(t, g)
}

func TestSpawn_OccupiedCell(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	first, err := g.Spawn("a", 3, 3)
	if err != nil {
		t.Fatalf("Spawn err = %v", err)
	}

	if _, err := g.Spawn("b", 3, 3); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("Spawn onto occupied cell err = %v, want ErrCellOccupied", err)
	}
	if g.EntityCount() != 1 {
		t.Errorf("EntityCount() = %d after failed spawn, want 1", g.EntityCount())
	}
	tile, _ := g.TileAt(3, 3)
	if tile.Occupant != first {
		t.Errorf("tile occupant = %d after failed spawn, want %d", tile.Occupant, first)
	}
}

func TestSpawn_OutOfBounds(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	if _, err := g.Spawn("a", 10, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Spawn out of bounds err = %v, want ErrOutOfBounds", err)
	}
	if g.EntityCount() != 0 {
		t.Errorf("EntityCount() = %d after failed spawn, want 0", g.EntityCount())
	}
}

func TestPlace_AlreadyPlaced(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	id, _ := g.Spawn("a", 1, 1)
	if err := g.Place(id, 2, 2); !errors.Is(err, ErrEntityPlaced) {
		t.Errorf("Place on placed entity err = %v, want ErrEntityPlaced", err)
	}
	if e := g.Entity(id); e.Tile != g.Index(1, 1) {
		t.Errorf("entity moved by failed Place, tile = %d", e.Tile)
	}
}

func TestRelocate_MovesBothSides(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	id, _ := g.Spawn("a", 1, 1)

	if err := g.Relocate(id, 2, 1); err != nil {
		t.Fatalf("Relocate err = %v", err)
	}
	src, _ := g.TileAt(1, 1)
	if src.Occupied() {
		t.Errorf("source tile still occupied by %d", src.Occupant)
	}
	dst, _ := g.TileAt(2, 1)
	if dst.Occupant != id {
		t.Errorf("target occupant = %d, want %d", dst.Occupant, id)
	}
	checkOccupancyLinks(t, g)
}

func TestRelocate_TargetOccupied(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	a, _ := g.Spawn("a", 3, 3)
	b, _ := g.Spawn("b", 4, 3)

	if err := g.Relocate(a, 4, 3); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("Relocate onto occupied err = %v, want ErrCellOccupied", err)
	}
	if e := g.Entity(a); e.Tile != g.Index(3, 3) {
		t.Errorf("entity a moved by failed Relocate")
	}
	if e := g.Entity(b); e.Tile != g.Index(4, 3) {
		t.Errorf("entity b moved by someone else's failed Relocate")
	}
	checkOccupancyLinks(t, g)
}

func TestRelocate_OutOfBounds(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	id, _ := g.Spawn("a", 0, 0)
	if err := g.Relocate(id, -1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Relocate out of bounds err = %v, want ErrOutOfBounds", err)
	}
	if e := g.Entity(id); e.Tile != g.Index(0, 0) {
		t.Errorf("entity moved by failed Relocate")
	}
}

func TestRemove_ClearsBothSides(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	id, _ := g.Spawn("a", 5, 5)

	g.Remove(id)
	tile, _ := g.TileAt(5, 5)
	if tile.Occupied() {
		t.Errorf("tile still occupied after Remove")
	}
	if g.Entity(id).Placed() {
		t.Errorf("entity still placed after Remove")
	}

	// Removing again is a no-op.
	g.Remove(id)
	checkOccupancyLinks(t, g)
}

// TestOccupancyInvariant_RandomOps drives a random sequence of spawn,
// relocate, and remove operations and verifies the dual-handle invariant
// after every mutation.
func TestOccupancyInvariant_RandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := newTestGrid(t, 12, 9)

	var ids []EntityID
	for step := 0; step < 2000; step++ {
		col := rng.Intn(g.Cols())
		row := rng.Intn(g.Rows())

		switch op := rng.Intn(4); {
		case op == 0 && len(ids) < 20:
			name := "e"
			if id, err := g.Spawn(name, col, row); err == nil {
				ids = append(ids, id)
			}
		case op <= 2 && len(ids) > 0:
			id := ids[rng.Intn(len(ids))]
			if g.Entity(id).Placed() {
				// Both outcomes are fine; the invariant must hold either way.
				_ = g.Relocate(id, col, row)
			} else {
				_ = g.Place(id, col, row)
			}
		case len(ids) > 0:
			g.Remove(ids[rng.Intn(len(ids))])
		}

		checkOccupancyLinks(t, g)
	}
}

// TestEntity_NeverOutOfBounds confirms that no sequence of successful
// operations leaves an entity on a cell outside the grid.
func TestEntity_NeverOutOfBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := newTestGrid(t, 6, 6)
	id, err := g.Spawn("wanderer", 3, 3)
	if err != nil {
		t.Fatal(err)
	}

	for step := 0; step < 500; step++ {
		dirs := AllDirections()
		dir := dirs[rng.Intn(len(dirs))]
		tile := g.Tile(g.Entity(id).Tile)
		dx, dy := dir.Delta()
		_ = g.Relocate(id, tile.GridX+dx, tile.GridY+dy)

		at := g.Tile(g.Entity(id).Tile)
		if !g.InBounds(at.GridX, at.GridY) {
			t.Fatalf("entity ended up outside the grid at (%d,%d)", at.GridX, at.GridY)
		}
	}
}
