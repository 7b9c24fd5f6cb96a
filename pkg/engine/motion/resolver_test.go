package motion

import (
	"testing"

	"github.com/rs/zerolog"

	"tilerogue/pkg/engine/world"
)

func newTestResolver(t *testing.T, cols, rows int) (*Resolver, *world.Grid) {
	t.Helper()
	g := world.NewGrid(cols, rows, zerolog.Nop())
	return NewResolver(g, zerolog.Nop()), g
}

func entityAt(t *testing.T, g *world.Grid, id world.EntityID) (col, row int) {
	t.Helper()
	e := g.Entity(id)
	if !e.Placed() {
		t.Fatalf("entity %q is not placed", e.Name)
	}
	tile := g.Tile(e.Tile)
	return tile.GridX, tile.GridY
}

func TestResolve_MoveRight(t *testing.T) {
	r, g := newTestResolver(t, 10, 10)
	player, err := g.Spawn("player", 5, 5)
	if err != nil {
		t.Fatal(err)
	}

	r.SetPendingMove(player, world.Right, 1)
	dir, ok := r.Resolve(player)
	if !ok || dir != world.Right {
		t.Fatalf("Resolve() = (%v, %v), want (Right, true)", dir, ok)
	}

	if col, row := entityAt(t, g, player); col != 6 || row != 5 {
		t.Errorf("player at (%d,%d), want (6,5)", col, row)
	}
	src, _ := g.TileAt(5, 5)
	if src.Occupied() {
		t.Errorf("source tile still occupied after move")
	}
}

func TestResolve_EdgeBumpFailsSilently(t *testing.T) {
	r, g := newTestResolver(t, 10, 10)
	player, _ := g.Spawn("player", 0, 5)

	r.SetPendingMove(player, world.Left, 1)
	if _, ok := r.Resolve(player); ok {
		t.Fatal("Resolve() into the grid edge succeeded, want silent failure")
	}
	if col, row := entityAt(t, g, player); col != 0 || row != 5 {
		t.Errorf("player at (%d,%d) after edge bump, want (0,5)", col, row)
	}

	// The pending move is consumed; without fresh input nothing happens.
	if _, ok := r.Resolve(player); ok {
		t.Error("Resolve() succeeded without a fresh pending move")
	}
}

func TestResolve_BlockedByEntity(t *testing.T) {
	r, g := newTestResolver(t, 10, 10)
	a, _ := g.Spawn("a", 3, 3)
	b, _ := g.Spawn("b", 4, 3)

	r.SetPendingMove(a, world.Right, 1)
	if _, ok := r.Resolve(a); ok {
		t.Fatal("Resolve() onto an occupied tile succeeded, want silent failure")
	}
	if col, row := entityAt(t, g, a); col != 3 || row != 3 {
		t.Errorf("a at (%d,%d), want unchanged (3,3)", col, row)
	}
	if col, row := entityAt(t, g, b); col != 4 || row != 3 {
		t.Errorf("b at (%d,%d), want unchanged (4,3)", col, row)
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	for _, dir := range world.AllDirections() {
		t.Run(dir.String(), func(t *testing.T) {
			r, g := newTestResolver(t, 5, 5)
			player, _ := g.Spawn("player", 2, 2)

			r.SetPendingMove(player, dir, 1)
			if _, ok := r.Resolve(player); !ok {
				t.Fatalf("move %v from center failed", dir)
			}
			r.SetPendingMove(player, dir.Opposite(), 2)
			if _, ok := r.Resolve(player); !ok {
				t.Fatalf("return move %v failed", dir.Opposite())
			}

			if col, row := entityAt(t, g, player); col != 2 || row != 2 {
				t.Errorf("player at (%d,%d) after round trip via %v, want (2,2)", col, row, dir)
			}
		})
	}
}

func TestResolve_AppliesDirectionDelta(t *testing.T) {
	for _, dir := range world.AllDirections() {
		t.Run(dir.String(), func(t *testing.T) {
			r, g := newTestResolver(t, 3, 3)
			player, _ := g.Spawn("player", 1, 1)

			r.SetPendingMove(player, dir, 1)
			applied, ok := r.Resolve(player)
			if !ok || applied != dir {
				t.Fatalf("Resolve() = (%v, %v), want (%v, true)", applied, ok, dir)
			}

			dx, dy := dir.Delta()
			if col, row := entityAt(t, g, player); col != 1+dx || row != 1+dy {
				t.Errorf("player at (%d,%d), want (%d,%d)", col, row, 1+dx, 1+dy)
			}
		})
	}
}

func TestSetPendingMove_LastKeyWins(t *testing.T) {
	r, g := newTestResolver(t, 10, 10)
	player, _ := g.Spawn("player", 5, 5)

	r.SetPendingMove(player, world.Up, 1)
	r.SetPendingMove(player, world.Right, 2)

	dir, ok := r.Resolve(player)
	if !ok || dir != world.Right {
		t.Errorf("Resolve() = (%v, %v), want the later intent (Right, true)", dir, ok)
	}
}

func TestClearPendingMove_TokenMustMatch(t *testing.T) {
	r, g := newTestResolver(t, 10, 10)
	player, _ := g.Spawn("player", 5, 5)

	// A release with the wrong token leaves the newer intent armed.
	r.SetPendingMove(player, world.Up, 7)
	r.ClearPendingMove(player, 9)
	if _, ok := r.Resolve(player); !ok {
		t.Error("pending move cancelled by a non-matching release token")
	}

	// A matching release cancels the move.
	r.SetPendingMove(player, world.Up, 7)
	r.ClearPendingMove(player, 7)
	if _, ok := r.Resolve(player); ok {
		t.Error("pending move survived a matching release token")
	}
}

func TestResolve_NoPendingMove(t *testing.T) {
	r, g := newTestResolver(t, 10, 10)
	player, _ := g.Spawn("player", 5, 5)

	if _, ok := r.Resolve(player); ok {
		t.Error("Resolve() with no pending move reported a move")
	}
	if col, row := entityAt(t, g, player); col != 5 || row != 5 {
		t.Errorf("player at (%d,%d), want unchanged (5,5)", col, row)
	}
}
