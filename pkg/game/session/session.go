// Package session ties one level together: the grid, its entities, the
// movement resolver, and the viewport. The host loop drives it through
// Update and Resize and feeds it decoded input through the pending-move
// API; the session reports back through the render hooks.
package session

import (
	"github.com/rs/zerolog"

	"tilerogue/pkg/engine/motion"
	"tilerogue/pkg/engine/viewport"
	"tilerogue/pkg/engine/world"
)

// RenderListener receives the session's render hooks. The environment is
// responsible for creating, destroying, and positioning the actual visual
// representation of tiles and entities.
type RenderListener interface {
	viewport.Listener
	EntityMoved(e *world.Entity, screenX, screenY int)
}

// Config describes a session to create
type Config struct {
	Grid   *world.Grid
	Player world.EntityID
	NPCs   []world.EntityID

	Viewport viewport.Config
	Listener RenderListener
	Logger   zerolog.Logger
}

// Session owns all mutable level state. It is single-threaded by
// contract: Update, Resize, and the pending-move API must be called from
// the same goroutine as the host loop, with no concurrent access.
type Session struct {
	grid     *world.Grid
	resolver *motion.Resolver
	view     *viewport.Viewport
	player   world.EntityID
	npcs     []world.EntityID
	listener RenderListener
	log      zerolog.Logger
}

// New creates a session over an already-populated grid. The viewport
// stays dormant until the first Resize.
func New(cfg Config) *Session {
	s := &Session{
		grid:     cfg.Grid,
		player:   cfg.Player,
		npcs:     cfg.NPCs,
		listener: cfg.Listener,
		log:      cfg.Logger,
	}
	s.resolver = motion.NewResolver(cfg.Grid, cfg.Logger)
	s.view = viewport.New(cfg.Grid, cfg.Viewport, cfg.Listener, cfg.Logger)
	return s
}

// Grid returns the session's grid
func (s *Session) Grid() *world.Grid {
	return s.grid
}

// Player returns the handle of the player entity
func (s *Session) Player() world.EntityID {
	return s.player
}

// Viewport returns the session's viewport
func (s *Session) Viewport() *viewport.Viewport {
	return s.view
}

// SetPendingMove arms a directional intent for an entity. A later intent
// for the same entity overwrites an earlier one (last key wins).
func (s *Session) SetPendingMove(id world.EntityID, dir world.Direction, token int) {
	s.resolver.SetPendingMove(id, dir, token)
}

// ClearPendingMove cancels an entity's pending move when the releasing
// input token matches the one that armed it
func (s *Session) ClearPendingMove(id world.EntityID, token int) {
	s.resolver.ClearPendingMove(id, token)
}

// Update resolves every pending move for this tick. The player resolves
// first; a successful player move shifts the viewport in the moved
// direction, which emits the activation deltas for the tiles that entered
// and left the window.
func (s *Session) Update(dt float64) {
	if dir, ok := s.resolver.Resolve(s.player); ok {
		s.view.Shift(dir)
		s.notifyMoved(s.player)
	}

	for _, id := range s.npcs {
		if _, ok := s.resolver.Resolve(id); ok {
			s.notifyMoved(id)
		}
	}
}

// Resize recomputes the viewport from the new window pixel dimensions and
// issues a full activate/deactivate diff
func (s *Session) Resize(widthPx, heightPx int) {
	s.view.Resize(widthPx, heightPx)
}

// Start focuses the viewport on the player's tile, activates the initial
// window, and announces every placed entity's screen position so the
// renderer can create their visuals. Call once after the first Resize.
func (s *Session) Start() {
	e := s.grid.Entity(s.player)
	if !e.Placed() {
		return
	}
	t := s.grid.Tile(e.Tile)
	s.view.Focus(t.GridX, t.GridY)

	s.grid.ForEachEntity(func(id world.EntityID, e *world.Entity) {
		if e.Placed() {
			s.notifyMoved(id)
		}
	})
}

func (s *Session) notifyMoved(id world.EntityID) {
	if s.listener == nil {
		return
	}
	e := s.grid.Entity(id)
	t := s.grid.Tile(e.Tile)
	x, y := s.view.ScreenAt(t.GridX, t.GridY)
	s.listener.EntityMoved(e, x, y)
}
