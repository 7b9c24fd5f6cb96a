// Package tui is the terminal display backend. Each tile maps to one
// terminal cell, so the viewport geometry runs with a 1x1 "pixel" tile.
// Terminal input has no key-release events, so every key press arms a
// single pending move that resolves on the following tick.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"tilerogue/pkg/engine/input"
	"tilerogue/pkg/engine/viewport"
	"tilerogue/pkg/engine/world"
	"tilerogue/pkg/game/session"
)

// Glyphs for the map
const (
	IconPlayer = "@"
	IconNPC    = "n"
	IconFloor  = "·"
)

// Rows reserved outside the map for the title and help line
const chromeRows = 3

// Fallback terminal size when the real size cannot be determined
const (
	defaultTermWidth  = 80
	defaultTermHeight = 24
)

// Renderer is the terminal-based display backend
type Renderer struct {
	log zerolog.Logger

	colorFloor  color.Style
	colorPlayer color.Style
	colorNPC    color.Style
	colorSubtle color.Style

	lastWidth  int
	lastHeight int
}

// New creates the terminal backend
func New(logger zerolog.Logger) *Renderer {
	return &Renderer{
		log:         logger,
		colorFloor:  color.Style{color.FgGray},
		colorPlayer: color.Style{color.FgGreen, color.OpBold},
		colorNPC:    color.Style{color.FgMagenta},
		colorSubtle: color.Style{color.FgGray, color.OpBold},
	}
}

// TileActivated implements session.RenderListener. The terminal backend
// redraws the whole window from grid state each frame, so activation only
// needs logging.
func (t *Renderer) TileActivated(tile *world.Tile, screenX, screenY int) {
	t.log.Trace().Int("col", tile.GridX).Int("row", tile.GridY).Msg("tile activated")
}

// TileDeactivated implements session.RenderListener
func (t *Renderer) TileDeactivated(tile *world.Tile) {
	t.log.Trace().Int("col", tile.GridX).Int("row", tile.GridY).Msg("tile deactivated")
}

// EntityMoved implements session.RenderListener
func (t *Renderer) EntityMoved(e *world.Entity, screenX, screenY int) {
	t.log.Trace().Str("entity", e.Name).Int("x", screenX).Int("y", screenY).Msg("entity moved")
}

// Config returns the viewport geometry for this backend: one terminal
// cell per tile, origin at zero
func Config() viewport.Config {
	return viewport.Config{TileWidth: 1, TileHeight: 1}
}

// termSize returns the terminal dimensions, with fallbacks
func termSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return defaultTermWidth, defaultTermHeight
	}
	return width, height
}

// Run drives the blocking read-key / tick / redraw loop
func (t *Renderer) Run(s *session.Session) error {
	t.applySize(s)
	s.Start()

	for {
		t.drawFrame(s)

		key, err := input.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if key == input.KeyQuit {
			return nil
		}

		dir, found := input.KeyToDirection[key]
		if !found {
			continue
		}

		// The terminal delivers no release events, so the armed move is
		// consumed by the very next tick.
		s.SetPendingMove(s.Player(), dir, int(key))
		s.Update(1.0 / 60)

		t.applySize(s)
	}
}

// applySize forwards terminal size changes to the session
func (t *Renderer) applySize(s *session.Session) {
	width, height := termSize()
	height -= chromeRows
	if height < 1 {
		height = 1
	}
	if width == t.lastWidth && height == t.lastHeight {
		return
	}
	t.lastWidth = width
	t.lastHeight = height
	s.Resize(width, height)
}

// drawFrame redraws the visible window. Rows print top-down, so the
// y-up grid is walked from maxRow to minRow.
func (t *Renderer) drawFrame(s *session.Session) {
	var b strings.Builder

	// ANSI clear + home
	b.WriteString("\033[2J\033[H")

	b.WriteString(t.colorSubtle.Sprint(gotext.Get("Hello roguelike world")))
	b.WriteString("\r\n")

	minCol, maxCol, minRow, maxRow, ok := s.Viewport().Window()
	if ok {
		grid := s.Grid()
		for row := maxRow; row >= minRow; row-- {
			for col := minCol; col <= maxCol; col++ {
				tile, err := grid.TileAt(col, row)
				if err != nil {
					continue
				}
				b.WriteString(t.glyphFor(s, tile))
			}
			b.WriteString("\r\n")
		}
	}

	b.WriteString(t.colorSubtle.Sprint(gotext.Get("Move: arrows / hjkl+yubn / numpad. q quits.")))
	b.WriteString("\r\n")

	fmt.Print(b.String())
}

// glyphFor picks the styled glyph for one tile
func (t *Renderer) glyphFor(s *session.Session, tile *world.Tile) string {
	if !tile.Occupied() {
		return t.colorFloor.Sprint(IconFloor)
	}
	if tile.Occupant == s.Player() {
		return t.colorPlayer.Sprint(IconPlayer)
	}
	return t.colorNPC.Sprint(IconNPC)
}
