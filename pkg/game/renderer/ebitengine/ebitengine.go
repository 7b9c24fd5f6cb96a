// Package ebitengine is the Ebiten-based graphical display backend.
//
// The core grid is y-up while Ebiten's screen is y-down, so this package
// is the single place where the vertical flip happens; everything above
// it works in the grid's bottom-left-origin coordinates.
package ebitengine

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"tilerogue/pkg/engine/viewport"
	"tilerogue/pkg/engine/world"
	"tilerogue/pkg/game/session"
)

// Window defaults matching the reference prototype
const (
	DefaultWindowWidth  = 960
	DefaultWindowHeight = 540
	DefaultTileSize     = 20
	DefaultOriginInset  = 5
)

var (
	colorBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}
	colorFloor      = color.RGBA{R: 0x2a, G: 0x2a, B: 0x32, A: 0xff}
	colorPlayer     = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	colorLabel      = color.RGBA{R: 0xfa, G: 0x64, B: 0x64, A: 0xff}
)

type tileSprite struct {
	x, y int
}

type entitySprite struct {
	x, y int
	tint color.RGBA
}

// Renderer is the Ebiten display backend. It implements ebiten.Game and
// session.RenderListener; all session mutation happens inside Update on
// the game loop goroutine.
type Renderer struct {
	log      zerolog.Logger
	sess     *session.Session
	rng      *rand.Rand
	tileSize int

	// Visuals owned by the backend, driven by the render hooks.
	tiles    map[*world.Tile]tileSprite
	entities map[*world.Entity]entitySprite

	face text.Face

	// Layout runs before Update; the size it reports is applied to the
	// session at the start of the next Update.
	layoutW, layoutH   int
	appliedW, appliedH int
	started            bool
}

// New creates the Ebiten backend. The rng tints npc sprites.
func New(rng *rand.Rand, tileSize int, logger zerolog.Logger) *Renderer {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Renderer{
		log:      logger,
		rng:      rng,
		tileSize: tileSize,
		tiles:    make(map[*world.Tile]tileSprite),
		entities: make(map[*world.Entity]entitySprite),
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
}

// Config returns the viewport geometry for this backend
func (r *Renderer) Config() viewport.Config {
	return viewport.Config{
		TileWidth:  r.tileSize,
		TileHeight: r.tileSize,
		OriginX:    DefaultOriginInset,
		OriginY:    DefaultOriginInset,
	}
}

// TileActivated implements session.RenderListener
func (r *Renderer) TileActivated(t *world.Tile, screenX, screenY int) {
	r.tiles[t] = tileSprite{x: screenX, y: screenY}
}

// TileDeactivated implements session.RenderListener
func (r *Renderer) TileDeactivated(t *world.Tile) {
	delete(r.tiles, t)
}

// EntityMoved implements session.RenderListener
func (r *Renderer) EntityMoved(e *world.Entity, screenX, screenY int) {
	spr, seen := r.entities[e]
	if !seen {
		spr.tint = r.tintFor(e)
	}
	spr.x = screenX
	spr.y = screenY
	r.entities[e] = spr
}

// tintFor picks a sprite tint: the player is plain, npcs get a random color
func (r *Renderer) tintFor(e *world.Entity) color.RGBA {
	if e.Name == "player" {
		return colorPlayer
	}
	return color.RGBA{
		R: uint8(r.rng.Intn(256)),
		G: uint8(r.rng.Intn(256)),
		B: uint8(r.rng.Intn(256)),
		A: 0xff,
	}
}

// Run opens the window and hands control to Ebiten
func (r *Renderer) Run(s *session.Session) error {
	r.sess = s
	ebiten.SetWindowSize(DefaultWindowWidth, DefaultWindowHeight)
	ebiten.SetWindowTitle("tilerogue")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(r)
}

// Update implements ebiten.Game: apply any pending resize, decode held
// keys into the player's pending move, and run one fixed tick.
func (r *Renderer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if r.layoutW != r.appliedW || r.layoutH != r.appliedH {
		r.appliedW = r.layoutW
		r.appliedH = r.layoutH
		r.sess.Resize(r.layoutW, r.layoutH)
		r.log.Debug().Int("width", r.layoutW).Int("height", r.layoutH).Msg("window resized")
		if !r.started {
			r.started = true
			r.sess.Start()
		}
	}

	r.decodeMovement()
	r.sess.Update(1.0 / 60)
	return nil
}

// Draw implements ebiten.Game
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	camX, camY := r.sess.Viewport().CameraOffset()
	size := float32(r.tileSize - 1) // 1px gap keeps the grid visible

	for _, spr := range r.tiles {
		x, y := r.toScreen(spr.x, spr.y, camX, camY)
		vector.DrawFilledRect(screen, x, y, size, size, colorFloor, false)
	}
	for _, spr := range r.entities {
		x, y := r.toScreen(spr.x, spr.y, camX, camY)
		vector.DrawFilledRect(screen, x, y, size, size, spr.tint, false)
	}

	r.drawHUD(screen)
}

// toScreen translates absolute grid-space pixels by the camera offset and
// flips to Ebiten's y-down coordinates
func (r *Renderer) toScreen(x, y, camX, camY int) (float32, float32) {
	sx := x - camX
	sy := r.appliedH - (y - camY) - r.tileSize
	return float32(sx), float32(sy)
}

// drawHUD draws the title label and the FPS counter
func (r *Renderer) drawHUD(screen *ebiten.Image) {
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(float64(r.appliedW)/2, 8)
	opts.PrimaryAlign = text.AlignCenter
	opts.ColorScale.ScaleWithColor(colorLabel)
	text.Draw(screen, gotext.Get("Hello roguelike world"), r.face, opts)

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%0.2f updates/s\n%0.2f frames/s", ebiten.ActualTPS(), ebiten.ActualFPS()),
		4, 24)
}

// Layout implements ebiten.Game. The viewport tracks the real window
// size, so the logical screen is the outside size unscaled.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.layoutW = outsideWidth
	r.layoutH = outsideHeight
	return outsideWidth, outsideHeight
}
