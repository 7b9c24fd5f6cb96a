package ebitengine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tilerogue/pkg/engine/world"
)

// keyToDirection is the key→direction table: arrow keys plus the numpad
// layout (no 5).
var keyToDirection = map[ebiten.Key]world.Direction{
	ebiten.KeyArrowLeft:  world.Left,
	ebiten.KeyArrowRight: world.Right,
	ebiten.KeyArrowUp:    world.Up,
	ebiten.KeyArrowDown:  world.Down,

	ebiten.KeyNumpad4: world.Left,
	ebiten.KeyNumpad6: world.Right,
	ebiten.KeyNumpad8: world.Up,
	ebiten.KeyNumpad2: world.Down,
	ebiten.KeyNumpad7: world.LeftUp,
	ebiten.KeyNumpad9: world.RightUp,
	ebiten.KeyNumpad1: world.LeftDown,
	ebiten.KeyNumpad3: world.RightDown,
}

// decodeMovement arms the player's pending move from the held movement
// keys and cancels it on release.
//
// While several movement keys are held the most recently pressed one wins
// (last key wins), which is the key with the shortest press duration.
// Holding a key re-arms the move every tick, so the player keeps walking
// until release.
func (r *Renderer) decodeMovement() {
	player := r.sess.Player()

	for key := range keyToDirection {
		if inpututil.IsKeyJustReleased(key) {
			r.sess.ClearPendingMove(player, int(key))
		}
	}

	bestKey := ebiten.Key(-1)
	bestDuration := 0
	for key := range keyToDirection {
		d := inpututil.KeyPressDuration(key)
		if d > 0 && (bestKey < 0 || d < bestDuration) {
			bestKey = key
			bestDuration = d
		}
	}
	if bestKey >= 0 {
		dir := keyToDirection[bestKey]
		r.sess.SetPendingMove(player, dir, int(bestKey))
		r.log.Trace().Stringer("dir", dir).Msg("movement key held")
	}
}
