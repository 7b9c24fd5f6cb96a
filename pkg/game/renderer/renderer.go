// Package renderer defines the boundary between the engine core and
// display backends. A backend implements session.RenderListener to
// receive activation and movement hooks, and Renderer to own the host
// loop that drives the session.
package renderer

import (
	"tilerogue/pkg/game/session"
)

// Renderer is a display backend. Implementations include the terminal
// backend (tui) and the Ebiten graphical backend (ebitengine).
type Renderer interface {
	// Run drives the host loop until the player quits or the backend
	// fails. The session's Update, Resize, and pending-move calls all
	// happen on the loop's goroutine.
	Run(s *session.Session) error
}
