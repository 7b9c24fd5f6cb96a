// Package viewport maintains the rectangular sub-window of the grid that
// is currently visible, centered as closely as possible on a focus cell.
//
// Tiles entering the window are activated with absolute screen coordinates
// (laid out left-to-right, bottom-to-top from a fixed origin) and tiles
// leaving it are deactivated. The renderer translates the whole scene by
// CameraOffset, so tiles that stay inside the window never need to be
// repositioned while the camera scrolls.
package viewport

import (
	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"tilerogue/pkg/engine/world"
)

// Listener receives per-tile activation signals from the viewport.
// The rendering collaborator creates, destroys, and positions the actual
// visual representation; the core only flips the activation flag.
type Listener interface {
	TileActivated(t *world.Tile, screenX, screenY int)
	TileDeactivated(t *world.Tile)
}

// Config holds the fixed pixel geometry of the viewport
type Config struct {
	// TileWidth and TileHeight are the pixel dimensions of one tile
	TileWidth  int
	TileHeight int

	// OriginX and OriginY are the pixel position of tile (0,0)
	OriginX int
	OriginY int
}

// window is a rectangular sub-range of grid indices, inclusive on both ends
type window struct {
	minCol, maxCol int
	minRow, maxRow int
	valid          bool
}

func (w window) contains(col, row int) bool {
	return w.valid &&
		col >= w.minCol && col <= w.maxCol &&
		row >= w.minRow && row <= w.maxRow
}

// Viewport computes the visible window and emits activation deltas when
// the window shifts
type Viewport struct {
	grid     *world.Grid
	cfg      Config
	listener Listener
	log      zerolog.Logger

	// window pixel dimensions, set by Resize
	widthPx  int
	heightPx int

	// visible tile counts, always odd and >= 1 once sized
	visibleCols int
	visibleRows int

	focusCol   int
	focusRow   int
	focusValid bool

	win    window
	active mapset.Set[world.TileIndex]
}

// New creates a viewport over the grid. The viewport emits nothing until
// both Resize and Focus have been called.
func New(grid *world.Grid, cfg Config, listener Listener, logger zerolog.Logger) *Viewport {
	return &Viewport{
		grid:     grid,
		cfg:      cfg,
		listener: listener,
		log:      logger,
		active:   mapset.New[world.TileIndex](),
	}
}

// oddTileCount converts a pixel dimension to a tile count: ceil(px/tile),
// forced up to the next odd integer so the focus tile sits exactly in the
// middle, and never below 1.
func oddTileCount(px, tilePx int) int {
	n := (px + tilePx - 1) / tilePx
	if n < 1 {
		n = 1
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// Resize recomputes the visible tile counts from the window pixel
// dimensions and re-diffs the entire window. More than one row or column
// may enter or leave on a resize, so the incremental path is never used
// here.
func (v *Viewport) Resize(widthPx, heightPx int) {
	v.widthPx = widthPx
	v.heightPx = heightPx
	v.visibleCols = oddTileCount(widthPx, v.cfg.TileWidth)
	v.visibleRows = oddTileCount(heightPx, v.cfg.TileHeight)

	v.log.Debug().
		Int("widthPx", widthPx).
		Int("heightPx", heightPx).
		Int("visibleCols", v.visibleCols).
		Int("visibleRows", v.visibleRows).
		Msg("viewport resized")

	if v.focusValid {
		v.applyFull(v.computeWindow())
	}
}

// Focus recenters the window on a cell and re-diffs it in full
func (v *Viewport) Focus(col, row int) {
	v.focusCol = col
	v.focusRow = row
	v.focusValid = true
	if v.visibleCols > 0 {
		v.applyFull(v.computeWindow())
	}
}

// Shift moves the focus one cell in the given direction and diffs only
// the rows and columns that entered or left the window
func (v *Viewport) Shift(dir world.Direction) {
	if !v.focusValid || v.visibleCols == 0 {
		return
	}
	dx, dy := dir.Delta()
	v.focusCol += dx
	v.focusRow += dy
	if !v.win.valid {
		v.applyFull(v.computeWindow())
		return
	}
	v.applyShift(v.computeWindow())
}

// VisibleCols returns the window width in tiles (odd, >= 1) once sized
func (v *Viewport) VisibleCols() int {
	return v.visibleCols
}

// VisibleRows returns the window height in tiles (odd, >= 1) once sized
func (v *Viewport) VisibleRows() int {
	return v.visibleRows
}

// Focused returns the current focus cell
func (v *Viewport) Focused() (col, row int) {
	return v.focusCol, v.focusRow
}

// Window returns the current visible range of grid indices. ok is false
// before the viewport has been sized and focused.
func (v *Viewport) Window() (minCol, maxCol, minRow, maxRow int, ok bool) {
	if !v.win.valid {
		return 0, 0, 0, 0, false
	}
	return v.win.minCol, v.win.maxCol, v.win.minRow, v.win.maxRow, true
}

// Contains reports whether a cell lies inside the current window
func (v *Viewport) Contains(col, row int) bool {
	return v.win.contains(col, row)
}

// ClampOffset reports how far the focus sits off the window center, in
// tiles. Both are zero while the window is centered; an axis goes
// negative when the window was clamped against the low grid edge and
// positive against the high edge.
func (v *Viewport) ClampOffset() (dx, dy int) {
	if !v.win.valid {
		return 0, 0
	}
	dx = v.focusCol - (v.win.minCol+v.win.maxCol)/2
	dy = v.focusRow - (v.win.minRow+v.win.maxRow)/2
	return dx, dy
}

// ScreenAt returns the absolute screen position of a cell
func (v *Viewport) ScreenAt(col, row int) (x, y int) {
	return v.cfg.OriginX + col*v.cfg.TileWidth,
		v.cfg.OriginY + row*v.cfg.TileHeight
}

// CameraOffset returns the pixel offset the renderer should translate the
// scene by so the focus tile lands in the middle of the window
func (v *Viewport) CameraOffset() (x, y int) {
	fx, fy := v.ScreenAt(v.focusCol, v.focusRow)
	x = fx - v.widthPx/2 + v.cfg.TileWidth/2
	y = fy - v.heightPx/2 + v.cfg.TileHeight/2
	return x, y
}

// computeWindow derives the window rectangle from the focus and visible
// counts, clamped to the grid extents
func (v *Viewport) computeWindow() window {
	minCol, maxCol := axisWindow(v.focusCol, v.visibleCols, v.grid.Cols())
	minRow, maxRow := axisWindow(v.focusRow, v.visibleRows, v.grid.Rows())
	return window{
		minCol: minCol, maxCol: maxCol,
		minRow: minRow, maxRow: maxRow,
		valid: true,
	}
}

// axisWindow places a window of the requested tile count around the focus
// on one axis. When the centered window would run off a grid edge it is
// pushed back inside so it still spans the requested count; when the grid
// is smaller than the viewport the window clamps to the full extent and
// the focus rides off-center.
func axisWindow(focus, visible, extent int) (min, max int) {
	span := visible
	if span > extent {
		span = extent
	}
	min = focus - visible/2
	if min < 0 {
		min = 0
	}
	if min+span > extent {
		min = extent - span
	}
	return min, min + span - 1
}

// applyFull replaces the current window, deactivating every tile that left
// it and activating every tile that entered
func (v *Viewport) applyFull(nw window) {
	old := v.win
	v.win = nw

	if old.valid {
		for row := old.minRow; row <= old.maxRow; row++ {
			for col := old.minCol; col <= old.maxCol; col++ {
				if !nw.contains(col, row) {
					v.deactivate(col, row)
				}
			}
		}
	}
	for row := nw.minRow; row <= nw.maxRow; row++ {
		for col := nw.minCol; col <= nw.maxCol; col++ {
			if !old.contains(col, row) {
				v.activate(col, row)
			}
		}
	}
}

// applyShift replaces the current window after a one-cell focus move,
// walking only the columns and rows that entered or left. The interior
// of the intersection is untouched.
func (v *Viewport) applyShift(nw window) {
	old := v.win
	v.win = nw

	// Columns that left, full height of the old window.
	for col := old.minCol; col <= old.maxCol; col++ {
		if col >= nw.minCol && col <= nw.maxCol {
			continue
		}
		for row := old.minRow; row <= old.maxRow; row++ {
			v.deactivate(col, row)
		}
	}
	// Rows that left, restricted to the shared columns.
	for row := old.minRow; row <= old.maxRow; row++ {
		if row >= nw.minRow && row <= nw.maxRow {
			continue
		}
		for col := maxInt(old.minCol, nw.minCol); col <= minInt(old.maxCol, nw.maxCol); col++ {
			v.deactivate(col, row)
		}
	}
	// Columns that entered, full height of the new window.
	for col := nw.minCol; col <= nw.maxCol; col++ {
		if col >= old.minCol && col <= old.maxCol {
			continue
		}
		for row := nw.minRow; row <= nw.maxRow; row++ {
			v.activate(col, row)
		}
	}
	// Rows that entered, restricted to the shared columns.
	for row := nw.minRow; row <= nw.maxRow; row++ {
		if row >= old.minRow && row <= old.maxRow {
			continue
		}
		for col := maxInt(old.minCol, nw.minCol); col <= minInt(old.maxCol, nw.maxCol); col++ {
			v.activate(col, row)
		}
	}
}

func (v *Viewport) activate(col, row int) {
	idx := v.grid.Index(col, row)
	if idx == world.NoTile || v.active.Has(idx) {
		return
	}
	t := v.grid.Tile(idx)
	x, y := v.ScreenAt(col, row)
	t.Activate(x, y)
	v.active.Put(idx)
	if v.listener != nil {
		v.listener.TileActivated(t, x, y)
	}
}

func (v *Viewport) deactivate(col, row int) {
	idx := v.grid.Index(col, row)
	if idx == world.NoTile || !v.active.Has(idx) {
		return
	}
	t := v.grid.Tile(idx)
	t.Deactivate()
	v.active.Remove(idx)
	if v.listener != nil {
		v.listener.TileDeactivated(t)
	}
}

// ActiveCount returns the number of currently activated tiles
func (v *Viewport) ActiveCount() int {
	return v.active.Size()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
