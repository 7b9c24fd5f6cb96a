package world

import "errors"

// Sentinel errors returned by grid placement operations. Movement bumps
// (walking into a wall or another entity) are not errors and are reported
// as boolean outcomes by the motion resolver instead.
var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid extents.
	ErrOutOfBounds = errors.New("coordinate outside grid bounds")

	// ErrCellOccupied is returned when a placement targets a tile that already
	// has an occupant.
	ErrCellOccupied = errors.New("tile already occupied")

	// ErrEntityPlaced is returned when a placement is issued for an entity
	// that is already on a tile.
	ErrEntityPlaced = errors.New("entity already placed on a tile")
)
