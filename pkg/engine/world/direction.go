package world

// Direction represents one of the eight compass directions.
// The order is circular (clockwise from Left) so the opposite of any
// direction is exactly four steps away.
type Direction int

// Direction constants
const (
	Left Direction = iota
	LeftUp
	Up
	RightUp
	Right
	RightDown
	Down
	LeftDown
)

const directionCount = 8

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{Left, LeftUp, Up, RightUp, Right, RightDown, Down, LeftDown}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case LeftUp:
		return "LeftUp"
	case Up:
		return "Up"
	case RightUp:
		return "RightUp"
	case Right:
		return "Right"
	case RightDown:
		return "RightDown"
	case Down:
		return "Down"
	case LeftDown:
		return "LeftDown"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the eight compass directions
func (d Direction) IsValid() bool {
	return d >= Left && d < directionCount
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 4) % directionCount
}

// Delta returns the column and row offsets for this direction.
// The grid is y-up: Up increases the row, Down decreases it.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case LeftUp:
		return -1, 1
	case Up:
		return 0, 1
	case RightUp:
		return 1, 1
	case Right:
		return 1, 0
	case RightDown:
		return 1, -1
	case Down:
		return 0, -1
	case LeftDown:
		return -1, -1
	default:
		return 0, 0
	}
}

// Horizontal reports whether the direction has a non-zero column component
func (d Direction) Horizontal() bool {
	dx, _ := d.Delta()
	return dx != 0
}

// Vertical reports whether the direction has a non-zero row component
func (d Direction) Vertical() bool {
	_, dy := d.Delta()
	return dy != 0
}
