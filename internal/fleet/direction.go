package fleet

type Direction int8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Next returns the direction a quarter turn clockwise.
func (d Direction) Next() Direction {
	return (d + 1) % 4
}

// Delta is the (row, col) step from one ship cell to the next.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	default:
		return 0, -1
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "?"
	}
}
