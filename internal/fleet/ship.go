package fleet

import "fmt"

// ShipType doubles as the ship's length in cells.
type ShipType int

const (
	PatrolBoat ShipType = 2
	Submarine  ShipType = 3
	Battleship ShipType = 4
	Carrier    ShipType = 6
)

func (t ShipType) Length() int {
	return int(t)
}

func (t ShipType) String() string {
	switch t {
	case PatrolBoat:
		return "patrol_boat"
	case Submarine:
		return "submarine"
	case Battleship:
		return "battleship"
	case Carrier:
		return "carrier"
	default:
		return fmt.Sprintf("ship(%d)", int(t))
	}
}

func ParseShipType(s string) (ShipType, error) {
	for _, t := range []ShipType{PatrolBoat, Submarine, Battleship, Carrier} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShipType, s)
}

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Ship struct {
	id       int
	typ      ShipType
	row, col int
	dir      Direction
	hits     int
}

func newShip(id int, typ ShipType) Ship {
	return Ship{id: id, typ: typ, dir: Right}
}

func (s *Ship) Length() int {
	return s.typ.Length()
}

func (s *Ship) Sunk() bool {
	return s.hits == s.Length()
}

func (s *Ship) addHit() {
	if s.hits < s.Length() {
		s.hits++
	}
}

// cells lists the ship's squares starting at the head, whether or not
// they lie on the grid.
func (s *Ship) cells(row, col int, dir Direction) []Point {
	dr, dc := dir.Delta()
	points := make([]Point, s.Length())
	for i := range points {
		points[i] = Point{Row: row + i*dr, Col: col + i*dc}
	}
	return points
}

func (s *Ship) info() ShipInfo {
	return ShipInfo{
		ID:        s.id,
		Type:      s.typ,
		Length:    s.Length(),
		Hits:      s.hits,
		Sunk:      s.Sunk(),
		Row:       s.row,
		Col:       s.col,
		Direction: s.dir,
	}
}

// ShipInfo is a read-only copy of a ship.
type ShipInfo struct {
	ID        int
	Type      ShipType
	Length    int
	Hits      int
	Sunk      bool
	Row, Col  int
	Direction Direction
}

func (i ShipInfo) Cells() []Point {
	s := Ship{typ: i.Type}
	return s.cells(i.Row, i.Col, i.Direction)
}
