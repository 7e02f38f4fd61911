package fleet

import (
	"slices"
	"strings"
)

const (
	Rows = 10
	Cols = 10
)

// NoShip is the Ship of a cell no ship covers.
const NoShip = -1

// Cell is one grid square. Ship is the roster index of the covering ship, or
// NoShip when the cell is not Occupied.
type Cell struct {
	Row, Col int
	Hit      bool
	Occupied bool
	Ship     int
}

func (c Cell) String() string {
	switch {
	case c.Hit && c.Occupied:
		return "x"
	case c.Hit:
		return "o"
	case c.Occupied:
		return "#"
	default:
		return "."
	}
}

// Observer receives change notifications from a [Grid].
type Observer interface {
	GridChanged()
	CellChanged(row, col int)
}

// VictoryObserver is notified once, after the cell change that sinks the
// last ship.
type VictoryObserver interface {
	Observer
	Victory()
}

type Grid struct {
	cells     [Rows][Cols]Cell
	observers []Observer
}

func NewGrid() *Grid {
	g := &Grid{}
	g.clear()
	return g
}

func (g *Grid) clear() {
	for r := range Rows {
		for c := range Cols {
			g.cells[r][c] = Cell{Row: r, Col: c, Ship: NoShip}
		}
	}
}

// Reset zeroes every cell and notifies observers.
func (g *Grid) Reset() {
	g.clear()
	g.fireGridChanged()
}

func (g *Grid) InBounds(row, col int) bool {
	return 0 <= row && row < Rows && 0 <= col && col < Cols
}

func (g *Grid) Cell(row, col int) (Cell, bool) {
	if !g.InBounds(row, col) {
		return Cell{Ship: NoShip}, false
	}
	return g.cells[row][col], true
}

func (g *Grid) Cells() [Rows][Cols]Cell {
	return g.cells
}

// load replaces the cells with those of src and notifies observers. Observers
// of src are not carried over.
func (g *Grid) load(src *Grid) {
	g.cells = src.cells
	g.fireGridChanged()
}

func (g *Grid) reveal(row, col int) (Cell, bool) {
	cell := &g.cells[row][col]
	if cell.Hit {
		return *cell, false
	}
	cell.Hit = true
	g.fireCellChanged(row, col)
	return *cell, true
}

func (g *Grid) occupy(p Point, ship int) {
	g.cells[p.Row][p.Col].Occupied = true
	g.cells[p.Row][p.Col].Ship = ship
}

func (g *Grid) vacate(p Point) {
	g.cells[p.Row][p.Col].Occupied = false
	g.cells[p.Row][p.Col].Ship = NoShip
}

func (g *Grid) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

func (g *Grid) RemoveObserver(o Observer) {
	if i := slices.Index(g.observers, o); i >= 0 {
		g.observers = slices.Delete(g.observers, i, i+1)
	}
}

func (g *Grid) fireGridChanged() {
	for _, o := range g.observers {
		o.GridChanged()
	}
}

func (g *Grid) fireCellChanged(row, col int) {
	for _, o := range g.observers {
		o.CellChanged(row, col)
	}
}

func (g *Grid) fireVictory() {
	for _, o := range g.observers {
		if v, ok := o.(VictoryObserver); ok {
			v.Victory()
		}
	}
}

// Grid implements [fmt.Stringer]
func (g *Grid) String() string {
	var b strings.Builder
	for r := range Rows {
		for c := range Cols {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g.cells[r][c].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
