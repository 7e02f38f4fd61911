package fleet

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

const (
	scrambleMoves    = 1000
	scrambleAttempts = 10000

	// Cap on candidate positions tried per search pass, so that a roster
	// which slips past the area guards still terminates.
	maxPlacementSteps = 2_000_000
)

// Placement positions a roster of ships on a grid. It mutates both the grid
// and the ships it was created with.
type Placement struct {
	grid      *Grid
	ships     []Ship
	order     []int
	steps     int
	limit     int
	exhausted bool
}

func NewPlacement(grid *Grid, ships []Ship) *Placement {
	return &Placement{grid: grid, ships: ships}
}

// NewShips builds unplaced ships for roster, ids being roster indices.
func NewShips(roster []ShipType) []Ship {
	ships := make([]Ship, len(roster))
	for i, t := range roster {
		ships[i] = newShip(i, t)
	}
	return ships
}

// Steps reports how many candidate positions the last PlaceAll tried.
func (p *Placement) Steps() int {
	return p.steps
}

/*
Legal reports whether ship i fits with its head at (row, col) facing dir.

Every cell of the ship must be on the grid, and no cell within one square of
any of them (diagonals included) may belong to another ship. Cells marked
with i itself never collide, so a ship can be checked against its own
current footprint when it moves or turns.
*/
func (p *Placement) Legal(i, row, col int, dir Direction) bool {
	ship := &p.ships[i]
	points := ship.cells(row, col, dir)
	for _, pt := range points {
		if !p.grid.InBounds(pt.Row, pt.Col) {
			return false
		}
	}
	for _, pt := range points {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := pt.Row+dr, pt.Col+dc
				if !p.grid.InBounds(r, c) {
					continue
				}
				if cell := p.grid.cells[r][c]; cell.Occupied && cell.Ship != i {
					return false
				}
			}
		}
	}
	return true
}

func (p *Placement) put(i int) {
	ship := &p.ships[i]
	for _, pt := range ship.cells(ship.row, ship.col, ship.dir) {
		p.grid.occupy(pt, i)
	}
}

func (p *Placement) erase(i int) {
	ship := &p.ships[i]
	for _, pt := range ship.cells(ship.row, ship.col, ship.dir) {
		p.grid.vacate(pt)
	}
}

// Move shifts placed ship i so that its head lands on (row, col).
func (p *Placement) Move(i, row, col int) bool {
	ship := &p.ships[i]
	if !p.Legal(i, row, col, ship.dir) {
		return false
	}
	p.erase(i)
	ship.row, ship.col = row, col
	p.put(i)
	return true
}

// Rotate turns placed ship i a quarter turn about its head.
func (p *Placement) Rotate(i int) bool {
	ship := &p.ships[i]
	next := ship.dir.Next()
	if !p.Legal(i, ship.row, ship.col, next) {
		return false
	}
	p.erase(i)
	ship.dir = next
	p.put(i)
	return true
}

// fits rejects rosters that provably cannot be placed. Past the plain area
// check, each ship together with the row (or column) below it and the column
// (or row) past its tail covers 2*(length+1) squares of a board one larger in
// each dimension, and those footprints never overlap for legally spaced ships.
func fits(ships []Ship) bool {
	total, padded := 0, 0
	for i := range ships {
		total += ships[i].Length()
		padded += 2 * (ships[i].Length() + 1)
	}
	return total <= Rows*Cols && padded <= (Rows+1)*(Cols+1)
}

/*
PlaceAll finds a legal layout for every ship by exhaustive backtracking in
roster order. On failure no ship of the roster is left on the grid.

ErrPlacementImpossible means the roster provably cannot fit: it fails the
area guards or the search ran to completion. When a pass runs out of steps
instead, the search is retried once with the longest ships first, and if
that pass also runs out PlaceAll returns ErrSearchExhausted.
*/
func (p *Placement) PlaceAll() error {
	p.steps = 0
	if !fits(p.ships) {
		Log.WithField("ships", len(p.ships)).Debug("roster exceeds grid capacity")
		return ErrPlacementImpossible
	}

	order := make([]int, len(p.ships))
	for i := range order {
		order[i] = i
	}
	if p.search(order) {
		return nil
	}
	if !p.exhausted {
		Log.WithFields(logrus.Fields{
			"ships": len(p.ships),
			"steps": p.steps,
		}).Debug("no layout exists")
		return ErrPlacementImpossible
	}

	longest := slices.Clone(order)
	slices.SortStableFunc(longest, func(a, b int) int {
		return cmp.Compare(p.ships[b].Length(), p.ships[a].Length())
	})
	if !slices.Equal(longest, order) {
		Log.WithField("steps", p.steps).Debug("retrying placement longest first")
		if p.search(longest) {
			return nil
		}
		if !p.exhausted {
			return ErrPlacementImpossible
		}
	}

	Log.WithFields(logrus.Fields{
		"ships": len(p.ships),
		"steps": p.steps,
	}).Warn("placement search ran out of steps")
	return ErrSearchExhausted
}

// search runs one backtracking pass placing ships in the given order.
func (p *Placement) search(order []int) bool {
	for i := range p.ships {
		p.ships[i].dir = Right
	}
	p.order = order
	p.limit = p.steps + maxPlacementSteps
	p.exhausted = false

	if !p.placeFrom(0) {
		return false
	}
	Log.WithFields(logrus.Fields{
		"ships": len(p.ships),
		"steps": p.steps,
	}).Debug("found layout")
	return true
}

/*
placeFrom places the ships from position k of the search order on. Heads are
scanned in row-major order at the ship's current direction; only once the
whole grid has been scanned does the direction advance, so after four turns
the ship faces where it started.
*/
func (p *Placement) placeFrom(k int) bool {
	if k == len(p.order) {
		return true
	}
	i := p.order[k]
	ship := &p.ships[i]
	for range 4 {
		for row := range Rows {
			for col := range Cols {
				if p.steps >= p.limit {
					p.exhausted = true
					return false
				}
				p.steps++
				if !p.Legal(i, row, col, ship.dir) {
					continue
				}
				ship.row, ship.col = row, col
				p.put(i)
				if p.placeFrom(k + 1) {
					return true
				}
				p.erase(i)
			}
		}
		ship.dir = ship.dir.Next()
	}
	return false
}

/*
Scramble shuffles an already legal layout by random single steps: a ship is
picked uniformly, then one of {row ±1, column ±1, turn} is tried. Only moves
that keep the layout legal count. It stops after scrambleMoves accepted moves
or scrambleAttempts tries, whichever comes first, and returns the number of
accepted moves.
*/
func (p *Placement) Scramble(r *rand.Rand) int {
	if len(p.ships) == 0 {
		return 0
	}

	accepted, attempts := 0, 0
	for accepted < scrambleMoves && attempts < scrambleAttempts {
		attempts++
		i := r.IntN(len(p.ships))
		ship := &p.ships[i]
		inc := 2*r.IntN(2) - 1

		var moved bool
		switch r.IntN(3) {
		case 0:
			moved = p.Move(i, ship.row+inc, ship.col)
		case 1:
			moved = p.Move(i, ship.row, ship.col+inc)
		default:
			moved = p.Rotate(i)
		}
		if moved {
			accepted++
		}
	}

	log := Log.WithFields(logrus.Fields{
		"accepted": accepted,
		"attempts": attempts,
	})
	if accepted < scrambleMoves {
		log.Warn("scramble stopped at attempt cap")
	} else {
		log.Debug("scrambled layout")
	}
	return accepted
}
