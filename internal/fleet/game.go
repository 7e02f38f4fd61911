package fleet

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status int8

const (
	NotStarted Status = iota
	InProgress
	Won
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	default:
		return "?"
	}
}

type RevealResult int8

const (
	Invalid RevealResult = iota
	Miss
	Hit
	HitAndSunk
)

func (r RevealResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case HitAndSunk:
		return "sunk"
	default:
		return "invalid"
	}
}

func RosterSingle() []ShipType {
	return []ShipType{Submarine}
}

func RosterFleet() []ShipType {
	return []ShipType{
		Carrier,
		Battleship, Battleship,
		Submarine, Submarine, Submarine,
		PatrolBoat, PatrolBoat, PatrolBoat, PatrolBoat,
	}
}

func ParseRoster(name string) ([]ShipType, error) {
	switch name {
	case "single":
		return RosterSingle(), nil
	case "fleet":
		return RosterFleet(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoster, name)
	}
}

// GameState is one single-player game. It is not safe for concurrent use.
type GameState struct {
	grid   *Grid
	ships  []Ship
	status Status
	shots  int
	missed int
	rnd    *rand.Rand
}

func NewGameState(r *rand.Rand) *GameState {
	return &GameState{
		grid: NewGrid(),
		rnd:  r,
	}
}

/*
StartGame lays out a fresh roster and begins a new game.

The layout is built on a scratch grid, so if the roster cannot be placed the
current game, including its observers' view of it, is left exactly as it was.
*/
func (g *GameState) StartGame(roster []ShipType) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ae AssertionError
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				err = ae
				return
			}
			panic(r)
		}
	}()

	if len(roster) == 0 {
		return fmt.Errorf("%w: empty roster", ErrUnknownRoster)
	}
	for _, t := range roster {
		if t.Length() <= 0 {
			return fmt.Errorf("%w: length %d", ErrUnknownShipType, t.Length())
		}
	}

	scratch := NewGrid()
	ships := NewShips(roster)
	placement := NewPlacement(scratch, ships)
	if err := placement.PlaceAll(); err != nil {
		return err
	}
	placement.Scramble(g.rnd)
	checkLayout(scratch, ships)

	g.ships = ships
	g.status = InProgress
	g.shots, g.missed = 0, 0
	g.grid.load(scratch)

	Log.WithField("ships", len(ships)).Debug("game started")
	return nil
}

// panics [AssertionError]
func checkLayout(grid *Grid, ships []Ship) {
	want := 0
	for i := range ships {
		want += ships[i].Length()
	}
	have := 0
	for r := range Rows {
		for c := range Cols {
			cell := grid.cells[r][c]
			if !cell.Occupied {
				continue
			}
			if cell.Ship < 0 || cell.Ship >= len(ships) {
				panic(AssertionError{fmt.Sprintf("cell %d:%d covered by unknown ship %d", r, c, cell.Ship)})
			}
			have++
		}
	}
	if have != want {
		panic(AssertionError{fmt.Sprintf("layout covers %d cells, roster needs %d", have, want)})
	}
}

// Reset drops the current game and its ships.
func (g *GameState) Reset() {
	g.ships = nil
	g.status = NotStarted
	g.shots, g.missed = 0, 0
	g.grid.Reset()
}

/*
RevealCell fires at (row, col). Out of bounds coordinates, cells already
revealed and games not in progress yield [Invalid] with a matching error and
change nothing. Otherwise exactly one CellChanged notification is sent,
followed by Victory when the shot sinks the last ship.
*/
func (g *GameState) RevealCell(row, col int) (RevealResult, error) {
	if !g.grid.InBounds(row, col) {
		return Invalid, fmt.Errorf("%w: %d:%d", ErrOutOfBounds, row, col)
	}
	if g.status != InProgress {
		return Invalid, ErrNotInProgress
	}
	cell := g.grid.cells[row][col]
	if cell.Hit {
		return Invalid, fmt.Errorf("%w: %d:%d", ErrAlreadyRevealed, row, col)
	}

	g.shots++
	result := Miss
	if cell.Occupied {
		ship := &g.ships[cell.Ship]
		ship.addHit()
		result = Hit
		if ship.Sunk() {
			result = HitAndSunk
			if g.SunkCount() == len(g.ships) {
				g.status = Won
			}
		}
	} else {
		g.missed++
	}

	g.grid.reveal(row, col)
	if g.status == Won {
		Log.WithFields(logrus.Fields{
			"shots":  g.shots,
			"missed": g.missed,
		}).Debug("all ships sunk")
		g.grid.fireVictory()
	}
	return result, nil
}

func (g *GameState) Status() Status {
	return g.status
}

func (g *GameState) IsWon() bool {
	return g.status == Won
}

func (g *GameState) Shots() int {
	return g.shots
}

func (g *GameState) MissedShots() int {
	return g.missed
}

func (g *GameState) SunkCount() int {
	n := 0
	for i := range g.ships {
		if g.ships[i].Sunk() {
			n++
		}
	}
	return n
}

// Ships returns copies of the roster in roster order.
func (g *GameState) Ships() []ShipInfo {
	infos := make([]ShipInfo, len(g.ships))
	for i := range g.ships {
		infos[i] = g.ships[i].info()
	}
	return infos
}

func (g *GameState) Ship(id int) (ShipInfo, bool) {
	if id < 0 || id >= len(g.ships) {
		return ShipInfo{}, false
	}
	return g.ships[id].info(), true
}

func (g *GameState) Cell(row, col int) (Cell, bool) {
	return g.grid.Cell(row, col)
}

func (g *GameState) Cells() [Rows][Cols]Cell {
	return g.grid.Cells()
}

func (g *GameState) AddObserver(o Observer) {
	g.grid.AddObserver(o)
}

func (g *GameState) RemoveObserver(o Observer) {
	g.grid.RemoveObserver(o)
}

// GameState implements [fmt.Stringer]
func (g *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s shots=%d missed=%d sunk=%d/%d\n",
		g.status, g.shots, g.missed, g.SunkCount(), len(g.ships))
	b.WriteString(g.grid.String())
	return b.String()
}
