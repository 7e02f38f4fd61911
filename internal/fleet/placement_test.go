package fleet

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegal(t *testing.T) {
	grid := NewGrid()
	ships := NewShips([]ShipType{Submarine, PatrolBoat})
	p := NewPlacement(grid, ships)
	require.True(t, p.Move(0, 4, 4)) // (4,4) (4,5) (4,6)

	testCases := []struct {
		name     string
		ship     int
		row, col int
		dir      Direction
		legal    bool
	}{
		{"overlap", 1, 4, 5, Down, false},
		{"side by side", 1, 5, 4, Right, false},
		{"diagonal corner", 1, 5, 7, Right, false},
		{"past the tail", 1, 4, 7, Right, false},
		{"before the head", 1, 4, 3, Left, false},
		{"one gap after", 1, 4, 8, Right, true},
		{"one row gap", 1, 6, 4, Right, true},
		{"off the right edge", 1, 9, 9, Right, false},
		{"off the top edge", 1, 0, 0, Up, false},
		{"own footprint", 0, 4, 4, Right, true},
		{"own footprint shifted", 0, 4, 5, Right, true},
		{"own footprint turned", 0, 4, 4, Down, true},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.legal, p.Legal(test.ship, test.row, test.col, test.dir))
		})
	}
}

func TestMoveAndRotate(t *testing.T) {
	grid := NewGrid()
	ships := NewShips(RosterSingle())
	p := NewPlacement(grid, ships)
	require.NoError(t, p.PlaceAll())

	require.True(t, p.Rotate(0))
	assert.Equal(t, Down, ships[0].dir)
	requireLayout(t, grid, infos(ships))

	require.False(t, p.Rotate(0), "left from column 0 leaves the grid")
	assert.Equal(t, Down, ships[0].dir)

	require.False(t, p.Move(0, -1, 0))
	require.True(t, p.Move(0, 1, 0))
	requireLayout(t, grid, infos(ships))
	cell, _ := grid.Cell(0, 0)
	assert.False(t, cell.Occupied)
}

func TestPlaceAllSingle(t *testing.T) {
	grid := NewGrid()
	ships := NewShips(RosterSingle())
	p := NewPlacement(grid, ships)

	require.NoError(t, p.PlaceAll())
	assert.Equal(t, 1, p.Steps())
	assert.Equal(t, Point{0, 0}, Point{ships[0].row, ships[0].col})
	assert.Equal(t, Right, ships[0].dir)
	requireLayout(t, grid, infos(ships))
}

func TestPlaceAllFleetIsDeterministic(t *testing.T) {
	grid := NewGrid()
	ships := NewShips(RosterFleet())
	p := NewPlacement(grid, ships)
	require.NoError(t, p.PlaceAll())
	requireLayout(t, grid, infos(ships))

	heads := make([]Point, len(ships))
	for i := range ships {
		heads[i] = Point{ships[i].row, ships[i].col}
		assert.Equal(t, Right, ships[i].dir)
	}
	assert.Equal(t, []Point{
		{0, 0}, {2, 0}, {2, 5}, {0, 7}, {4, 0},
		{4, 4}, {4, 8}, {6, 0}, {6, 3}, {6, 6},
	}, heads)
}

func TestPlaceAllRejectsOversizedRoster(t *testing.T) {
	testCases := []struct {
		name   string
		roster []ShipType
	}{
		{"more cells than the grid", slices.Repeat([]ShipType{Carrier}, 17)},
		{"no room for spacing", slices.Repeat([]ShipType{Battleship}, 20)},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			grid := NewGrid()
			p := NewPlacement(grid, NewShips(test.roster))
			assert.ErrorIs(t, p.PlaceAll(), ErrPlacementImpossible)
			assert.Zero(t, p.Steps(), "must fail without searching")
		})
	}
}

func TestPlaceAllGivesUp(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	// At most five ships of length nine fit, all parallel, but the padded
	// area guard lets six through.
	grid := NewGrid()
	ships := NewShips(slices.Repeat([]ShipType{ShipType(9)}, 6))
	p := NewPlacement(grid, ships)

	err := p.PlaceAll()
	assert.ErrorIs(t, err, ErrSearchExhausted)
	assert.NotErrorIs(t, err, ErrPlacementImpossible)
	assert.Equal(t, maxPlacementSteps, p.Steps(), "equal lengths leave nothing to reorder")
	for _, row := range grid.Cells() {
		for _, cell := range row {
			assert.False(t, cell.Occupied)
		}
	}
}

func TestPlaceAllRetriesLongestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	// Fits, but roster order alone does not find a layout within the budget.
	roster := []ShipType{
		PatrolBoat, Carrier, PatrolBoat, PatrolBoat, PatrolBoat, Carrier,
		PatrolBoat, Battleship, Carrier, PatrolBoat, PatrolBoat, Carrier,
	}
	grid := NewGrid()
	ships := NewShips(roster)
	p := NewPlacement(grid, ships)

	require.NoError(t, p.PlaceAll())
	assert.Greater(t, p.Steps(), maxPlacementSteps)
	requireLayout(t, grid, infos(ships))
	for i, s := range ships {
		assert.Equal(t, i, s.id)
		assert.Equal(t, roster[i], s.typ)
	}
}

func TestPlaceAllProvesImpossible(t *testing.T) {
	// A ship longer than the grid passes the area guards, so only the
	// finished search can rule it out.
	grid := NewGrid()
	p := NewPlacement(grid, NewShips([]ShipType{ShipType(11)}))

	err := p.PlaceAll()
	assert.ErrorIs(t, err, ErrPlacementImpossible)
	assert.NotErrorIs(t, err, ErrSearchExhausted)
	assert.Equal(t, 4*Rows*Cols, p.Steps(), "every head in every direction tried once")
}

func TestPlaceAllFiveLongShips(t *testing.T) {
	grid := NewGrid()
	ships := NewShips(slices.Repeat([]ShipType{ShipType(9)}, 5))
	p := NewPlacement(grid, ships)
	require.NoError(t, p.PlaceAll())
	requireLayout(t, grid, infos(ships))
}

func TestScrambleSingle(t *testing.T) {
	grid := NewGrid()
	ships := NewShips(RosterSingle())
	p := NewPlacement(grid, ships)
	require.NoError(t, p.PlaceAll())

	assert.Equal(t, scrambleMoves, p.Scramble(newRand()))
	requireLayout(t, grid, infos(ships))
}

func TestScrambleEmptyRoster(t *testing.T) {
	p := NewPlacement(NewGrid(), nil)
	require.NoError(t, p.PlaceAll())
	assert.Zero(t, p.Scramble(newRand()))
}

func TestScrambleStopsAtAttemptCap(t *testing.T) {
	hook := test.NewLocal(Log)
	t.Cleanup(func() { Log.ReplaceHooks(make(logrus.LevelHooks)) })

	// Full-width ships can only shuffle between rows, so most attempts fail.
	grid := NewGrid()
	ships := NewShips(slices.Repeat([]ShipType{ShipType(10)}, 5))
	p := NewPlacement(grid, ships)
	require.NoError(t, p.PlaceAll())

	accepted := p.Scramble(newRand())
	assert.Less(t, accepted, scrambleMoves)
	requireLayout(t, grid, infos(ships))

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["attempts"] == scrambleAttempts {
			warned = true
			assert.Equal(t, accepted, e.Data["accepted"])
		}
	}
	assert.True(t, warned, "attempt cap logs a warning")
}

func TestScrambleKeepsSpacing(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	for seed := range uint64(50) {
		grid := NewGrid()
		ships := NewShips(RosterFleet())
		p := NewPlacement(grid, ships)
		require.NoError(t, p.PlaceAll())

		accepted := p.Scramble(rand.New(rand.NewPCG(seed, seed+1)))
		assert.LessOrEqual(t, accepted, scrambleMoves)
		requireLayout(t, grid, infos(ships))
	}
}

func TestScrambleMovesShips(t *testing.T) {
	grid := NewGrid()
	ships := NewShips(RosterFleet())
	p := NewPlacement(grid, ships)
	require.NoError(t, p.PlaceAll())
	before := infos(ships)

	p.Scramble(newRand())
	assert.NotEqual(t, before, infos(ships))
}
