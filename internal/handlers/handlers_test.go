package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/battleship-server/internal/fleet"
	"github.com/vancomm/battleship-server/internal/session"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{session.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: 10:0", fleet.ErrOutOfBounds), http.StatusBadRequest},
		{fleet.ErrUnknownRoster, http.StatusBadRequest},
		{fmt.Errorf("%w: row", errBadRequest), http.StatusBadRequest},
		{fleet.ErrAlreadyRevealed, http.StatusConflict},
		{fleet.ErrNotInProgress, http.StatusConflict},
		{fleet.ErrPlacementImpossible, http.StatusUnprocessableEntity},
		{fleet.ErrSearchExhausted, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, test := range testCases {
		t.Run(test.err.Error(), func(t *testing.T) {
			assert.Equal(t, test.want, statusFor(test.err))
		})
	}
}

func TestDecodeQuery(t *testing.T) {
	var params RevealParams
	require.NoError(t, decodeQuery(&params, url.Values{"row": {"3"}, "col": {"4"}, "show": {"true"}, "x": {"1"}}))
	assert.Equal(t, RevealParams{Row: 3, Col: 4, Show: true}, params)

	err := decodeQuery(&RevealParams{}, url.Values{"row": {"3"}})
	assert.ErrorIs(t, err, errBadRequest)

	roster, err := NewGameParams{}.ParseRoster()
	require.NoError(t, err)
	assert.Equal(t, fleet.RosterSingle(), roster)
}

func startedGame(t *testing.T) *fleet.GameState {
	t.Helper()
	g := fleet.NewGameState(rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, g.StartGame(fleet.RosterSingle()))
	return g
}

func TestGameDTOHidesShips(t *testing.T) {
	g := startedGame(t)
	ship := g.Ships()[0]
	head := ship.Cells()[0]

	hidden := NewGameDTO("id", g, false)
	assert.Equal(t, "in_progress", hidden.Status)
	assert.Empty(t, hidden.Grid[head.Row][head.Col])
	assert.Nil(t, hidden.Ships[0].Row)

	shown := NewGameDTO("id", g, true)
	assert.Equal(t, "ship", shown.Grid[head.Row][head.Col])
	require.NotNil(t, shown.Ships[0].Row)
	assert.Equal(t, ship.Row, *shown.Ships[0].Row)
	assert.Equal(t, ship.Direction.String(), shown.Ships[0].Direction)

	for _, p := range ship.Cells() {
		_, err := g.RevealCell(p.Row, p.Col)
		require.NoError(t, err)
	}
	won := NewGameDTO("id", g, false)
	assert.Equal(t, "won", won.Status)
	assert.Equal(t, "hit", won.Grid[head.Row][head.Col])
	assert.True(t, won.Ships[0].Sunk)
	assert.NotNil(t, won.Ships[0].Row)
}

func TestObserverCommands(t *testing.T) {
	g := startedGame(t)
	o := newWSObserver("id", g, false)
	g.AddObserver(o)

	require.NoError(t, o.execute("g"))
	require.NoError(t, o.execute("   "))
	assert.ErrorIs(t, o.execute("r 1"), errBadRequest)
	assert.ErrorIs(t, o.execute("r a 1"), errBadRequest)
	assert.ErrorIs(t, o.execute("r 10 1"), fleet.ErrOutOfBounds)
	assert.ErrorIs(t, o.execute("n armada"), fleet.ErrUnknownRoster)
	assert.ErrorIs(t, o.execute("fire"), errUnknownCommand)

	head := g.Ships()[0].Cells()[0]
	require.NoError(t, o.execute(fmt.Sprintf("r %d %d", head.Row, head.Col)))
	require.NoError(t, o.execute("n"))

	events := o.drain()
	require.Len(t, events, 3)
	assert.Equal(t, "state", events[0].Event)
	assert.Equal(t, "cell", events[1].Event)
	assert.Equal(t, "hit", events[1].Cell.State)
	require.NotNil(t, events[1].Ship)
	assert.Equal(t, 1, events[1].Ship.Hits)
	assert.Equal(t, "grid", events[2].Event)
	assert.Zero(t, events[2].Game.Shots)

	assert.Empty(t, o.drain())
}
