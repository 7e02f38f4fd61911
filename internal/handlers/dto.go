package handlers

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/battleship-server/internal/fleet"
)

var errBadRequest = errors.New("bad request")

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decodeQuery(dst any, query url.Values) error {
	if err := decoder.Decode(dst, query); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

type NewGameParams struct {
	Roster string `schema:"roster"`
	Show   bool   `schema:"show"`
}

func (p NewGameParams) ParseRoster() ([]fleet.ShipType, error) {
	if p.Roster == "" {
		return fleet.RosterSingle(), nil
	}
	return fleet.ParseRoster(p.Roster)
}

type ViewParams struct {
	Show bool `schema:"show"`
}

type RevealParams struct {
	Row  int  `schema:"row,required"`
	Col  int  `schema:"col,required"`
	Show bool `schema:"show"`
}

type CellDTO struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	State string `json:"state"`
}

func cellState(c fleet.Cell, show bool) string {
	switch {
	case c.Hit && c.Occupied:
		return "hit"
	case c.Hit:
		return "miss"
	case c.Occupied && show:
		return "ship"
	default:
		return ""
	}
}

func NewCellDTO(c fleet.Cell, show bool) *CellDTO {
	return &CellDTO{Row: c.Row, Col: c.Col, State: cellState(c, show)}
}

type ShipDTO struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Length    int    `json:"length"`
	Hits      int    `json:"hits"`
	Sunk      bool   `json:"sunk"`
	Row       *int   `json:"row,omitempty"`
	Col       *int   `json:"col,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// NewShipDTO hides where a ship lies until it is sunk, unless show is set.
func NewShipDTO(s fleet.ShipInfo, show bool) *ShipDTO {
	dto := &ShipDTO{
		ID:     s.ID,
		Type:   s.Type.String(),
		Length: s.Length,
		Hits:   s.Hits,
		Sunk:   s.Sunk,
	}
	if show || s.Sunk {
		row, col := s.Row, s.Col
		dto.Row, dto.Col = &row, &col
		dto.Direction = s.Direction.String()
	}
	return dto
}

type GameDTO struct {
	GameID      string     `json:"game_id"`
	Status      string     `json:"status"`
	Shots       int        `json:"shots"`
	MissedShots int        `json:"missed_shots"`
	Grid        [][]string `json:"grid"`
	Ships       []*ShipDTO `json:"ships"`
}

func NewGameDTO(id string, g *fleet.GameState, show bool) *GameDTO {
	show = show || g.IsWon()

	cells := g.Cells()
	grid := make([][]string, len(cells))
	for r, row := range cells {
		grid[r] = make([]string, len(row))
		for c, cell := range row {
			grid[r][c] = cellState(cell, show)
		}
	}

	infos := g.Ships()
	ships := make([]*ShipDTO, len(infos))
	for i, s := range infos {
		ships[i] = NewShipDTO(s, show)
	}

	return &GameDTO{
		GameID:      id,
		Status:      g.Status().String(),
		Shots:       g.Shots(),
		MissedShots: g.MissedShots(),
		Grid:        grid,
		Ships:       ships,
	}
}

type RevealDTO struct {
	Result string   `json:"result"`
	Cell   *CellDTO `json:"cell"`
	Ship   *ShipDTO `json:"ship,omitempty"`
	Game   *GameDTO `json:"game"`
}

type EventDTO struct {
	Event string   `json:"event"`
	Game  *GameDTO `json:"game,omitempty"`
	Cell  *CellDTO `json:"cell,omitempty"`
	Ship  *ShipDTO `json:"ship,omitempty"`
	Error string   `json:"error,omitempty"`
}
