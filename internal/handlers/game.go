package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/battleship-server/internal/config"
	"github.com/vancomm/battleship-server/internal/fleet"
	"github.com/vancomm/battleship-server/internal/session"
)

type GameHandler struct {
	logger *logrus.Logger
	store  *session.Store
	ws     *config.WebSocket
}

func NewGameHandler(
	logger *logrus.Logger,
	store *session.Store,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger: logger,
		store:  store,
		ws:     ws,
	}

	return handler
}

func (g GameHandler) session(r *http.Request) (*session.Session, error) {
	return g.store.Get(mux.Vars(r)["id"])
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := decodeQuery(&params, r.URL.Query()); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	roster, err := params.ParseRoster()
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	s, err := g.store.Create(roster)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	var dto *GameDTO
	s.With(func(game *fleet.GameState) {
		dto = NewGameDTO(s.ID, game, params.Show)
	})
	sendJSONOrLog(w, g.logger, http.StatusCreated, dto)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var params ViewParams
	if err := decodeQuery(&params, r.URL.Query()); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	var dto *GameDTO
	s.With(func(game *fleet.GameState) {
		dto = NewGameDTO(s.ID, game, params.Show)
	})
	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var params RevealParams
	if err := decodeQuery(&params, r.URL.Query()); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	var dto *RevealDTO
	err = s.Do(func(game *fleet.GameState) error {
		result, err := game.RevealCell(params.Row, params.Col)
		if err != nil {
			return err
		}
		cell, _ := game.Cell(params.Row, params.Col)
		dto = &RevealDTO{
			Result: result.String(),
			Cell:   NewCellDTO(cell, params.Show),
			Game:   NewGameDTO(s.ID, game, params.Show),
		}
		if cell.Occupied {
			ship, ok := game.Ship(cell.Ship)
			if !ok {
				return fmt.Errorf("cell %d:%d points at missing ship %d", cell.Row, cell.Col, cell.Ship)
			}
			dto.Ship = NewShipDTO(ship, params.Show)
		}
		return nil
	})
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"session": s.ID,
		"row":     params.Row,
		"col":     params.Col,
		"result":  dto.Result,
	}).Debug("revealed cell")

	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := decodeQuery(&params, r.URL.Query()); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	roster, err := params.ParseRoster()
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	var dto *GameDTO
	err = s.Do(func(game *fleet.GameState) error {
		if err := game.StartGame(roster); err != nil {
			return err
		}
		dto = NewGameDTO(s.ID, game, params.Show)
		return nil
	})
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := g.store.Delete(mux.Vars(r)["id"]); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
