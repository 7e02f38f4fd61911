package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gammazero/deque"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vancomm/battleship-server/internal/fleet"
)

var errUnknownCommand = errors.New("unknown command")

// wsObserver turns game notifications into events for one connection.
// Callbacks arrive with the session lock held, so reading game here is safe.
type wsObserver struct {
	id   string
	game *fleet.GameState
	show bool

	mu    sync.Mutex
	queue deque.Deque[*EventDTO]
	wake  chan struct{}
}

func newWSObserver(id string, game *fleet.GameState, show bool) *wsObserver {
	return &wsObserver{
		id:   id,
		game: game,
		show: show,
		wake: make(chan struct{}, 1),
	}
}

func (o *wsObserver) push(e *EventDTO) {
	o.mu.Lock()
	o.queue.PushBack(e)
	o.mu.Unlock()
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *wsObserver) drain() []*EventDTO {
	o.mu.Lock()
	defer o.mu.Unlock()
	events := make([]*EventDTO, 0, o.queue.Len())
	for o.queue.Len() != 0 {
		events = append(events, o.queue.PopFront())
	}
	return events
}

func (o *wsObserver) pushError(err error) {
	o.push(&EventDTO{Event: "error", Error: err.Error()})
}

func (o *wsObserver) GridChanged() {
	o.push(&EventDTO{Event: "grid", Game: NewGameDTO(o.id, o.game, o.show)})
}

func (o *wsObserver) CellChanged(row, col int) {
	cell, ok := o.game.Cell(row, col)
	if !ok {
		return
	}
	e := &EventDTO{Event: "cell", Cell: NewCellDTO(cell, o.show)}
	if cell.Occupied {
		if ship, ok := o.game.Ship(cell.Ship); ok {
			e.Ship = NewShipDTO(ship, o.show)
		}
	}
	o.push(e)
}

func (o *wsObserver) Victory() {
	o.push(&EventDTO{Event: "victory", Game: NewGameDTO(o.id, o.game, true)})
}

func (o *wsObserver) state() {
	o.push(&EventDTO{Event: "state", Game: NewGameDTO(o.id, o.game, o.show)})
}

// execute runs one client line against the game. Must be called inside
// Session.Do.
func (o *wsObserver) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "g":
		o.state()
		return nil
	case "r":
		if len(args) != 2 {
			return fmt.Errorf("%w: usage: r <row> <col>", errBadRequest)
		}
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: row: %w", errBadRequest, err)
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: col: %w", errBadRequest, err)
		}
		_, err = o.game.RevealCell(row, col)
		return err
	case "n":
		name := "single"
		if len(args) > 0 {
			name = args[0]
		}
		roster, err := fleet.ParseRoster(name)
		if err != nil {
			return err
		}
		return o.game.StartGame(roster)
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
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

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Warn("upgrade failed")
		return
	}
	defer c.Close()

	log := g.logger.WithField("session", mux.Vars(r)["id"])

	var observer *wsObserver
	s.With(func(game *fleet.GameState) {
		observer = newWSObserver(s.ID, game, params.Show)
		game.AddObserver(observer)
		observer.state()
	})
	defer s.With(func(game *fleet.GameState) {
		game.RemoveObserver(observer)
	})

	done := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-done:
				return
			case <-observer.wake:
			}
			for _, e := range observer.drain() {
				if err := c.WriteJSON(e); err != nil {
					log.WithError(err).Warn("write failed")
					c.Close()
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		<-writerDone
	}()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		for _, line := range strings.Split(string(message), "\n") {
			err := s.Do(func(*fleet.GameState) error {
				return observer.execute(line)
			})
			if err != nil {
				observer.pushError(err)
			}
		}
	}
}
