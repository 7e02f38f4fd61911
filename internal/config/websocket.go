package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

func NewWebSocket(origins *Origins) (*WebSocket, error) {
	bufferSize, err := lookupInt("WS_BUFFER_SIZE", 2048)
	if err != nil {
		return nil, err
	}
	handshakeTimeout, err := lookupDuration("WS_HANDSHAKE_TIMEOUT", 4*time.Second)
	if err != nil {
		return nil, err
	}

	upgrader := websocket.Upgrader{
		HandshakeTimeout: handshakeTimeout,
		ReadBufferSize:   bufferSize,
		WriteBufferSize:  bufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origins.Allowed(origin)
		},
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws, nil
}
