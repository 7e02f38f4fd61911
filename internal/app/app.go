package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/battleship-server/internal/config"
	"github.com/vancomm/battleship-server/internal/session"
)

type App struct {
	logger   *logrus.Logger
	store    *session.Store
	sessions *config.Sessions
	ws       *config.WebSocket
	origins  *config.Origins
	addr     string
	basePath string
}

func New(
	logger *logrus.Logger,
	sessions *config.Sessions,
	ws *config.WebSocket,
	origins *config.Origins,
) *App {
	app := &App{
		logger:   logger,
		store:    session.NewStore(logger, sessions),
		sessions: sessions,
		ws:       ws,
		origins:  origins,
		addr:     config.Port(),
		basePath: config.BasePath(),
	}

	return app
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.addr,
		Handler:      a.Router(),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.sessions.SweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.logger.WithFields(logrus.Fields{
		"addr":     a.addr,
		"basePath": a.basePath,
	}).Info("battleship server listening")

	return g.Wait()
}
