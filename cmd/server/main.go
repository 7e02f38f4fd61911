package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/battleship-server/internal/app"
	"github.com/vancomm/battleship-server/internal/config"
	"github.com/vancomm/battleship-server/internal/fleet"
)

var log = logrus.New()

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := config.Load(); err != nil {
		log.Fatal("unable to load .env: ", err)
	}

	logging, err := config.NewLogging()
	if err != nil {
		log.Fatal("failed to read logging config: ", err)
	}

	logger, err := app.NewLogger(logging)
	if err != nil {
		log.Fatal("failed to set up logging: ", err)
	}
	log = logger
	fleet.Log = logger

	sessions, err := config.NewSessions()
	if err != nil {
		log.Fatal("failed to read sessions config: ", err)
	}

	origins := config.NewOrigins()

	ws, err := config.NewWebSocket(origins)
	if err != nil {
		log.Fatal("failed to read ws config: ", err)
	}

	log.WithFields(logrus.Fields{
		"development": config.Development(),
		"sessionTTL":  sessions.TTL.String(),
		"seeded":      sessions.Seed != nil,
		"origins":     origins.List,
	}).Debug("config")

	if err := app.New(logger, sessions, ws, origins).Start(ctx); err != nil {
		log.Fatal("server stopped: ", err)
	}
	log.Info("server stopped")
}
