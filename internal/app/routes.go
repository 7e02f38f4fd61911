package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vancomm/battleship-server/internal/handlers"
	"github.com/vancomm/battleship-server/internal/middleware"
)

func (a *App) Router() http.Handler {
	router := mux.NewRouter()

	root := router
	if a.basePath != "" {
		root = router.PathPrefix(a.basePath).Subrouter()
	}

	game := handlers.NewGameHandler(a.logger, a.store, a.ws)

	root.Methods("POST").Path("/game").HandlerFunc(game.NewGame)

	gameRouter := root.PathPrefix("/game/").Subrouter()
	gameRouter.Methods("GET").Path("/{id}/connect").HandlerFunc(game.ConnectWS)
	gameRouter.Methods("POST").Path("/{id}/reveal").HandlerFunc(game.Reveal)
	gameRouter.Methods("POST").Path("/{id}/restart").HandlerFunc(game.Restart)
	gameRouter.Methods("GET").Path("/{id}").HandlerFunc(game.Fetch)
	gameRouter.Methods("DELETE").Path("/{id}").HandlerFunc(game.Delete)

	root.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("OK"))
	})

	return middleware.Wrap(
		router,
		middleware.Cors(a.origins),
		middleware.Logging(a.logger),
	)
}
