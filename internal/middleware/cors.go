package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/vancomm/battleship-server/internal/config"
)

func Cors(origins *config.Origins) Middleware {
	options := cors.Options{
		AllowOriginFunc: origins.Allowed,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}
