package middleware

import (
	"github.com/rs/cors"

	"SCHEDULING_PLATFORM_BACK-END/internal/config"
)

// CORS allows cross-origin calls from the single configured origin.
func CORS(cfg config.CORSConfig) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
	})
}
