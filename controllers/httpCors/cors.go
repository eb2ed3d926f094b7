package httpCors

import (
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// CorsSettings builds the CORS policy for the catalog endpoints. Preflight
// requests are answered here and never reach the router.
func CorsSettings(allowedOrigins []string, logger *zap.Logger, debug bool) *cors.Cors {
	c := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST"},
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: false,
		AllowedHeaders:   []string{"Content-Type"},
		Debug:            debug,
		Logger:           zap.NewStdLog(logger.Named("cors")),
	})
	return c
}
