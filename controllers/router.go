package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bookreco-backend/controllers/home"
	"bookreco-backend/controllers/httpCors"
	"bookreco-backend/controllers/middleware"
	"bookreco-backend/controllers/recommendations"
	"bookreco-backend/controllers/respond"
	"bookreco-backend/services/catalog"
	"bookreco-backend/services/similarity"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Store          catalog.BookStore
	Ranker         similarity.Ranker
	DB             Pinger
	Logger         *zap.Logger
	Registry       *prometheus.Registry
	AllowedOrigins []string
	Limit          int
}

// NewRouter wires every endpoint of the service.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewMetrics(d.Registry).Handler)
	r.Use(httpCors.CorsSettings(d.AllowedOrigins, d.Logger, d.Logger.Core().Enabled(zap.DebugLevel)).Handler)

	catalogHandler := home.NewHandler(d.Store, d.Logger)
	recommendHandler := recommendations.NewHandler(d.Store, d.Ranker, d.Limit, d.Logger)

	r.Get("/", catalogHandler.Home)
	r.Post("/recommend", recommendHandler.Recommend)
	r.Get("/healthz", healthz(d.DB))
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry}))

	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
