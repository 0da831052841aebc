package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"onmodel/internal/http/handlers"
	"onmodel/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
		middleware.CORS(app.Config.CORSAllowedOrigins),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Get("/presets", app.PresetCatalog)
		r.Post("/combos", app.ExpandCombos)
		r.Get("/batches/{id}", app.GetBatch)

		// Each batch may fan out to many provider calls, so generation is
		// limited per client on top of the provider pacing.
		r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).
			Post("/generate", app.Generate)
	})

	return r
}
