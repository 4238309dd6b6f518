package routes

import (
	"net/http"

	"github.com/strivehq/strive/internal/app"
	"github.com/strivehq/strive/internal/handler"
	"github.com/strivehq/strive/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	challenge := handler.NewChallengeHandler(app.IdentityService, app.ChallengeService)
	update := handler.NewUpdateHandler(app.IdentityService, app.UpdateService)
	geo := handler.NewGeoHandler(app.GeoService)
	upload := handler.NewUploadHandler(app.IdentityService, app.UploadService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Country aggregation for the map view
	mux.HandleFunc("GET /api/challenges/count", geo.Count)
	mux.HandleFunc("GET /api/challenges", geo.List)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// Challenges
	mux.HandleFunc("GET /app/challenges", middleware.RequireAuth(challenge.List))
	mux.HandleFunc("GET /app/challenges/{id}", middleware.RequireAuth(challenge.Detail))
	mux.HandleFunc("POST /app/challenges", middleware.RequireAuth(challenge.Create))
	mux.HandleFunc("POST /app/challenges/{id}/edit", middleware.RequireAuth(challenge.Edit))
	mux.HandleFunc("POST /app/challenges/{id}/delete", middleware.RequireAuth(challenge.Delete))

	// Updates
	mux.HandleFunc("POST /app/challenges/{id}/updates", middleware.RequireAuth(update.Create))
	mux.HandleFunc("POST /app/updates/{id}/edit", middleware.RequireAuth(update.Edit))
	mux.HandleFunc("POST /app/updates/{id}/delete", middleware.RequireAuth(update.Delete))

	// Uploads (blob storage happens before any database write)
	mux.HandleFunc("POST /app/uploads", middleware.RequireAuth(upload.UploadImage))

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Principal(app.Cfg.JWTSecret),
	)

	return h
}
