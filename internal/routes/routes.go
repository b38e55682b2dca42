package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"SCHEDULING_PLATFORM_BACK-END/internal/config"
	"SCHEDULING_PLATFORM_BACK-END/internal/handlers"
	"SCHEDULING_PLATFORM_BACK-END/internal/middleware"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Appointments *handlers.AppointmentsHandler
	Health       *handlers.HealthHandler
}

// NewHandlers wires every handler to the same database
func NewHandlers(db handlers.DB, cfg *config.Config) Handlers {
	return Handlers{
		Auth:         handlers.NewAuthHandler(db, &cfg.JWT),
		Profile:      handlers.NewProfileHandler(db, cfg.Upload),
		Appointments: handlers.NewAppointmentsHandler(db),
		Health:       handlers.NewHealthHandler(db, cfg.Upload.Dir),
	}
}

// NewRouter configures all application routes and wraps them with CORS and request logging
func NewRouter(cfg *config.Config, h Handlers) http.Handler {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("GET /healthz", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /register", h.Auth.Register)
	mux.HandleFunc("POST /login", h.Auth.Login)

	// Profile routes
	mux.HandleFunc("POST /profile/{user_unique_id}", h.Profile.Upsert)
	mux.HandleFunc("PUT /profile/{user_unique_id}", h.Profile.Upsert)

	// Appointment routes
	mux.HandleFunc("POST /appointments", h.Appointments.CreateAppointment)

	// API docs
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("GET /{$}", rootHandler)

	return middleware.CORS(cfg.CORS).Handler(middleware.RequestLogger(mux))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Scheduling platform backend is running."))
}
