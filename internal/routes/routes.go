package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"tripbook/internal/config"
	"tripbook/internal/handlers"
	"tripbook/internal/middleware"
)

// Handlers groups everything SetupRoutes wires into the mux
type Handlers struct {
	Auth           *handlers.AuthHandler
	GoogleAuth     *handlers.GoogleAuthHandler
	ForgotPassword *handlers.ForgotPasswordHandler
	Trips          *handlers.TripsHandler
	Bookings       *handlers.BookingsHandler
	Countries      *handlers.CountriesHandler
	Health         *handlers.HealthHandler
}

// SetupRoutes configures all application routes on the default mux
func SetupRoutes(h Handlers, cfg *config.Config) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/health", h.Health.HealthCheck)
	http.HandleFunc("/livez", h.Health.LivenessCheck)
	http.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/signup", h.Auth.Signup)
	http.HandleFunc("/api/auth/login", h.Auth.Login)
	http.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(h.Auth.Profile, jwtCfg))
	http.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	http.HandleFunc("/api/auth/forgot-password", h.ForgotPassword.ForgotPassword)
	http.HandleFunc("/api/auth/verify-code", h.ForgotPassword.VerifyCode)
	http.HandleFunc("/api/auth/reset-password", h.ForgotPassword.ResetPassword)

	// Country reference data. Listing and detail are public, creation is not.
	http.HandleFunc("/api/countries", countriesDispatch(h.Countries, jwtCfg))
	http.HandleFunc("/api/countries/", h.Countries.CountryDetail)

	// Trip planning routes
	http.HandleFunc("/api/trips", middleware.AuthMiddleware(h.Trips.Trips, jwtCfg))
	http.HandleFunc("/api/trips/", middleware.AuthMiddleware(h.Trips.Trips, jwtCfg))
	http.HandleFunc("/api/trips/budget-estimate", middleware.AuthMiddleware(h.Trips.BudgetEstimate, jwtCfg))

	// Booking routes. The exact my-bookings pattern takes precedence over the
	// /api/bookings/ subtree match.
	http.HandleFunc("/api/bookings", middleware.AuthMiddleware(h.Bookings.Bookings, jwtCfg))
	http.HandleFunc("/api/bookings/my-bookings", middleware.AuthMiddleware(h.Bookings.MyBookings, jwtCfg))
	http.HandleFunc("/api/bookings/", middleware.AuthMiddleware(h.Bookings.BookingByID, jwtCfg))

	// Swagger documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func countriesDispatch(countries *handlers.CountriesHandler, jwtCfg *config.JWTConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			middleware.AuthMiddleware(countries.CreateCountry, jwtCfg)(w, r)
			return
		}
		countries.Countries(w, r)
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Tripbook backend is running."))
}
