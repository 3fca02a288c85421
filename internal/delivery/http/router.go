package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"hospitaladmin/internal/delivery/http/controllers"
	"hospitaladmin/internal/delivery/http/helpers"
	"hospitaladmin/internal/delivery/http/middleware"
	"hospitaladmin/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig carries everything NewRouter mounts. Verifier nil disables authentication.
type RouterConfig struct {
	Logger         *slog.Logger
	Schedules      *controllers.ScheduleController
	Doctors        *controllers.DoctorController
	Hospitals      *controllers.HospitalController
	Feedback       *controllers.FeedbackController
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
	DB             Pinger
}

// NewRouter initializes the HTTP router with all application routes and wraps it in the
// CORS and request logging middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	protect := func(h http.HandlerFunc) http.Handler {
		if cfg.Verifier == nil {
			return h
		}
		return middleware.RequireAuth(cfg.Verifier, cfg.Logger)(h)
	}

	// Schedules
	mux.Handle("GET /api/schedules", protect(cfg.Schedules.ListSchedules))
	mux.Handle("POST /api/schedules", protect(cfg.Schedules.CreateSchedule))
	mux.Handle("PUT /api/schedules/{id}", protect(cfg.Schedules.UpdateSchedule))
	mux.Handle("DELETE /api/schedules/{id}", protect(cfg.Schedules.DeleteSchedule))

	// Slots of one doctor on one date
	mux.Handle("GET /api/schedules/doctors/{doctorID}/dates/{date}/slots", protect(cfg.Schedules.ListSlots))
	mux.Handle("POST /api/schedules/doctors/{doctorID}/dates/{date}/slots", protect(cfg.Schedules.AddSlot))
	mux.Handle("DELETE /api/schedules/doctors/{doctorID}/dates/{date}/slots/{slotID}", protect(cfg.Schedules.DeleteSlot))
	mux.Handle("PATCH /api/schedules/doctors/{doctorID}/dates/{date}/slots/{slotID}/book", protect(cfg.Schedules.BookSlot))

	// Doctors (directory reads are public)
	mux.HandleFunc("GET /api/doctors", cfg.Doctors.ListDoctors)
	mux.HandleFunc("GET /api/doctors/{id}", cfg.Doctors.GetDoctor)
	mux.Handle("POST /api/doctors", protect(cfg.Doctors.CreateDoctor))
	mux.Handle("PUT /api/doctors/{id}", protect(cfg.Doctors.UpdateDoctor))
	mux.Handle("DELETE /api/doctors/{id}", protect(cfg.Doctors.DeleteDoctor))

	// Hospitals
	mux.HandleFunc("GET /api/hospitals", cfg.Hospitals.ListHospitals)
	mux.Handle("POST /api/hospitals", protect(cfg.Hospitals.CreateHospital))
	mux.Handle("PUT /api/hospitals/{id}", protect(cfg.Hospitals.UpdateHospital))
	mux.Handle("DELETE /api/hospitals/{id}", protect(cfg.Hospitals.DeleteHospital))

	// Patient feedback (submission is public)
	mux.HandleFunc("POST /api/feedback", cfg.Feedback.CreateFeedback)
	mux.Handle("GET /api/feedback", protect(cfg.Feedback.ListFeedback))
	mux.Handle("GET /api/feedback/{id}", protect(cfg.Feedback.GetFeedback))
	mux.Handle("PUT /api/feedback/{id}", protect(cfg.Feedback.UpdateFeedback))
	mux.Handle("DELETE /api/feedback/{id}", protect(cfg.Feedback.DeleteFeedback))

	mux.HandleFunc("GET /healthz", healthHandler(cfg.DB))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(cfg.Logger, middleware.CORS(cfg.AllowedOrigins, mux))
}

// healthHandler godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "message: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: upstream_failure"
// @Router /healthz [get]
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUpstreamFailure, "database unavailable")
				return
			}
		}
		helpers.WriteJSONMessage(w, http.StatusOK, "ok")
	}
}
