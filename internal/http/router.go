package http

import (
	"database/sql"
	"net/http"

	"github.com/fraternidade-care/treatment-service/internal/attendance"
	"github.com/fraternidade-care/treatment-service/internal/auth"
	"github.com/fraternidade-care/treatment-service/internal/messaging"
	"github.com/fraternidade-care/treatment-service/internal/patient"
	"github.com/fraternidade-care/treatment-service/internal/telemetry"
	"github.com/fraternidade-care/treatment-service/internal/treatment"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, publisher messaging.PublisherInterface, verifier *auth.Verifier, perms auth.Permissions, metrics *telemetry.Metrics) *mux.Router {
	// Initialize treatment components
	treatmentRepo := treatment.NewRepository(db)
	treatmentService := treatment.NewService(treatmentRepo, publisher)
	treatmentHandler := treatment.NewHandler(treatmentService, metrics)

	// Initialize patient components (read-only, seeds form defaults)
	patientRepo := patient.NewRepository(db)
	patientService := patient.NewService(patientRepo)
	patientHandler := patient.NewHandler(patientService)

	// Initialize attendance components
	attendanceRepo := attendance.NewRepository(db)
	attendanceService := attendance.NewService(attendanceRepo)
	attendanceHandler := attendance.NewHandler(attendanceService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("treatment-service"))
	r.Use(MetricsMiddleware(metrics))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"treatment-service"}`))
	}).Methods("GET")

	// Treatment submission workflow
	r.Handle("/attendances/{id}/treatment-form",
		auth.Middleware(verifier)(
			auth.RequirePermission("treatment:submit", perms)(
				http.HandlerFunc(treatmentHandler.SubmitTreatmentForm),
			),
		),
	).Methods("POST")

	r.Handle("/attendances/{id}/sessions",
		auth.Middleware(verifier)(
			auth.RequirePermission("treatment:view", perms)(
				http.HandlerFunc(treatmentHandler.ListSessions),
			),
		),
	).Methods("GET")

	// Form defaults (pre-populates main complaint and start date)
	r.Handle("/patients/{id}/form-defaults",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.GetFormDefaults),
			),
		),
	).Methods("GET")

	// Attendance routes
	r.Handle("/attendances",
		auth.Middleware(verifier)(
			auth.RequirePermission("attendance:create", perms)(
				http.HandlerFunc(attendanceHandler.CreateAttendance),
			),
		),
	).Methods("POST")

	r.Handle("/attendances/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("attendance:view", perms)(
				http.HandlerFunc(attendanceHandler.GetAttendance),
			),
		),
	).Methods("GET")

	r.Handle("/patients/{id}/attendances",
		auth.Middleware(verifier)(
			auth.RequirePermission("attendance:view", perms)(
				http.HandlerFunc(attendanceHandler.ListAttendancesByPatient),
			),
		),
	).Methods("GET")

	return r
}
