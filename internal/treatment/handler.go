package treatment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fraternidade-care/treatment-service/internal/auth"
	"github.com/fraternidade-care/treatment-service/internal/pagination"
	"github.com/fraternidade-care/treatment-service/internal/telemetry"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
	metrics *telemetry.Metrics
}

func NewHandler(service ServiceInterface, metrics *telemetry.Metrics) *Handler {
	return &Handler{service: service, metrics: metrics}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SubmitResponse carries the workflow outcome: the mode tells the consumer
// which view to render, and exactly one of Sessions/SessionErrors is set.
type SubmitResponse struct {
	Success       bool                      `json:"success"`
	Mode          Mode                      `json:"mode"`
	Message       string                    `json:"message,omitempty"`
	Sessions      []CreatedTreatmentSession `json:"sessions,omitempty"`
	Schedule      []SessionSchedule         `json:"schedule,omitempty"`
	SessionErrors []TreatmentSessionError   `json:"session_errors,omitempty"`
}

type SessionListResponse struct {
	Success  bool                      `json:"success"`
	Sessions []CreatedTreatmentSession `json:"sessions"`
	Meta     pagination.Meta           `json:"meta"`
}

// SubmitTreatmentForm handles POST /attendances/{id}/treatment-form.
func (h *Handler) SubmitTreatmentForm(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		h.recordAuthFailure(r, "missing_principal")
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	attendanceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid attendance ID")
		return
	}

	var payload SubmissionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	payload.AttendanceID = attendanceID

	wf := NewWorkflow()
	if err := wf.Begin(); err != nil {
		respondError(w, http.StatusConflict, "submission_in_flight", err.Error())
		return
	}
	result, err := h.service.Submit(r.Context(), payload)
	wf.Finish(result, err)
	h.recordSubmission(r, wf.Mode(), err)

	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			// Inline banner on the editing view; no state transition happened.
			respondError(w, http.StatusBadRequest, "validation_error", wf.InlineError())
			return
		}
		respondError(w, http.StatusBadGateway, "record_creation_failed", wf.InlineError())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch wf.Mode() {
	case ModeErred:
		h.recordSessionOutcomes(r, wf)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(SubmitResponse{
			Success:       false,
			Mode:          ModeErred,
			Message:       "Treatment record created, but some sessions could not be scheduled",
			SessionErrors: wf.Errors(),
		})
	case ModeConfirming:
		h.recordSessionOutcomes(r, wf)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SubmitResponse{
			Success:  true,
			Mode:     ModeConfirming,
			Message:  "Treatment record and sessions created successfully",
			Sessions: wf.Sessions(),
			Schedule: BuildConfirmationSummary(wf.Sessions()),
		})
	default:
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SubmitResponse{
			Success: true,
			Mode:    ModeEditing,
			Message: "Treatment record created, no recurring treatments recommended",
		})
	}
}

// ListSessions handles GET /attendances/{id}/sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		h.recordAuthFailure(r, "missing_principal")
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	attendanceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid attendance ID")
		return
	}

	params := pagination.ParseParams(r)
	sessions, total, err := h.service.ListSessionsByAttendance(r.Context(), attendanceID, params.Limit, params.CalculateOffset())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	if sessions == nil {
		sessions = []CreatedTreatmentSession{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SessionListResponse{
		Success:  true,
		Sessions: sessions,
		Meta:     params.CalculateMeta(total),
	})
}

func (h *Handler) recordAuthFailure(r *http.Request, reason string) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordAuthFailure(r.Context(), reason)
}

func (h *Handler) recordSessionOutcomes(r *http.Request, wf *Workflow) {
	if h.metrics == nil {
		return
	}
	if n := len(wf.Sessions()); n > 0 {
		h.metrics.RecordSessionsCreated(r.Context(), n)
	}
	for _, bucket := range wf.Errors() {
		for range bucket.Errors {
			h.metrics.RecordSessionFailure(r.Context(), string(bucket.TreatmentType))
		}
	}
}

func (h *Handler) recordSubmission(r *http.Request, mode Mode, err error) {
	if h.metrics == nil {
		return
	}
	outcome := string(mode)
	if err != nil {
		outcome = "rejected"
	}
	h.metrics.RecordSubmission(r.Context(), outcome)
}

func respondError(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
