package attendance

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fraternidade-care/treatment-service/internal/auth"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type ListResponse struct {
	Success     bool                 `json:"success"`
	Attendances []AttendanceResponse `json:"attendances"`
	Total       int                  `json:"total"`
}

func (h *Handler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	attendance, err := h.service.CreateAttendance(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:    true,
		Message:    "Attendance registered successfully",
		Attendance: attendance,
	})
}

func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid attendance ID")
		return
	}

	attendance, err := h.service.GetAttendance(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAttendanceNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Attendance not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:    true,
		Attendance: attendance,
	})
}

func (h *Handler) ListAttendancesByPatient(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	patientID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid patient ID")
		return
	}

	attendances, err := h.service.ListAttendancesByPatient(r.Context(), patientID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	if attendances == nil {
		attendances = []AttendanceResponse{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{
		Success:     true,
		Attendances: attendances,
		Total:       len(attendances),
	})
}

func respondError(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
