package patient

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

type FormDefaultsResponse struct {
	Success  bool          `json:"success"`
	Defaults *FormDefaults `json:"defaults,omitempty"`
}

// GetFormDefaults handles GET /patients/{id}/form-defaults.
func (h *Handler) GetFormDefaults(w http.ResponseWriter, r *http.Request) {
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

	defaults, err := h.service.GetFormDefaults(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Patient not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FormDefaultsResponse{
		Success:  true,
		Defaults: defaults,
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
