package treatment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/fraternidade-care/treatment-service/internal/auth"
)

// mockService implements ServiceInterface with swappable behavior per test.
type mockService struct {
	submitFunc       func(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error)
	listSessionsFunc func(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error)

	submitCalls []SubmissionPayload
}

func (m *mockService) Submit(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error) {
	m.submitCalls = append(m.submitCalls, payload)
	if m.submitFunc != nil {
		return m.submitFunc(ctx, payload)
	}
	return &SubmissionResult{}, nil
}

func (m *mockService) ListSessionsByAttendance(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error) {
	if m.listSessionsFunc != nil {
		return m.listSessionsFunc(ctx, attendanceID, limit, offset)
	}
	return nil, 0, nil
}

func submitRequest(t *testing.T, attendanceID string, payload SubmissionPayload, authenticated bool) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/attendances/"+attendanceID+"/treatment-form", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": attendanceID})
	if authenticated {
		principal := &auth.Principal{UserID: "clinician-1", Roles: []string{"CLINICIAN"}}
		req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
	}
	return req
}

func decodeSubmitResponse(t *testing.T, rec *httptest.ResponseRecorder) SubmitResponse {
	t.Helper()
	var resp SubmitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func TestSubmitTreatmentForm_Success(t *testing.T) {
	service := &mockService{
		submitFunc: func(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error) {
			return &SubmissionResult{
				Sessions: []CreatedTreatmentSession{
					{ID: 1, TreatmentType: TypeLightBath, BodyLocation: "head", StartDate: "2024-01-15", PlannedSessions: 3},
				},
			}, nil
		},
	}
	handler := NewHandler(service, nil)

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "10", validPayload(), true))

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}
	resp := decodeSubmitResponse(t, rec)
	if !resp.Success || resp.Mode != ModeConfirming {
		t.Errorf("Expected confirming success response, got %+v", resp)
	}
	if len(resp.Sessions) != 1 {
		t.Errorf("Expected 1 session, got %d", len(resp.Sessions))
	}
	if len(resp.Schedule) != 1 || len(resp.Schedule[0].Dates) != 3 {
		t.Errorf("Expected a projected schedule, got %+v", resp.Schedule)
	}
	if resp.Schedule[0].Dates[0] != "2024-01-16" {
		t.Errorf("Expected first projected date 2024-01-16, got %s", resp.Schedule[0].Dates[0])
	}
}

func TestSubmitTreatmentForm_AttendanceIDFromPath(t *testing.T) {
	service := &mockService{}
	handler := NewHandler(service, nil)

	payload := validPayload()
	payload.AttendanceID = 999 // body value is ignored

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "42", payload, true))

	if len(service.submitCalls) != 1 {
		t.Fatalf("Expected 1 submit call, got %d", len(service.submitCalls))
	}
	if service.submitCalls[0].AttendanceID != 42 {
		t.Errorf("Expected path attendance id 42, got %d", service.submitCalls[0].AttendanceID)
	}
}

func TestSubmitTreatmentForm_Unauthenticated(t *testing.T) {
	handler := NewHandler(&mockService{}, nil)

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "10", validPayload(), false))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
	if resp := decodeErrorResponse(t, rec); resp.Error != "unauthenticated" {
		t.Errorf("Expected unauthenticated error, got %q", resp.Error)
	}
}

func TestSubmitTreatmentForm_InvalidAttendanceID(t *testing.T) {
	service := &mockService{}
	handler := NewHandler(service, nil)

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "abc", validPayload(), true))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if len(service.submitCalls) != 0 {
		t.Error("Expected no submit call on invalid path id")
	}
}

func TestSubmitTreatmentForm_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/attendances/10/treatment-form", bytes.NewReader([]byte("{not json")))
	req = mux.SetURLVars(req, map[string]string{"id": "10"})
	principal := &auth.Principal{UserID: "clinician-1", Roles: []string{"CLINICIAN"}}
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if resp := decodeErrorResponse(t, rec); resp.Error != "invalid_request" {
		t.Errorf("Expected invalid_request error, got %q", resp.Error)
	}
}

func TestSubmitTreatmentForm_ValidationError(t *testing.T) {
	service := &mockService{
		submitFunc: func(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error) {
			return nil, &ValidationError{Message: "main complaint required"}
		},
	}
	handler := NewHandler(service, nil)

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "10", validPayload(), true))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	resp := decodeErrorResponse(t, rec)
	if resp.Error != "validation_error" {
		t.Errorf("Expected validation_error, got %q", resp.Error)
	}
	if resp.Message != "main complaint required" {
		t.Errorf("Expected the inline message, got %q", resp.Message)
	}
}

func TestSubmitTreatmentForm_RecordCreationFailure(t *testing.T) {
	service := &mockService{
		submitFunc: func(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error) {
			return nil, errors.New("failed to create treatment record: connection refused")
		},
	}
	handler := NewHandler(service, nil)

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "10", validPayload(), true))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", rec.Code)
	}
	if resp := decodeErrorResponse(t, rec); resp.Error != "record_creation_failed" {
		t.Errorf("Expected record_creation_failed, got %q", resp.Error)
	}
}

func TestSubmitTreatmentForm_PartialFailure(t *testing.T) {
	service := &mockService{
		submitFunc: func(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error) {
			return &SubmissionResult{
				SessionErrors: []TreatmentSessionError{
					{TreatmentType: TypeLightBath, Errors: []string{"chest: conflict"}},
				},
			}, nil
		},
	}
	handler := NewHandler(service, nil)

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "10", validPayload(), true))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", rec.Code)
	}
	resp := decodeSubmitResponse(t, rec)
	if resp.Success || resp.Mode != ModeErred {
		t.Errorf("Expected erred response, got %+v", resp)
	}
	if len(resp.SessionErrors) != 1 || resp.SessionErrors[0].TreatmentType != TypeLightBath {
		t.Errorf("Expected the light bath error bucket, got %+v", resp.SessionErrors)
	}
	if len(resp.Sessions) != 0 {
		t.Errorf("Expected no sessions in an erred response, got %d", len(resp.Sessions))
	}
}

func TestSubmitTreatmentForm_NoRecommendations(t *testing.T) {
	handler := NewHandler(&mockService{}, nil)

	rec := httptest.NewRecorder()
	handler.SubmitTreatmentForm(rec, submitRequest(t, "10", validPayload(), true))

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}
	resp := decodeSubmitResponse(t, rec)
	if !resp.Success || resp.Mode != ModeEditing {
		t.Errorf("Expected editing success response, got %+v", resp)
	}
	if len(resp.Sessions) != 0 || len(resp.SessionErrors) != 0 {
		t.Errorf("Expected an empty outcome, got %+v", resp)
	}
}

func TestListSessions(t *testing.T) {
	service := &mockService{
		listSessionsFunc: func(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error) {
			if attendanceID != 10 {
				t.Errorf("Expected attendance id 10, got %d", attendanceID)
			}
			if limit != 20 || offset != 0 {
				t.Errorf("Expected default pagination, got limit=%d offset=%d", limit, offset)
			}
			return []CreatedTreatmentSession{{ID: 1}, {ID: 2}}, 2, nil
		},
	}
	handler := NewHandler(service, nil)

	req := httptest.NewRequest(http.MethodGet, "/attendances/10/sessions", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "10"})
	principal := &auth.Principal{UserID: "clinician-1", Roles: []string{"CLINICIAN"}}
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))

	rec := httptest.NewRecorder()
	handler.ListSessions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var resp SessionListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || len(resp.Sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %+v", resp)
	}
	if resp.Meta.TotalRecords != 2 || resp.Meta.CurrentPage != 1 {
		t.Errorf("Expected pagination meta, got %+v", resp.Meta)
	}
}

func TestListSessions_EmptyIsNotNull(t *testing.T) {
	handler := NewHandler(&mockService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/attendances/10/sessions", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "10"})
	principal := &auth.Principal{UserID: "clinician-1"}
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))

	rec := httptest.NewRecorder()
	handler.ListSessions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if string(raw["sessions"]) != "[]" {
		t.Errorf("Expected empty array, got %s", raw["sessions"])
	}
}

func TestListSessions_ServiceError(t *testing.T) {
	service := &mockService{
		listSessionsFunc: func(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error) {
			return nil, 0, errors.New("connection refused")
		},
	}
	handler := NewHandler(service, nil)

	req := httptest.NewRequest(http.MethodGet, "/attendances/10/sessions", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "10"})
	principal := &auth.Principal{UserID: "clinician-1"}
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))

	rec := httptest.NewRecorder()
	handler.ListSessions(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rec.Code)
	}
}
