package treatment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fraternidade-care/treatment-service/internal/messaging"
)

// Service orchestrates the submission workflow: validation, record creation,
// sequential session creation with partial-failure aggregation, and the
// best-effort sessions-created notification. It assumes at most one
// concurrent invocation per form; the Workflow guards re-entrancy.
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface

	// now is swappable for deterministic validation tests.
	now func() time.Time
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Submit runs one submission attempt end to end.
//
// A non-nil error means no session work was attempted (validation failed, or
// the record itself could not be created) and the form stays editable. A nil
// error with a failed result means the record exists but one or more sessions
// could not be created; the result carries the per-type error report and no
// sessions list. Once record creation succeeds every remaining location is
// attempted before a result is reported; there is no partial abort.
func (s *Service) Submit(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error) {
	if verr := ValidatePayload(payload, s.now().UTC()); verr != nil {
		return nil, verr
	}

	recordID, err := s.repo.CreateTreatmentRecord(ctx, buildRecordRequest(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create treatment record: %w", err)
	}

	if err := s.publisher.Publish(ctx, messaging.EventTreatmentRecordCreated,
		messaging.NewTreatmentRecordCreatedEvent(recordID, payload.AttendanceID, payload.PatientID)); err != nil {
		log.Printf("Warning: failed to publish record-created event: %v", err)
	}

	result := s.createSessions(ctx, recordID, payload)
	if result.Failed() {
		return result, nil
	}

	if len(result.Sessions) > 0 {
		s.notifySessionsCreated(ctx, recordID, result.Sessions)
	}
	return result, nil
}

// createSessions walks the treatment types in fixed order (light bath, then
// rod), treatments and locations in array order, one collaborator call per
// (type, location) pair. Strictly sequential: each outcome is recorded before
// the next call begins, so failure attribution is deterministic.
func (s *Service) createSessions(ctx context.Context, recordID int64, payload SubmissionPayload) *SubmissionResult {
	agg := NewAggregator()
	var sessions []CreatedTreatmentSession

	groups := []struct {
		t     TreatmentType
		group *RecommendationGroup
	}{
		{TypeLightBath, payload.Recommendation.LightBath},
		{TypeRod, payload.Recommendation.Rod},
	}

	for _, g := range groups {
		if g.group == nil {
			continue
		}
		for _, lt := range g.group.Treatments {
			for _, location := range lt.Locations {
				req := buildSessionRequest(recordID, payload, g.t, lt, location)
				created, err := s.createOneSession(ctx, req, agg, payload.Recommendation)
				if err != nil {
					agg.PushFailure(g.t, location, err)
					continue
				}
				if created != nil {
					sessions = append(sessions, *created)
				}
			}
		}
	}

	if !agg.Empty() {
		return &SubmissionResult{SessionErrors: agg.List()}
	}
	return &SubmissionResult{Sessions: sessions}
}

// createOneSession isolates a single collaborator call. A panic while the
// call or its error is processed degrades to one generic message per present
// treatment type instead of crossing the orchestrator boundary.
func (s *Service) createOneSession(ctx context.Context, req CreateTreatmentSessionRequest, agg *Aggregator, rec TreatmentRecommendation) (created *CreatedTreatmentSession, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: session creation panicked for %s/%s: %v", req.TreatmentType, req.BodyLocation, r)
			agg.PushGenericAll(rec)
			created, err = nil, nil
		}
	}()

	id, err := s.repo.CreateTreatmentSession(ctx, req)
	if err != nil {
		return nil, err
	}
	return &CreatedTreatmentSession{
		ID:                id,
		TreatmentRecordID: req.TreatmentRecordID,
		AttendanceID:      req.AttendanceID,
		PatientID:         req.PatientID,
		TreatmentType:     req.TreatmentType,
		BodyLocation:      req.BodyLocation,
		StartDate:         req.StartDate,
		PlannedSessions:   req.PlannedSessions,
		CompletedSessions: 0,
		DurationMinutes:   req.DurationUnits * LightBathUnitMinutes,
		Color:             req.Color,
		Notes:             req.Notes,
	}, nil
}

// notifySessionsCreated publishes the new session ids. Best-effort: a publish
// failure is logged and never alters the reported outcome.
func (s *Service) notifySessionsCreated(ctx context.Context, recordID int64, sessions []CreatedTreatmentSession) {
	ids := make([]int64, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	event := messaging.NewTreatmentSessionsCreatedEvent(recordID, ids)
	if err := s.publisher.Publish(ctx, messaging.EventTreatmentSessionsCreated, event); err != nil {
		log.Printf("Warning: failed to publish sessions-created event for record %d: %v", recordID, err)
	}
}

// ListSessionsByAttendance returns the persisted sessions of one attendance.
func (s *Service) ListSessionsByAttendance(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error) {
	sessions, total, err := s.repo.ListSessionsByAttendance(ctx, attendanceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list treatment sessions: %w", err)
	}
	return sessions, total, nil
}

func buildRecordRequest(p SubmissionPayload) CreateTreatmentRecordRequest {
	return CreateTreatmentRecordRequest{
		AttendanceID:       p.AttendanceID,
		MainComplaint:      p.MainComplaint,
		TreatmentStatus:    p.TreatmentStatus,
		Food:               p.Food,
		Water:              p.Water,
		Ointments:          p.Ointments,
		ReturnWeeks:        p.ReturnWeeks,
		SpiritualTreatment: true,
		Notes:              p.Notes,
		LightBath:          p.Recommendation.LightBath != nil,
		LightBathColor:     lightBathColorSummary(p.Recommendation.LightBath),
		Rod:                p.Recommendation.Rod != nil,
	}
}

// lightBathColorSummary joins the distinct colors of all light-bath
// treatments for the legacy summary column.
func lightBathColorSummary(group *RecommendationGroup) string {
	if group == nil {
		return ""
	}
	var colors []string
	seen := make(map[string]bool)
	for _, lt := range group.Treatments {
		if lt.Color != "" && !seen[lt.Color] {
			seen[lt.Color] = true
			colors = append(colors, lt.Color)
		}
	}
	return strings.Join(colors, ",")
}

func buildSessionRequest(recordID int64, p SubmissionPayload, t TreatmentType, lt LocationTreatment, location string) CreateTreatmentSessionRequest {
	req := CreateTreatmentSessionRequest{
		TreatmentRecordID: recordID,
		AttendanceID:      p.AttendanceID,
		PatientID:         p.PatientID,
		TreatmentType:     t,
		BodyLocation:      location,
		StartDate:         lt.StartDate,
		PlannedSessions:   lt.Quantity,
	}
	if t == TypeLightBath {
		req.DurationUnits = lt.DurationUnits
		req.Color = lt.Color
	}
	req.Notes = sessionNotes(req)
	return req
}

// sessionNotes generates the human-readable session description
// deterministically from the request fields.
func sessionNotes(req CreateTreatmentSessionRequest) string {
	if req.TreatmentType == TypeLightBath {
		return fmt.Sprintf("light bath - %s - %d minutes", req.Color, req.DurationUnits*LightBathUnitMinutes)
	}
	return "rod treatment"
}
