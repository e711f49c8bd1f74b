package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	EventTreatmentRecordCreated   = "treatment.record_created"
	EventTreatmentSessionsCreated = "treatment.sessions_created"
	EventTreatmentRecordPurged    = "treatment.record_purged"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// TreatmentRecordCreatedEvent signals that a consultation's treatment record
// was persisted.
type TreatmentRecordCreatedEvent struct {
	BaseEvent
	Data TreatmentRecordCreatedData `json:"data"`
}

type TreatmentRecordCreatedData struct {
	TreatmentRecordID int64     `json:"treatment_record_id"`
	AttendanceID      int64     `json:"attendance_id"`
	PatientID         int64     `json:"patient_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// TreatmentSessionsCreatedEvent signals that recurring treatment sessions were
// scheduled under a record. Published best-effort after a successful
// submission; consumers (agenda, reminders) build the appointment series.
type TreatmentSessionsCreatedEvent struct {
	BaseEvent
	Data TreatmentSessionsCreatedData `json:"data"`
}

type TreatmentSessionsCreatedData struct {
	TreatmentRecordID int64     `json:"treatment_record_id"`
	SessionIDs        []int64   `json:"session_ids"`
	CreatedAt         time.Time `json:"created_at"`
}

// TreatmentRecordPurgedEvent signals permanent deletion by the cleanup job.
type TreatmentRecordPurgedEvent struct {
	BaseEvent
	Data TreatmentRecordPurgedData `json:"data"`
}

type TreatmentRecordPurgedData struct {
	TreatmentRecordID int64     `json:"treatment_record_id"`
	PurgedAt          time.Time `json:"purged_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "treatment-service",
	}
}

// NewTreatmentSessionsCreatedEvent builds the sessions-created event payload.
func NewTreatmentSessionsCreatedEvent(recordID int64, sessionIDs []int64) TreatmentSessionsCreatedEvent {
	return TreatmentSessionsCreatedEvent{
		BaseEvent: NewBaseEvent(EventTreatmentSessionsCreated),
		Data: TreatmentSessionsCreatedData{
			TreatmentRecordID: recordID,
			SessionIDs:        sessionIDs,
			CreatedAt:         time.Now().UTC(),
		},
	}
}

// NewTreatmentRecordCreatedEvent builds the record-created event payload.
func NewTreatmentRecordCreatedEvent(recordID, attendanceID, patientID int64) TreatmentRecordCreatedEvent {
	return TreatmentRecordCreatedEvent{
		BaseEvent: NewBaseEvent(EventTreatmentRecordCreated),
		Data: TreatmentRecordCreatedData{
			TreatmentRecordID: recordID,
			AttendanceID:      attendanceID,
			PatientID:         patientID,
			CreatedAt:         time.Now().UTC(),
		},
	}
}
