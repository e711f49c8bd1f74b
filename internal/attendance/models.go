package attendance

import "time"

// CreateAttendanceRequest registers one consultation visit.
type CreateAttendanceRequest struct {
	PatientID      int64  `json:"patient_id" validate:"required"`
	AttendanceDate string `json:"attendance_date" validate:"required"` // YYYY-MM-DD
	TherapistName  string `json:"therapist_name,omitempty"`
}

// AttendanceResponse represents the attendance data returned to clients
type AttendanceResponse struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"patient_id"`
	AttendanceDate string    `json:"attendance_date"`
	TherapistName  string    `json:"therapist_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
