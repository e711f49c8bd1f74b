package patient

import "time"

// PatientRecord is the read-only view of a patient this service consumes.
type PatientRecord struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	PhoneNumber string    `json:"phone_number,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// FormDefaults seeds the treatment form before first edit: the main
// complaint carried over from the patient's most recent treatment record,
// and today as the proposed start date.
type FormDefaults struct {
	PatientID     int64  `json:"patient_id"`
	PatientName   string `json:"patient_name"`
	MainComplaint string `json:"main_complaint"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD
}
