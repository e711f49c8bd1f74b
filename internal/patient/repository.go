package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrPatientNotFound = errors.New("patient not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPatient(ctx context.Context, id int64) (*PatientRecord, error) {
	query := `
		SELECT id, full_name, to_char(date_of_birth, 'YYYY-MM-DD'), phone_number, is_active, created_at
		FROM patients
		WHERE id = $1 AND deleted_at IS NULL
	`

	var patient PatientRecord
	var dob sql.NullString
	var phoneNumber sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&patient.ID,
		&patient.FullName,
		&dob,
		&phoneNumber,
		&patient.IsActive,
		&patient.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	if dob.Valid {
		patient.DateOfBirth = &dob.String
	}
	if phoneNumber.Valid {
		patient.PhoneNumber = phoneNumber.String
	}
	return &patient, nil
}

// GetLatestMainComplaint returns the main complaint of the patient's most
// recent treatment record, or empty when the patient has none.
func (r *Repository) GetLatestMainComplaint(ctx context.Context, patientID int64) (string, error) {
	query := `
		SELECT tr.main_complaint
		FROM treatment_records tr
		JOIN attendances a ON a.id = tr.attendance_id
		WHERE a.patient_id = $1 AND tr.deleted_at IS NULL
		ORDER BY tr.created_at DESC
		LIMIT 1
	`

	var complaint string
	err := r.db.QueryRowContext(ctx, query, patientID).Scan(&complaint)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest main complaint: %w", err)
	}
	return complaint, nil
}
