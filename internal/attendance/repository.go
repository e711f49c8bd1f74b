package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrAttendanceNotFound = errors.New("attendance not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (*AttendanceResponse, error) {
	query := `
		INSERT INTO attendances (patient_id, attendance_date, therapist_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, patient_id, to_char(attendance_date, 'YYYY-MM-DD'), therapist_name, created_at
	`

	var attendance AttendanceResponse
	var therapistName sql.NullString

	err := r.db.QueryRowContext(ctx, query,
		req.PatientID,
		req.AttendanceDate,
		req.TherapistName,
		time.Now(),
	).Scan(
		&attendance.ID,
		&attendance.PatientID,
		&attendance.AttendanceDate,
		&therapistName,
		&attendance.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert attendance: %w", err)
	}

	if therapistName.Valid {
		attendance.TherapistName = therapistName.String
	}
	return &attendance, nil
}

func (r *Repository) GetAttendance(ctx context.Context, id int64) (*AttendanceResponse, error) {
	query := `
		SELECT id, patient_id, to_char(attendance_date, 'YYYY-MM-DD'), therapist_name, created_at
		FROM attendances
		WHERE id = $1 AND deleted_at IS NULL
	`

	var attendance AttendanceResponse
	var therapistName sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&attendance.ID,
		&attendance.PatientID,
		&attendance.AttendanceDate,
		&therapistName,
		&attendance.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAttendanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}

	if therapistName.Valid {
		attendance.TherapistName = therapistName.String
	}
	return &attendance, nil
}

func (r *Repository) ListAttendancesByPatient(ctx context.Context, patientID int64) ([]AttendanceResponse, error) {
	query := `
		SELECT id, patient_id, to_char(attendance_date, 'YYYY-MM-DD'), therapist_name, created_at
		FROM attendances
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY attendance_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []AttendanceResponse
	for rows.Next() {
		var attendance AttendanceResponse
		var therapistName sql.NullString

		err := rows.Scan(
			&attendance.ID,
			&attendance.PatientID,
			&attendance.AttendanceDate,
			&therapistName,
			&attendance.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}

		if therapistName.Valid {
			attendance.TherapistName = therapistName.String
		}
		attendances = append(attendances, attendance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendances: %w", err)
	}
	return attendances, nil
}
