package treatment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateTreatmentRecord(ctx context.Context, req CreateTreatmentRecordRequest) (int64, error) {
	query := `
		INSERT INTO treatment_records
		(attendance_id, main_complaint, treatment_status, food, water, ointments,
		 return_weeks, spiritual_treatment, notes, light_bath, light_bath_color, rod, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		req.AttendanceID,
		req.MainComplaint,
		string(req.TreatmentStatus),
		req.Food,
		req.Water,
		req.Ointments,
		req.ReturnWeeks,
		req.SpiritualTreatment,
		req.Notes,
		req.LightBath,
		req.LightBathColor,
		req.Rod,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, tagPostgresError(err, "failed to insert treatment record")
	}
	return id, nil
}

func (r *Repository) CreateTreatmentSession(ctx context.Context, req CreateTreatmentSessionRequest) (int64, error) {
	query := `
		INSERT INTO treatment_sessions
		(treatment_record_id, attendance_id, patient_id, treatment_type, body_location,
		 start_date, planned_sessions, completed_sessions, duration_minutes, color, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, $11)
		RETURNING id
	`

	var durationMinutes sql.NullInt64
	var color sql.NullString
	if req.TreatmentType == TypeLightBath {
		durationMinutes = sql.NullInt64{Int64: int64(req.DurationUnits * LightBathUnitMinutes), Valid: true}
		color = sql.NullString{String: req.Color, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		req.TreatmentRecordID,
		req.AttendanceID,
		req.PatientID,
		string(req.TreatmentType),
		req.BodyLocation,
		req.StartDate,
		req.PlannedSessions,
		durationMinutes,
		color,
		req.Notes,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, tagPostgresError(err, "failed to insert treatment session")
	}
	return id, nil
}

func (r *Repository) ListSessionsByAttendance(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM treatment_sessions WHERE attendance_id = $1 AND deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, attendanceID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count treatment sessions: %w", err)
	}

	query := `
		SELECT id, treatment_record_id, attendance_id, patient_id, treatment_type,
		       body_location, to_char(start_date, 'YYYY-MM-DD'), planned_sessions,
		       completed_sessions, duration_minutes, color, notes
		FROM treatment_sessions
		WHERE attendance_id = $1 AND deleted_at IS NULL
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, attendanceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query treatment sessions: %w", err)
	}
	defer rows.Close()

	var sessions []CreatedTreatmentSession
	for rows.Next() {
		var sess CreatedTreatmentSession
		var treatmentType string
		var durationMinutes sql.NullInt64
		var color sql.NullString
		var notes sql.NullString

		err := rows.Scan(
			&sess.ID,
			&sess.TreatmentRecordID,
			&sess.AttendanceID,
			&sess.PatientID,
			&treatmentType,
			&sess.BodyLocation,
			&sess.StartDate,
			&sess.PlannedSessions,
			&sess.CompletedSessions,
			&durationMinutes,
			&color,
			&notes,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan treatment session: %w", err)
		}

		sess.TreatmentType = TreatmentType(treatmentType)
		if durationMinutes.Valid {
			sess.DurationMinutes = int(durationMinutes.Int64)
		}
		if color.Valid {
			sess.Color = color.String
		}
		if notes.Valid {
			sess.Notes = notes.String
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate treatment sessions: %w", err)
	}
	return sessions, total, nil
}

// tagPostgresError converts driver errors into tagged collaborator errors so
// the aggregator can branch on a stable kind instead of parsing prose.
// 23505 = unique_violation, 23514 = check_violation, 23502 = not_null_violation.
func tagPostgresError(err error, context string) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return &CollaboratorError{
				Kind:    KindConflict,
				Message: fmt.Sprintf("%s: conflict: %s", context, pqErr.Message),
			}
		case "23514", "23502":
			return &CollaboratorError{
				Kind:    KindValidation,
				Message: fmt.Sprintf("%s: validation: %s", context, pqErr.Message),
			}
		}
	}
	return &CollaboratorError{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}
