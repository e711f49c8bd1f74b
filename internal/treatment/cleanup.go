package treatment

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/fraternidade-care/treatment-service/internal/messaging"
)

// RetentionPeriod defines how long soft-deleted treatment records are
// retained before permanent deletion (5 years, clinical record policy).
const RetentionPeriod = 5 * 365 * 24 * time.Hour

// CleanupService handles permanent deletion of expired soft-deleted treatment
// records and their sessions.
type CleanupService struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(db *sql.DB, publisher messaging.PublisherInterface) *CleanupService {
	return &CleanupService{db: db, publisher: publisher}
}

// GetExpiredRecordsCount returns how many records are eligible for cleanup.
func (s *CleanupService) GetExpiredRecordsCount(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)

	var count int
	query := `
		SELECT COUNT(*)
		FROM treatment_records
		WHERE deleted_at IS NOT NULL
		AND deleted_at < $1
	`
	if err := s.db.QueryRowContext(ctx, query, cutoffDate).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expired treatment records: %w", err)
	}
	return count, nil
}

// CleanupExpiredRecords permanently deletes treatment records that have been
// soft-deleted longer than the retention period, sessions first.
func (s *CleanupService) CleanupExpiredRecords(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)
	log.Printf("Starting cleanup of treatment records deleted before %s", cutoffDate.Format(time.RFC3339))

	query := `
		SELECT id
		FROM treatment_records
		WHERE deleted_at IS NOT NULL
		AND deleted_at < $1
		ORDER BY deleted_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, cutoffDate)
	if err != nil {
		return 0, fmt.Errorf("failed to query expired treatment records: %w", err)
	}
	defer rows.Close()

	var expired []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan treatment record: %w", err)
		}
		expired = append(expired, id)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating treatment records: %w", err)
	}

	if len(expired) == 0 {
		log.Println("No expired treatment records found for cleanup")
		return 0, nil
	}

	log.Printf("Found %d treatment records to permanently delete", len(expired))

	deletedCount := 0
	for _, id := range expired {
		if err := s.permanentlyDeleteRecord(ctx, id); err != nil {
			log.Printf("Failed to delete treatment record %d: %v", id, err)
			continue
		}
		deletedCount++
	}

	log.Printf("Successfully cleaned up %d/%d expired treatment records", deletedCount, len(expired))
	return deletedCount, nil
}

// permanentlyDeleteRecord hard-deletes one record and its sessions atomically.
func (s *CleanupService) permanentlyDeleteRecord(ctx context.Context, recordID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM treatment_sessions WHERE treatment_record_id = $1`, recordID); err != nil {
		return fmt.Errorf("failed to delete treatment sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM treatment_records WHERE id = $1`, recordID); err != nil {
		return fmt.Errorf("failed to delete treatment record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cleanup transaction: %w", err)
	}

	event := messaging.TreatmentRecordPurgedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventTreatmentRecordPurged),
		Data: messaging.TreatmentRecordPurgedData{
			TreatmentRecordID: recordID,
			PurgedAt:          time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventTreatmentRecordPurged, event); err != nil {
		log.Printf("Warning: failed to publish record-purged event for %d: %v", recordID, err)
	}

	log.Printf("✓ Permanently deleted treatment record %d", recordID)
	return nil
}
