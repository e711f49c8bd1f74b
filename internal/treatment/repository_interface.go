package treatment

import "context"

// RepositoryInterface defines the persistence contract the orchestrator
// consumes. Failures come back as tagged *CollaboratorError values where the
// cause is known; anything else is treated as unknown.
type RepositoryInterface interface {
	CreateTreatmentRecord(ctx context.Context, req CreateTreatmentRecordRequest) (int64, error)
	CreateTreatmentSession(ctx context.Context, req CreateTreatmentSessionRequest) (int64, error)
	ListSessionsByAttendance(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
