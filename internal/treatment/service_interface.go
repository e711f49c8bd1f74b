package treatment

import "context"

// ServiceInterface defines the submission workflow contract for handlers
type ServiceInterface interface {
	Submit(ctx context.Context, payload SubmissionPayload) (*SubmissionResult, error)
	ListSessionsByAttendance(ctx context.Context, attendanceID int64, limit, offset int) ([]CreatedTreatmentSession, int, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
