package attendance

import "context"

// RepositoryInterface defines the contract for attendance data access
type RepositoryInterface interface {
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (*AttendanceResponse, error)
	GetAttendance(ctx context.Context, id int64) (*AttendanceResponse, error)
	ListAttendancesByPatient(ctx context.Context, patientID int64) ([]AttendanceResponse, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
