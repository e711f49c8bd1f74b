package patient

import "context"

// RepositoryInterface defines the read-only patient data access this service
// uses to seed form defaults.
type RepositoryInterface interface {
	GetPatient(ctx context.Context, id int64) (*PatientRecord, error)
	GetLatestMainComplaint(ctx context.Context, patientID int64) (string, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
