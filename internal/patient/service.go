package patient

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo RepositoryInterface

	now func() time.Time
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetFormDefaults fetches the defaults the treatment form is pre-populated
// with. Runs once at workflow start, independent of any submission.
func (s *Service) GetFormDefaults(ctx context.Context, patientID int64) (*FormDefaults, error) {
	patient, err := s.repo.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	complaint, err := s.repo.GetLatestMainComplaint(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest main complaint: %w", err)
	}

	return &FormDefaults{
		PatientID:     patient.ID,
		PatientName:   patient.FullName,
		MainComplaint: complaint,
		StartDate:     s.now().UTC().Format("2006-01-02"),
	}, nil
}
