package attendance

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (*AttendanceResponse, error) {
	if req.PatientID == 0 {
		return nil, fmt.Errorf("patient ID is required")
	}
	if req.AttendanceDate == "" {
		return nil, fmt.Errorf("attendance date is required")
	}
	if _, err := time.Parse("2006-01-02", req.AttendanceDate); err != nil {
		return nil, fmt.Errorf("attendance date must be YYYY-MM-DD")
	}

	attendance, err := s.repo.CreateAttendance(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}
	return attendance, nil
}

func (s *Service) GetAttendance(ctx context.Context, id int64) (*AttendanceResponse, error) {
	attendance, err := s.repo.GetAttendance(ctx, id)
	if err != nil {
		return nil, err
	}
	return attendance, nil
}

func (s *Service) ListAttendancesByPatient(ctx context.Context, patientID int64) ([]AttendanceResponse, error) {
	attendances, err := s.repo.ListAttendancesByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	return attendances, nil
}
