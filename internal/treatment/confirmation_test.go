package treatment

import (
	"testing"
	"time"
)

func TestBuildConfirmationSummary(t *testing.T) {
	sessions := []CreatedTreatmentSession{
		{
			ID:              1,
			TreatmentType:   TypeLightBath,
			BodyLocation:    "head",
			StartDate:       "2024-01-15", // a Monday
			PlannedSessions: 3,
		},
		{
			ID:              2,
			TreatmentType:   TypeRod,
			BodyLocation:    "back",
			StartDate:       "2024-01-16", // a Tuesday
			PlannedSessions: 2,
		},
	}

	schedules := BuildConfirmationSummary(sessions)
	if len(schedules) != 2 {
		t.Fatalf("Expected 2 schedules, got %d", len(schedules))
	}

	first := schedules[0]
	if first.SessionID != 1 || first.TreatmentType != TypeLightBath || first.BodyLocation != "head" {
		t.Errorf("Expected session identity carried over, got %+v", first)
	}
	wantDates := []string{"2024-01-16", "2024-01-23", "2024-01-30"}
	if len(first.Dates) != len(wantDates) {
		t.Fatalf("Expected %d dates, got %d", len(wantDates), len(first.Dates))
	}
	for i, want := range wantDates {
		if first.Dates[i] != want {
			t.Errorf("Date %d: expected %s, got %s", i, want, first.Dates[i])
		}
	}

	// Starting on the treatment weekday itself pushes the first date a full
	// week out.
	second := schedules[1]
	if len(second.Dates) != 2 {
		t.Fatalf("Expected 2 dates, got %d", len(second.Dates))
	}
	if second.Dates[0] != "2024-01-23" {
		t.Errorf("Expected first date strictly after the start, got %s", second.Dates[0])
	}
	if second.Dates[1] != "2024-01-30" {
		t.Errorf("Expected weekly spacing, got %s", second.Dates[1])
	}
}

func TestBuildConfirmationSummary_AllDatesOnTreatmentWeekday(t *testing.T) {
	sessions := []CreatedTreatmentSession{
		{ID: 1, StartDate: "2024-03-07", PlannedSessions: 8},
	}
	schedules := BuildConfirmationSummary(sessions)
	for _, date := range schedules[0].Dates {
		d, err := time.Parse(DateLayout, date)
		if err != nil {
			t.Fatalf("Unparseable projected date %q: %v", date, err)
		}
		if d.Weekday() != time.Tuesday {
			t.Errorf("Expected Tuesday, got %s for %s", d.Weekday(), date)
		}
	}
}

func TestBuildConfirmationSummary_EmptyAndInvalid(t *testing.T) {
	if schedules := BuildConfirmationSummary(nil); len(schedules) != 0 {
		t.Errorf("Expected no schedules, got %d", len(schedules))
	}

	sessions := []CreatedTreatmentSession{
		{ID: 1, StartDate: "not-a-date", PlannedSessions: 4},
	}
	schedules := BuildConfirmationSummary(sessions)
	if len(schedules) != 1 {
		t.Fatalf("Expected 1 schedule, got %d", len(schedules))
	}
	if len(schedules[0].Dates) != 0 {
		t.Errorf("Expected no dates for an unparseable start, got %v", schedules[0].Dates)
	}
}
