package treatment

import (
	"time"

	"github.com/fraternidade-care/treatment-service/internal/recurrence"
)

// SessionSchedule is the projected appointment series of one created session,
// shown on the confirmation view. Display only: the agenda service remains
// the source of truth for actual appointment dates.
type SessionSchedule struct {
	SessionID     int64         `json:"session_id"`
	TreatmentType TreatmentType `json:"treatment_type"`
	BodyLocation  string        `json:"body_location"`
	Dates         []string      `json:"dates"`
}

// BuildConfirmationSummary projects each session's planned weekly dates:
// sessions run on the house treatment weekday, starting with the first
// occurrence strictly after the session's start date.
func BuildConfirmationSummary(sessions []CreatedTreatmentSession) []SessionSchedule {
	schedules := make([]SessionSchedule, 0, len(sessions))
	for _, sess := range sessions {
		schedules = append(schedules, SessionSchedule{
			SessionID:     sess.ID,
			TreatmentType: sess.TreatmentType,
			BodyLocation:  sess.BodyLocation,
			Dates:         projectDates(sess.StartDate, sess.PlannedSessions),
		})
	}
	return schedules
}

func projectDates(startDate string, count int) []string {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return []string{}
	}
	first := recurrence.NextOccurrenceOfWeekday(start, recurrence.TreatmentWeekday)
	series := recurrence.ExpandWeeklySeries(first, count)
	dates := make([]string, len(series))
	for i, d := range series {
		dates[i] = d.Format(DateLayout)
	}
	return dates
}
