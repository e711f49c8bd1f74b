package recurrence

import "time"

// TreatmentWeekday is the weekday all recurring treatment sessions are held on.
const TreatmentWeekday = time.Tuesday

// NextOccurrenceOfWeekday returns the first occurrence of weekday strictly
// after from's position in the week: when from already falls on weekday, or
// later in the week cycle, the result lands in the following week.
func NextOccurrenceOfWeekday(from time.Time, weekday time.Weekday) time.Time {
	offset := int(weekday) - int(from.Weekday())
	if offset <= 0 {
		offset += 7
	}
	return from.AddDate(0, 0, offset)
}

// ExpandWeeklySeries returns count dates spaced exactly 7 days apart,
// starting at first. A count of zero or less yields an empty series.
func ExpandWeeklySeries(first time.Time, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}
	dates := make([]time.Time, count)
	for i := range dates {
		dates[i] = first.AddDate(0, 0, 7*i)
	}
	return dates
}
