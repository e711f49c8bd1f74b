package treatment

import (
	"strings"
	"time"
)

// Bounds enforced at form-validation time. The session-creation layer allows
// light-bath durations up to MaxDurationUnitsSession; the form stops at 5.
// Both bounds are kept as observed in production until the clinical owner
// settles which one is authoritative.
const (
	MinReturnWeeks = 1
	MaxReturnWeeks = 52

	MinQuantity = 1
	MaxQuantity = 20

	MinDurationUnits        = 1
	MaxDurationUnitsForm    = 5
	MaxDurationUnitsSession = 10
)

// ValidationError is a single user-facing message that blocks the whole
// submission. Fully recoverable by editing and resubmitting.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidatePayload checks a complete submission against the business rules, in
// a fixed order so the reported message is deterministic. It returns nil when
// every rule passes. Pure: no clock access, no side effects; the caller
// supplies today.
func ValidatePayload(p SubmissionPayload, today time.Time) *ValidationError {
	if strings.TrimSpace(p.MainComplaint) == "" {
		return &ValidationError{Message: "main complaint required"}
	}
	if p.ReturnWeeks < MinReturnWeeks || p.ReturnWeeks > MaxReturnWeeks {
		return &ValidationError{Message: "return weeks out of range"}
	}
	if verr := validateNotFuture(p.StartDate, today, "start date cannot be in the future", "invalid start date"); verr != nil {
		return verr
	}
	if verr := validateNotFuture(p.AttendanceDate, today, "attendance date cannot be in the future", "invalid attendance date"); verr != nil {
		return verr
	}
	if rec := p.Recommendation.LightBath; rec != nil {
		if verr := validateGroup(rec, TypeLightBath); verr != nil {
			return verr
		}
	}
	if rec := p.Recommendation.Rod; rec != nil {
		if verr := validateGroup(rec, TypeRod); verr != nil {
			return verr
		}
	}
	return nil
}

func validateNotFuture(value string, today time.Time, futureMsg, parseMsg string) *ValidationError {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return &ValidationError{Message: parseMsg}
	}
	ty, tm, td := today.Date()
	if d.After(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)) {
		return &ValidationError{Message: futureMsg}
	}
	return nil
}

// validateGroup checks the treatments of one type; the first offending
// treatment wins.
func validateGroup(rec *RecommendationGroup, t TreatmentType) *ValidationError {
	label := "rod"
	if t == TypeLightBath {
		label = "light bath"
	}
	if len(rec.Treatments) == 0 {
		return &ValidationError{Message: label + " recommendation has no treatments"}
	}
	for _, lt := range rec.Treatments {
		if len(lt.Locations) == 0 {
			return &ValidationError{Message: label + " treatment requires at least one body location"}
		}
		if t == TypeLightBath {
			if strings.TrimSpace(lt.Color) == "" {
				return &ValidationError{Message: "light bath color required"}
			}
			if lt.DurationUnits < MinDurationUnits || lt.DurationUnits > MaxDurationUnitsForm {
				return &ValidationError{Message: "light bath duration out of range"}
			}
		}
		if lt.Quantity < MinQuantity || lt.Quantity > MaxQuantity {
			return &ValidationError{Message: label + " quantity out of range"}
		}
	}
	return nil
}
