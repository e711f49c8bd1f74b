package treatment

// DateLayout is the wire format for all calendar dates. Dates carry no time
// component and no timezone.
const DateLayout = "2006-01-02"

// TreatmentType identifies one of the two recurring treatment modalities.
type TreatmentType string

const (
	TypeLightBath TreatmentType = "light_bath"
	TypeRod       TreatmentType = "rod"
)

// LightBathUnitMinutes is the length of one light-bath duration unit.
const LightBathUnitMinutes = 7

// TreatmentStatus is the single-letter status code carried on the record.
type TreatmentStatus string

const (
	StatusNew         TreatmentStatus = "N"
	StatusInTreatment TreatmentStatus = "T"
	StatusDischarged  TreatmentStatus = "A"
	StatusFinished    TreatmentStatus = "F"
)

// LocationTreatment is a clinician-specified group of body locations sharing
// identical treatment parameters. Color and DurationUnits are only meaningful
// for light-bath treatments; rod treatments leave them zero-valued.
type LocationTreatment struct {
	Locations []string `json:"locations"`
	StartDate string   `json:"start_date"` // YYYY-MM-DD
	Quantity  int      `json:"quantity"`   // planned sessions, [1,20]

	// Light bath only
	Color         string `json:"color,omitempty"`
	DurationUnits int    `json:"duration_units,omitempty"` // units of 7 minutes
}

// RecommendationGroup bundles all location treatments of one type.
type RecommendationGroup struct {
	StartDate  string              `json:"start_date"`
	Treatments []LocationTreatment `json:"treatments"`
}

// TreatmentRecommendation aggregates the recommendations for one consultation.
type TreatmentRecommendation struct {
	LightBath                 *RecommendationGroup `json:"light_bath,omitempty"`
	Rod                       *RecommendationGroup `json:"rod,omitempty"`
	SpiritualMedicalDischarge bool                 `json:"spiritual_medical_discharge"`
}

// SubmissionPayload is the full form snapshot submitted after a consultation.
// One immutable value per submission attempt.
type SubmissionPayload struct {
	AttendanceID    int64                   `json:"attendance_id"`
	PatientID       int64                   `json:"patient_id"`
	MainComplaint   string                  `json:"main_complaint"`
	TreatmentStatus TreatmentStatus         `json:"treatment_status"`
	AttendanceDate  string                  `json:"attendance_date"` // YYYY-MM-DD
	StartDate       string                  `json:"start_date"`      // YYYY-MM-DD
	ReturnWeeks     int                     `json:"return_weeks"`    // [1,52]
	Food            string                  `json:"food,omitempty"`
	Water           string                  `json:"water,omitempty"`
	Ointments       string                  `json:"ointments,omitempty"`
	Recommendation  TreatmentRecommendation `json:"recommendation"`
	Notes           string                  `json:"notes,omitempty"`
}

// CreateTreatmentRecordRequest carries the payload-derived fields persisted as
// the parent treatment record. LightBath/Rod/LightBathColor are the legacy
// summary columns kept for older report queries.
type CreateTreatmentRecordRequest struct {
	AttendanceID       int64           `json:"attendance_id"`
	MainComplaint      string          `json:"main_complaint"`
	TreatmentStatus    TreatmentStatus `json:"treatment_status"`
	Food               string          `json:"food"`
	Water              string          `json:"water"`
	Ointments          string          `json:"ointments"`
	ReturnWeeks        int             `json:"return_weeks"`
	SpiritualTreatment bool            `json:"spiritual_treatment"`
	Notes              string          `json:"notes"`
	LightBath          bool            `json:"light_bath"`
	LightBathColor     string          `json:"light_bath_color"`
	Rod                bool            `json:"rod"`
}

// CreateTreatmentSessionRequest carries one (treatment type, body location)
// pair expanded from a LocationTreatment.
type CreateTreatmentSessionRequest struct {
	TreatmentRecordID int64         `json:"treatment_record_id"`
	AttendanceID      int64         `json:"attendance_id"`
	PatientID         int64         `json:"patient_id"`
	TreatmentType     TreatmentType `json:"treatment_type"`
	BodyLocation      string        `json:"body_location"`
	StartDate         string        `json:"start_date"`
	PlannedSessions   int           `json:"planned_sessions"`
	DurationUnits     int           `json:"duration_units,omitempty"` // light bath only, [1,10]
	Color             string        `json:"color,omitempty"`
	Notes             string        `json:"notes,omitempty"`
}

// CreatedTreatmentSession is one persisted recurring-appointment series for a
// single body location. Immutable here after creation; completion tracking
// belongs to the agenda service.
type CreatedTreatmentSession struct {
	ID                int64         `json:"id"`
	TreatmentRecordID int64         `json:"treatment_record_id"`
	AttendanceID      int64         `json:"attendance_id"`
	PatientID         int64         `json:"patient_id"`
	TreatmentType     TreatmentType `json:"treatment_type"`
	BodyLocation      string        `json:"body_location"`
	StartDate         string        `json:"start_date"`
	PlannedSessions   int           `json:"planned_sessions"`
	CompletedSessions int           `json:"completed_sessions"`
	DurationMinutes   int           `json:"duration_minutes,omitempty"`
	Color             string        `json:"color,omitempty"`
	Notes             string        `json:"notes,omitempty"`
}

// TreatmentSessionError groups the session-creation failures of one treatment
// type within a single submission attempt.
type TreatmentSessionError struct {
	TreatmentType TreatmentType `json:"treatment_type"`
	Errors        []string      `json:"errors"`
}

// SubmissionResult is the tagged outcome of a submission: either the full
// list of created sessions, or the per-type error report. Never both.
type SubmissionResult struct {
	Sessions      []CreatedTreatmentSession `json:"sessions,omitempty"`
	SessionErrors []TreatmentSessionError   `json:"session_errors,omitempty"`
}

// Failed reports whether any session creation failed. A submission with
// failures exposes no sessions list even when some locations succeeded.
func (r *SubmissionResult) Failed() bool {
	return len(r.SessionErrors) > 0
}

// presentTypes returns the treatment types that have treatments defined, in
// the fixed processing order.
func presentTypes(rec TreatmentRecommendation) []TreatmentType {
	var types []TreatmentType
	if rec.LightBath != nil && len(rec.LightBath.Treatments) > 0 {
		types = append(types, TypeLightBath)
	}
	if rec.Rod != nil && len(rec.Rod.Treatments) > 0 {
		types = append(types, TypeRod)
	}
	return types
}
