package treatment

import (
	"testing"
	"time"
)

var testToday = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func validLightBathGroup() *RecommendationGroup {
	return &RecommendationGroup{
		StartDate: "2024-01-15",
		Treatments: []LocationTreatment{
			{
				Locations:     []string{"head", "chest"},
				StartDate:     "2024-01-15",
				Quantity:      5,
				Color:         "blue",
				DurationUnits: 2,
			},
		},
	}
}

func validRodGroup() *RecommendationGroup {
	return &RecommendationGroup{
		StartDate: "2024-01-15",
		Treatments: []LocationTreatment{
			{
				Locations: []string{"back"},
				StartDate: "2024-01-15",
				Quantity:  3,
			},
		},
	}
}

func validPayload() SubmissionPayload {
	return SubmissionPayload{
		AttendanceID:    10,
		PatientID:       7,
		MainComplaint:   "chronic back pain",
		TreatmentStatus: StatusInTreatment,
		AttendanceDate:  "2024-05-30",
		StartDate:       "2024-05-30",
		ReturnWeeks:     4,
		Recommendation: TreatmentRecommendation{
			LightBath: validLightBathGroup(),
			Rod:       validRodGroup(),
		},
	}
}

func TestValidatePayload_Valid(t *testing.T) {
	if verr := ValidatePayload(validPayload(), testToday); verr != nil {
		t.Fatalf("Expected no validation error, got: %v", verr)
	}
}

func TestValidatePayload_Rules(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*SubmissionPayload)
		wantMsg string
	}{
		{
			name:    "empty main complaint",
			mutate:  func(p *SubmissionPayload) { p.MainComplaint = "" },
			wantMsg: "main complaint required",
		},
		{
			name:    "whitespace main complaint",
			mutate:  func(p *SubmissionPayload) { p.MainComplaint = "   " },
			wantMsg: "main complaint required",
		},
		{
			name:    "return weeks zero",
			mutate:  func(p *SubmissionPayload) { p.ReturnWeeks = 0 },
			wantMsg: "return weeks out of range",
		},
		{
			name:    "return weeks above max",
			mutate:  func(p *SubmissionPayload) { p.ReturnWeeks = 53 },
			wantMsg: "return weeks out of range",
		},
		{
			name:    "start date in the future",
			mutate:  func(p *SubmissionPayload) { p.StartDate = "2024-06-02" },
			wantMsg: "start date cannot be in the future",
		},
		{
			name:    "attendance date in the future",
			mutate:  func(p *SubmissionPayload) { p.AttendanceDate = "2024-06-02" },
			wantMsg: "attendance date cannot be in the future",
		},
		{
			name:    "unparseable start date",
			mutate:  func(p *SubmissionPayload) { p.StartDate = "15/01/2024" },
			wantMsg: "invalid start date",
		},
		{
			name: "light bath without treatments",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath = &RecommendationGroup{StartDate: "2024-01-15"}
			},
			wantMsg: "light bath recommendation has no treatments",
		},
		{
			name: "light bath treatment without locations",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath.Treatments[0].Locations = nil
			},
			wantMsg: "light bath treatment requires at least one body location",
		},
		{
			name: "light bath without color",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath.Treatments[0].Color = ""
			},
			wantMsg: "light bath color required",
		},
		{
			name: "light bath duration zero",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath.Treatments[0].DurationUnits = 0
			},
			wantMsg: "light bath duration out of range",
		},
		{
			name: "light bath duration above form max",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath.Treatments[0].DurationUnits = 6
			},
			wantMsg: "light bath duration out of range",
		},
		{
			name: "light bath duration 11 above session max too",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath.Treatments[0].DurationUnits = 11
			},
			wantMsg: "light bath duration out of range",
		},
		{
			name: "light bath quantity zero",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath.Treatments[0].Quantity = 0
			},
			wantMsg: "light bath quantity out of range",
		},
		{
			name: "light bath quantity above max",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.LightBath.Treatments[0].Quantity = 21
			},
			wantMsg: "light bath quantity out of range",
		},
		{
			name: "rod without treatments",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.Rod = &RecommendationGroup{StartDate: "2024-01-15"}
			},
			wantMsg: "rod recommendation has no treatments",
		},
		{
			name: "rod treatment without locations",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.Rod.Treatments[0].Locations = []string{}
			},
			wantMsg: "rod treatment requires at least one body location",
		},
		{
			name: "rod quantity above max",
			mutate: func(p *SubmissionPayload) {
				p.Recommendation.Rod.Treatments[0].Quantity = 21
			},
			wantMsg: "rod quantity out of range",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mutate(&payload)
			verr := ValidatePayload(payload, testToday)
			if verr == nil {
				t.Fatal("Expected a validation error, got nil")
			}
			if verr.Message != tc.wantMsg {
				t.Errorf("Expected message %q, got %q", tc.wantMsg, verr.Message)
			}
		})
	}
}

// TestValidatePayload_FixedOrder verifies that a payload violating several
// rules always reports the first one.
func TestValidatePayload_FixedOrder(t *testing.T) {
	payload := validPayload()
	payload.MainComplaint = ""
	payload.ReturnWeeks = 99

	verr := ValidatePayload(payload, testToday)
	if verr == nil {
		t.Fatal("Expected a validation error, got nil")
	}
	if verr.Message != "main complaint required" {
		t.Errorf("Expected rule 1's message, got %q", verr.Message)
	}
}

// TestValidatePayload_Pure verifies identical input yields identical output.
func TestValidatePayload_Pure(t *testing.T) {
	payload := validPayload()
	payload.ReturnWeeks = 0

	first := ValidatePayload(payload, testToday)
	second := ValidatePayload(payload, testToday)
	if first == nil || second == nil {
		t.Fatal("Expected validation errors on both calls")
	}
	if first.Message != second.Message {
		t.Errorf("Expected identical messages, got %q and %q", first.Message, second.Message)
	}
}

func TestValidatePayload_Boundaries(t *testing.T) {
	accepted := []func(*SubmissionPayload){
		func(p *SubmissionPayload) { p.Recommendation.LightBath.Treatments[0].Quantity = 1 },
		func(p *SubmissionPayload) { p.Recommendation.LightBath.Treatments[0].Quantity = 20 },
		func(p *SubmissionPayload) { p.Recommendation.LightBath.Treatments[0].DurationUnits = 1 },
		func(p *SubmissionPayload) { p.Recommendation.LightBath.Treatments[0].DurationUnits = 5 },
		func(p *SubmissionPayload) { p.ReturnWeeks = 1 },
		func(p *SubmissionPayload) { p.ReturnWeeks = 52 },
		func(p *SubmissionPayload) { p.StartDate = "2024-06-01" }, // today is not future
	}
	for i, mutate := range accepted {
		payload := validPayload()
		mutate(&payload)
		if verr := ValidatePayload(payload, testToday); verr != nil {
			t.Errorf("Boundary case %d: expected acceptance, got %q", i, verr.Message)
		}
	}
}

func TestValidatePayload_NoRecommendations(t *testing.T) {
	payload := validPayload()
	payload.Recommendation = TreatmentRecommendation{}
	if verr := ValidatePayload(payload, testToday); verr != nil {
		t.Fatalf("Payload without recommendations should validate, got: %v", verr)
	}
}
