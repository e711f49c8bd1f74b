package treatment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tags a collaborator failure so callers can branch on a stable tag
// instead of parsing prose.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindUnknown    ErrorKind = "unknown"
)

// CollaboratorError is the tagged error returned by the persistence
// collaborators. Detail, when present, carries type-partitioned messages that
// are used verbatim in the error report.
type CollaboratorError struct {
	Kind    ErrorKind
	Message string
	Detail  map[TreatmentType][]string
}

func (e *CollaboratorError) Error() string {
	return e.Message
}

// bucketOrder fixes the report order: light bath before rod.
var bucketOrder = []TreatmentType{TypeLightBath, TypeRod}

const genericSessionFailure = "treatment session could not be created"

// Aggregator collects per-location session-creation failures into a taxonomy
// keyed by treatment type. Repeated identical messages are preserved in order.
type Aggregator struct {
	byType map[TreatmentType][]string
}

func NewAggregator() *Aggregator {
	return &Aggregator{byType: make(map[TreatmentType][]string)}
}

// Push appends one message to a treatment type's error list.
func (a *Aggregator) Push(t TreatmentType, message string) {
	a.byType[t] = append(a.byType[t], message)
}

// Empty reports whether no failure has been recorded.
func (a *Aggregator) Empty() bool {
	return len(a.byType[TypeLightBath]) == 0 && len(a.byType[TypeRod]) == 0
}

// List returns one TreatmentSessionError per type with at least one recorded
// failure, light bath first.
func (a *Aggregator) List() []TreatmentSessionError {
	var out []TreatmentSessionError
	for _, t := range bucketOrder {
		if msgs := a.byType[t]; len(msgs) > 0 {
			out = append(out, TreatmentSessionError{TreatmentType: t, Errors: msgs})
		}
	}
	return out
}

// PushFailure records one failed session-creation call. Structured
// collaborator detail is used verbatim when present; otherwise the body
// location and the raw error text land in the bucket of the treatment type
// whose call failed.
func (a *Aggregator) PushFailure(t TreatmentType, location string, err error) {
	var ce *CollaboratorError
	if errors.As(err, &ce) && len(ce.Detail) > 0 {
		for _, bt := range bucketOrder {
			for _, msg := range ce.Detail[bt] {
				a.Push(bt, msg)
			}
		}
		return
	}
	a.Push(t, fmt.Sprintf("%s: %v", location, err))
}

// PushUnattributed records a failure that cannot be tied to the call that
// produced it. The raw text is matched against per-type keywords; when no
// type can be inferred the message goes to the first type that has any
// treatments defined in the payload.
func (a *Aggregator) PushUnattributed(err error, rec TreatmentRecommendation) {
	present := presentTypes(rec)
	if len(present) == 0 {
		return
	}
	if t, ok := InferTreatmentType(err.Error(), rec); ok {
		a.Push(t, err.Error())
		return
	}
	a.Push(present[0], err.Error())
}

// PushGenericAll emits one generic message per present treatment type. Last
// resort when error buckets cannot be built from the failure at all.
func (a *Aggregator) PushGenericAll(rec TreatmentRecommendation) {
	for _, t := range presentTypes(rec) {
		a.Push(t, genericSessionFailure)
	}
}

// InferTreatmentType matches raw error text against the known keywords of
// each treatment type. Only types with treatments defined in the
// recommendation are eligible.
func InferTreatmentType(message string, rec TreatmentRecommendation) (TreatmentType, bool) {
	lower := strings.ToLower(message)
	hasLightBath := rec.LightBath != nil && len(rec.LightBath.Treatments) > 0
	hasRod := rec.Rod != nil && len(rec.Rod.Treatments) > 0

	if hasLightBath && (strings.Contains(lower, "light bath") || strings.Contains(lower, string(TypeLightBath))) {
		return TypeLightBath, true
	}
	if hasRod && strings.Contains(lower, string(TypeRod)) {
		return TypeRod, true
	}
	// Generic validation markers cannot pick a type on their own; route them
	// to the first present type.
	if strings.Contains(lower, string(KindValidation)) {
		if present := presentTypes(rec); len(present) > 0 {
			return present[0], true
		}
	}
	return "", false
}
