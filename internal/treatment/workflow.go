package treatment

import "errors"

// Mode is the view the form consumer should render.
type Mode string

const (
	ModeEditing    Mode = "editing"
	ModeConfirming Mode = "confirming"
	ModeErred      Mode = "erred"
	ModeClosed     Mode = "closed"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrInvalidTransition  = errors.New("invalid workflow transition")
)

// Workflow is the small state machine governing which view of the treatment
// form is visible. Created fresh per form; driven exclusively by the
// orchestrator's outcome. Not safe for concurrent use: one writer per form.
type Workflow struct {
	mode        Mode
	inFlight    bool
	sessions    []CreatedTreatmentSession
	errors      []TreatmentSessionError
	inlineError string
}

func NewWorkflow() *Workflow {
	return &Workflow{mode: ModeEditing}
}

// Begin marks a submission attempt as in flight. Re-entrant calls are
// rejected, and only the editing view can submit.
func (w *Workflow) Begin() error {
	if w.inFlight {
		return ErrSubmissionInFlight
	}
	if w.mode != ModeEditing {
		return ErrInvalidTransition
	}
	w.inFlight = true
	w.inlineError = ""
	return nil
}

// Finish applies the orchestrator's outcome:
//   - err != nil (validation or record creation failed): stay editing, the
//     message is shown inline. Recoverable on the same screen.
//   - failed result: switch to the error view with the per-type report.
//   - success with sessions: switch to the confirmation view.
//   - success with zero sessions (no recommendations present): no-op.
func (w *Workflow) Finish(result *SubmissionResult, err error) {
	w.inFlight = false
	if err != nil {
		w.inlineError = err.Error()
		return
	}
	if result == nil {
		return
	}
	if result.Failed() {
		w.mode = ModeErred
		w.errors = result.SessionErrors
		return
	}
	if len(result.Sessions) == 0 {
		return
	}
	w.mode = ModeConfirming
	w.sessions = result.Sessions
}

// Retry returns from the error view to editing with the payload intact. Only
// the error list is cleared; it does not re-run the submission.
func (w *Workflow) Retry() error {
	if w.mode != ModeErred {
		return ErrInvalidTransition
	}
	w.mode = ModeEditing
	w.errors = nil
	return nil
}

// Acknowledge leaves the confirmation or error view for the neutral closed
// state. From the error view this means accepting that the record exists
// without full session coverage.
func (w *Workflow) Acknowledge() error {
	if w.mode != ModeConfirming && w.mode != ModeErred {
		return ErrInvalidTransition
	}
	w.mode = ModeClosed
	w.sessions = nil
	w.errors = nil
	return nil
}

func (w *Workflow) Mode() Mode {
	return w.mode
}

// Sessions returns the created sessions backing the confirmation view.
func (w *Workflow) Sessions() []CreatedTreatmentSession {
	return w.sessions
}

// Errors returns the per-type report backing the error view.
func (w *Workflow) Errors() []TreatmentSessionError {
	return w.errors
}

// InlineError returns the dismissible banner message for the editing view,
// empty when there is none.
func (w *Workflow) InlineError() string {
	return w.inlineError
}
