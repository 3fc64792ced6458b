package schedule

// ErrorKind classifies a validation failure. Every kind is recoverable by
// the caller; the engine never fails fatally on bad input.
type ErrorKind string

const (
	FieldRequired      ErrorKind = "field_required"
	FieldInvalid       ErrorKind = "field_invalid"
	SchedulingConflict ErrorKind = "scheduling_conflict"
	DuplicateEmail     ErrorKind = "duplicate_email"
)

// ConflictMessage is the standalone failure reported when any participant is
// double-booked.
const ConflictMessage = "One or more participants have overlapping appointments"

// FieldError is one itemized validation failure scoped to a field.
type FieldError struct {
	Kind    ErrorKind `json:"-"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

// Report is the outcome of one validation pass: either Ok, or a scheduling
// conflict, or a non-empty ordered list of field errors. A conflict is a
// standalone failure and preempts field error collection.
type Report struct {
	Conflict bool
	Errors   []FieldError
}

func (r *Report) Ok() bool {
	return !r.Conflict && len(r.Errors) == 0
}

func (r *Report) add(kind ErrorKind, field, message string) {
	r.Errors = append(r.Errors, FieldError{Kind: kind, Field: field, Message: message})
}
