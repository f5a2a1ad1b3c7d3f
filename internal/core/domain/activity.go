package domain

import "time"

// Operation names a recorded backend mutation.
type Operation string

// Recorded operations.
const (
	OpClassify          Operation = "classify"
	OpProcessURLs       Operation = "process_urls"
	OpProcessText       Operation = "process_text"
	OpAddDescription    Operation = "add_description"
	OpUpdateDescription Operation = "update_description"
	OpRemoveDescription Operation = "remove_description"
	OpAddProduct        Operation = "add_product"
	OpUpdateProduct     Operation = "update_product"
	OpRemoveProduct     Operation = "remove_product"
)

// String returns the string representation.
func (o Operation) String() string {
	return string(o)
}

// Outcome is the result of a recorded operation.
type Outcome string

// Outcomes.
const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Activity is one entry in the local audit trail of submissions.
// Chat exchanges are never recorded.
type Activity struct {
	ID        string
	Operation Operation
	// Target is what the operation acted on: a seed URL, a kind, an id or name.
	Target  string
	Outcome Outcome
	Message string
	At      time.Time
}

// IsSuccess returns true if the operation succeeded.
func (a *Activity) IsSuccess() bool {
	return a.Outcome == OutcomeSuccess
}
