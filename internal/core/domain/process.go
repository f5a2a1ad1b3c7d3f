package domain

// DefaultProcessMessage is reported when the backend succeeds without a message.
const DefaultProcessMessage = "Processing completed successfully"

// ProcessState is the lifecycle of one processing submission.
type ProcessState string

// Processing states.
const (
	ProcessIdle    ProcessState = "idle"
	ProcessPending ProcessState = "pending"
	ProcessSuccess ProcessState = "success"
	ProcessError   ProcessState = "error"
)

// String returns the string representation.
func (s ProcessState) String() string {
	return string(s)
}

// ProcessStatus is the displayed outcome of one list or text submission.
// Each list tracks its own status; one never alters another.
type ProcessStatus struct {
	State   ProcessState
	Message string
}

// PendingStatus is the status while a submission is in flight.
func PendingStatus() ProcessStatus {
	return ProcessStatus{State: ProcessPending, Message: "Processing..."}
}

// SuccessStatus builds a success status, defaulting the message.
func SuccessStatus(message string) ProcessStatus {
	if message == "" {
		message = DefaultProcessMessage
	}
	return ProcessStatus{State: ProcessSuccess, Message: message}
}

// ErrorStatus builds an error status of the form "Error: <reason>".
func ErrorStatus(err error) ProcessStatus {
	return ProcessStatus{State: ProcessError, Message: "Error: " + UserMessage(err, "")}
}

// StatusFor maps an outcome to a status.
func StatusFor(message string, err error) ProcessStatus {
	if err != nil {
		return ErrorStatus(err)
	}
	return SuccessStatus(message)
}

// IsPending returns true while a submission is in flight.
func (s ProcessStatus) IsPending() bool {
	return s.State == ProcessPending
}

// IsDone returns true once the submission resolved either way.
func (s ProcessStatus) IsDone() bool {
	return s.State == ProcessSuccess || s.State == ProcessError
}

// ProcessResult is the outcome of a text or URL submission.
type ProcessResult struct {
	Kind     ListKind
	Status   ProcessStatus
	Products []Product
}

// BatchResult carries the independent outcomes of processing both lists.
type BatchResult struct {
	Description ProcessResult
	Product     ProcessResult
}

// For returns the result for kind.
func (b BatchResult) For(kind ListKind) ProcessResult {
	if kind == KindProduct {
		return b.Product
	}
	return b.Description
}
