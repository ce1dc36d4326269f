package domain

// Status is the terminal state of ingesting one phrase.
type Status string

const (
	StatusAdded    Status = "ADDED"
	StatusSkipped  Status = "SKIPPED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string { return string(s) }

// Reason refines a SKIPPED or REJECTED status.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonAlreadyExists   Reason = "already_exists"
	ReasonEmptyPhrase     Reason = "empty_phrase"
	ReasonUncodeableChars Reason = "uncodeable_chars"
	ReasonNoCodeableChars Reason = "no_codeable_chars"
	ReasonCancelled       Reason = "cancelled"
	ReasonWriteError      Reason = "write_error"
)

func (r Reason) String() string { return string(r) }

// Retriable reports whether the failure is worth recording in the fail file
// so later batch runs skip it. Write errors and cancellations are transient
// and would poison the fail file.
func (r Reason) Retriable() bool {
	return r == ReasonUncodeableChars || r == ReasonNoCodeableChars
}

// Result is the outcome record for one ingested phrase, consumed by the
// batch counters and the run-report writer.
type Result struct {
	Phrase string
	Code   string
	Weight int
	Status Status
	Reason Reason
	Err    error // underlying error for write_error, nil otherwise
}

// Added is a convenience accessor for the happy path.
func (r Result) Added() bool { return r.Status == StatusAdded }

// Rejected builds a REJECTED result for the given reason.
func Rejected(phrase string, reason Reason) Result {
	return Result{Phrase: phrase, Status: StatusRejected, Reason: reason}
}

// Skipped builds a SKIPPED result (phrase already present).
func Skipped(phrase string) Result {
	return Result{Phrase: phrase, Status: StatusSkipped, Reason: ReasonAlreadyExists}
}
