package harness

import "github.com/roach88/jsondb/internal/catalog"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion held.
	Pass bool `json:"pass"`

	// Output is the full session transcript.
	Output string `json:"output"`

	// Saved reports whether the session persisted its records.
	Saved bool `json:"saved"`

	// Records is the final record set: what was saved, or the in-memory
	// set when the session ended without saving.
	Records []catalog.Record `json:"records"`

	// RunErr is the error Session.Run returned, if any.
	RunErr error `json:"-"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Records: []catalog.Record{},
		Errors:  []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
