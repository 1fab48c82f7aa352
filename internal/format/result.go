package format

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Result is the outcome of Format: either the formatted text or a failure
// message, never both.
type Result struct {
	text string
	err  error
}

// Success wraps formatted text.
func Success(text string) Result {
	return Result{text: text}
}

// Failure wraps a formatting error. A nil error is replaced by a generic one so
// the result still reads as a failure.
func Failure(err error) Result {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result{err: err}
}

// OK reports whether formatting succeeded.
func (r Result) OK() bool { return r.err == nil }

// Text returns the formatted text; empty for failures.
func (r Result) Text() string { return r.text }

// Err returns the failure cause, or nil on success.
func (r Result) Err() error { return r.err }

// Message returns the failure message, or "" on success.
func (r Result) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

type resultJSON struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

// MarshalJSON encodes the result as {"success","code","error"}.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Success: r.OK(),
		Code:    r.text,
		Error:   r.Message(),
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (r *Result) UnmarshalJSON(b []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Success {
		*r = Success(raw.Code)
		return nil
	}
	*r = Failure(errors.New(raw.Error))
	return nil
}
