package trivia

import (
	"errors"
	"fmt"
)

// Provider response codes.
const (
	CodeSuccess       = 0
	CodeNoResults     = 1
	CodeInvalidParam  = 2
	CodeTokenNotFound = 3
	CodeTokenEmpty    = 4
	CodeRateLimit     = 5
)

// NetworkError indicates a transport-level failure talking to the provider:
// DNS, connection reset, timeout or a non-2xx HTTP status.
type NetworkError struct {
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("trivia provider returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("trivia provider unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProviderError indicates a well-formed response whose response_code
// signals failure for the requested filters.
type ProviderError struct {
	Code int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("trivia provider response code %d: %s", e.Code, codeText(e.Code))
}

func codeText(code int) string {
	switch code {
	case CodeNoResults:
		return "no results"
	case CodeInvalidParam:
		return "invalid parameter"
	case CodeTokenNotFound:
		return "session token not found"
	case CodeTokenEmpty:
		return "session token exhausted"
	case CodeRateLimit:
		return "rate limited"
	}
	return "unknown"
}

// MalformedDataError indicates a response body or record that failed
// validation. The whole batch is rejected.
type MalformedDataError struct {
	Index int // record index, -1 for the envelope
	Err   error
}

func (e *MalformedDataError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed provider response: %v", e.Err)
	}
	return fmt.Sprintf("malformed question record %d: %v", e.Index, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// LoadError is returned by Loader.Load when the cascade aborts.
type LoadError struct {
	Attempt Request
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questions (difficulty %s): %v", e.Attempt.Difficulty, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsProvider reports whether err is, or wraps, a ProviderError.
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsMalformed reports whether err is, or wraps, a MalformedDataError.
func IsMalformed(err error) bool {
	var me *MalformedDataError
	return errors.As(err, &me)
}
