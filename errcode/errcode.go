package errcode

// Code is a stable error identifier. It is a string newtype, comparable,
// allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Configuration-time failures.
	InvalidMode       Code = "invalid_mode"
	AlreadyConfigured Code = "already_configured"

	// Steady-state operation failures.
	WrongMode Code = "wrong_mode"

	// A backend primitive reported an error; the opaque platform cause is
	// reachable through Unwrap.
	PlatformFailure Code = "platform_failure"

	UnknownPin     Code = "unknown_pin"
	PinInUse       Code = "pin_in_use"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"

	Error Code = "error" // generic fallback
)

// E wraps a Code with the failed operation and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
