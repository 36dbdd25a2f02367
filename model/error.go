package model

import "fmt"

// ErrorType distinguishes terminal extraction errors.
type ErrorType int

const (
	ErrorParse     ErrorType = iota + 1 // markup is not well-formed
	ErrorStructure                      // no process or no process with elements
)

func (v ErrorType) String() string {
	switch v {
	case ErrorParse:
		return "PARSE"
	case ErrorStructure:
		return "STRUCTURE"
	default:
		return ""
	}
}

// Error is returned by [New], when no result can be extracted.
type Error struct {
	Type   ErrorType
	Detail string
	Cause  error
}

func (e Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Cause)
	}
	return e.Detail
}

func (e Error) Unwrap() error {
	return e.Cause
}

func newParseError(cause error, format string, a ...any) Error {
	return Error{
		Type:   ErrorParse,
		Detail: fmt.Sprintf(format, a...),
		Cause:  cause,
	}
}
