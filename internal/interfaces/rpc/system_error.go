package rpc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// SystemError error no clasificado, con el tipo Go de la causa raíz y el backtrace.
type SystemError struct {
	cause error
	kind  string
	stack []string
}

func (e *SystemError) Error() string { return e.cause.Error() }
func (e *SystemError) Unwrap() error { return e.cause }

// Exception tipo Go de la causa raíz (ej. "*pgconn.PgError").
func (e *SystemError) Exception() string { return e.kind }

// Backtrace una línea por frame.
func (e *SystemError) Backtrace() []string { return e.stack }

// newSystemError usa el stack más profundo que ya traiga err; si no trae ninguno lo
// captura aquí.
func newSystemError(err error) *SystemError {
	var st errors.StackTrace
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if t, ok := cur.(stackTracer); ok {
			st = t.StackTrace()
		}
	}
	if st == nil {
		st = errors.WithStack(err).(stackTracer).StackTrace()
	}
	lines := make([]string, 0, len(st))
	for _, f := range st {
		lines = append(lines, fmt.Sprintf("%n (%s:%d)", f, f, f))
	}
	return &SystemError{cause: err, kind: fmt.Sprintf("%T", rootCause(err)), stack: lines}
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func splitStack(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
