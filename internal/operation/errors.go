package operation

import (
	"fmt"
	"net/http"
)

// Class is the error class of a failed check. Each class maps to one HTTP
// status code.
type Class int

const (
	ClassValidation Class = iota + 1
	ClassAuthorization
	ClassNotFound
	ClassShapeMismatch
	ClassDataAccess
)

// Status returns the HTTP status code for the class.
func (c Class) Status() int {
	switch c {
	case ClassValidation:
		return http.StatusBadRequest
	case ClassAuthorization:
		return http.StatusForbidden
	case ClassNotFound:
		return http.StatusNotFound
	case ClassShapeMismatch:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassAuthorization:
		return "authorization"
	case ClassNotFound:
		return "not_found"
	case ClassShapeMismatch:
		return "shape_mismatch"
	case ClassDataAccess:
		return "data_access"
	default:
		return "unknown"
	}
}

// ErrorList collects the human-readable problems found while handling one
// request. It is append-only and lives for one invocation.
//
// The status follows the first class added, except that an authorization
// failure always wins.
type ErrorList struct {
	msgs   []string
	status int
}

// Add appends msg under the given class.
func (l *ErrorList) Add(class Class, msg string) {
	l.msgs = append(l.msgs, msg)
	if class == ClassAuthorization || l.status == 0 {
		l.status = class.Status()
	}
}

// Empty reports whether no problem has been recorded.
func (l *ErrorList) Empty() bool {
	return len(l.msgs) == 0
}

// Status returns the HTTP status implied by the recorded problems, or 200
// when there are none.
func (l *ErrorList) Status() int {
	if l.status == 0 {
		return http.StatusOK
	}
	return l.status
}

// Messages returns a copy of the recorded messages, never nil.
func (l *ErrorList) Messages() []string {
	out := make([]string, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Error is returned by an Execute step to fail with a specific class and a
// message that is safe to show the caller.
type Error struct {
	Class   Class
	Message string
}

func (e *Error) Error() string {
	return e.Class.String() + ": " + e.Message
}

// Errorf builds an *Error.
func Errorf(class Class, format string, args ...any) *Error {
	return &Error{Class: class, Message: fmt.Sprintf(format, args...)}
}

// RedirectError lets an Execute step answer with a redirect, e.g. when the
// identity being created appeared after Precheck ran.
type RedirectError struct {
	Redirect Redirect
}

func (e *RedirectError) Error() string {
	return "redirect to " + e.Redirect.Location
}
