package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/crm/internal/adapters/repository"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error is a failed API operation. Message and Fields are safe to return to
// clients; Err is only logged.
type Error struct {
	Op      string
	Kind    error
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewKind returns an error of kind for op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind, Message: kind.Error()}
}

// WrapKind attaches kind to err. Bad request causes are shown to the client
// because they describe the client's input.
func WrapKind(op string, kind, err error) error {
	msg := kind.Error()
	if errors.Is(kind, ErrBadRequest) && err != nil {
		msg = err.Error()
	}
	return &Error{Op: op, Kind: kind, Message: msg, Err: err}
}

func notFound(op, entity string) error {
	return &Error{Op: op, Kind: ErrNotFound, Message: entity + " not found"}
}

// storeError classifies a repository failure.
func storeError(op, entity string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Op: op, Kind: ErrNotFound, Message: entity + " not found", Err: err}
	case errors.Is(err, repository.ErrConflict):
		return &Error{Op: op, Kind: ErrConflict, Message: fmt.Sprintf("%s with this mail already exists", entity), Err: err}
	default:
		return &Error{Op: op, Kind: ErrInternal, Message: ErrInternal.Error(), Err: err}
	}
}

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// classify maps an error to its status and response body. Errors that are
// not *Error are treated as internal.
func classify(err error) (int, errorResponse, *Error) {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Op: "api", Kind: ErrInternal, Message: ErrInternal.Error(), Err: err}
	}
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(e.Kind, ErrBadRequest):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(e.Kind, ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(e.Kind, ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(e.Kind, ErrConflict):
		status, code = http.StatusConflict, "conflict"
	}
	msg := e.Message
	if status == http.StatusInternalServerError {
		msg = ErrInternal.Error()
	}
	return status, errorResponse{Code: code, Message: msg, Fields: e.Fields}, e
}
