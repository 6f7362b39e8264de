package zos

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMalformed is returned when the byte stream is not a workload envelope
	ErrMalformed = errors.New("malformed workload")
	// ErrUnknownVariant is returned when the data tag is not a known workload type
	ErrUnknownVariant = errors.New("unknown workload variant")
	// ErrInvalidPayload is returned when a known variant payload does not fit its shape
	ErrInvalidPayload = errors.New("invalid workload payload")
)

// DecodeError describes why a workload could not be decoded. Kind is one of
// ErrMalformed, ErrUnknownVariant or ErrInvalidPayload.
type DecodeError struct {
	Kind  error
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Field != "" {
		fmt.Fprintf(&b, " (field '%s')", e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the decode error kind
func (e *DecodeError) Is(target error) bool {
	return target == e.Kind
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func malformed(field string, err error) *DecodeError {
	return &DecodeError{Kind: ErrMalformed, Field: field, Err: err}
}

func invalidPayload(field string, err error) *DecodeError {
	return &DecodeError{Kind: ErrInvalidPayload, Field: field, Err: err}
}

// payloadError classifies an error returned by the json decoder while
// decoding the content of a known variant
func payloadError(typ WorkloadType, err error) *DecodeError {
	field := "data." + typ.String()

	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return invalidPayload(joinPath(field, fieldErr.Field), fieldErr.Err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return invalidPayload(joinPath(field, typeErr.Field), err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return malformed(field, err)
	}

	return invalidPayload(field, err)
}

// FieldError is returned by value types that reject their own content while being decoded
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
