package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/validation"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

// Response interface
type Response interface {
	Status() int
	Err() error

	// header getter
	Header() http.Header
	// header setter
	WithHeader(k, v string) Response
}

// Handler interface
type Handler func(r *http.Request, w http.ResponseWriter) (interface{}, Response)

// ErrorBody is the body of every failed request
type ErrorBody struct {
	Error string `json:"error"`
	// Kind and Field are set for workloads that could not be decoded
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
	// Violations are set for workloads that are not valid
	Violations []*validation.Violation `json:"violations,omitempty"`
}

// WrapFunc is a helper wrapper to make implementing handlers easier
func WrapFunc(a Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			_, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
		}()

		object, result := a(r, w)

		w.Header().Set("Content-Type", "application/json")

		if result == nil {
			w.WriteHeader(http.StatusOK)
		} else {
			h := result.Header()
			for k := range h {
				for _, v := range h.Values(k) {
					w.Header().Add(k, v)
				}
			}

			w.WriteHeader(result.Status())
			if err := result.Err(); err != nil {
				object = errorBody(err)
			}
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(object); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode return object")
		}
	}
}

func errorBody(err error) ErrorBody {
	body := ErrorBody{Error: err.Error()}

	var decodeErr *zos.DecodeError
	if errors.As(err, &decodeErr) {
		body.Kind = decodeKind(decodeErr)
		body.Field = decodeErr.Field
	}

	body.Violations = validation.Violations(err)
	return body
}

func decodeKind(err *zos.DecodeError) string {
	switch err.Kind {
	case zos.ErrMalformed:
		return "malformed"
	case zos.ErrUnknownVariant:
		return "unknown_variant"
	case zos.ErrInvalidPayload:
		return "invalid_payload"
	}
	return "unknown"
}

type genericResponse struct {
	status int
	err    error
	header http.Header
}

func (r genericResponse) Status() int {
	return r.status
}

func (r genericResponse) Err() error {
	return r.err
}

func (r genericResponse) Header() http.Header {
	if r.header == nil {
		r.header = http.Header{}
	}
	return r.header
}

func (r genericResponse) WithHeader(k, v string) Response {
	if r.header == nil {
		r.header = http.Header{}
	}

	r.header.Add(k, v)
	return r
}

// Ok return a ok response
func Ok() Response {
	return genericResponse{status: http.StatusOK}
}

// Status returns a response with the given status and no error, the object
// returned by the handler is the body
func Status(code int) Response {
	return genericResponse{status: code}
}

// genError generic error response
func genError(err error, code int) Response {
	if err == nil {
		err = fmt.Errorf("no message")
	}

	return genericResponse{status: code, err: err}
}

// BadRequest result
func BadRequest(err error) Response {
	return genError(err, http.StatusBadRequest)
}

// UnprocessableEntity result
func UnprocessableEntity(err error) Response {
	return genError(err, http.StatusUnprocessableEntity)
}

// InternalServerError result
func InternalServerError(err error) Response {
	return genError(err, http.StatusInternalServerError)
}

// NotFound response
func NotFound(err error) Response {
	return genError(err, http.StatusNotFound)
}
