package zos

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Workload is the envelope of a deployable unit. (NodeID, WorkloadID) is
// the identity of the workload and Version must increase with every change
// to the same identity.
type Workload struct {
	// WorkloadID is unique within the workloads of a node
	WorkloadID int64 `json:"workload_id" validate:"gte=0"`
	// NodeID of the node that must provision the workload
	NodeID string `json:"node_id" validate:"required"`
	// CustomerID is the tenant owning the workload
	CustomerID int64 `json:"customer_id"`
	// Version must be incremented with every update of the workload
	Version int64 `json:"version" validate:"gte=0"`
	// Reference links the workload to the originating request or contract
	Reference string `json:"reference"`
	// PoolID of the capacity pool the workload draws from
	PoolID int64 `json:"pool_id"`
	// Epoch is the logical time of the last state change
	Epoch int64 `json:"epoch"`
	// Description is human readable description of the workload
	Description string `json:"description"`
	// Metadata is opaque user data, passed through untouched
	Metadata string `json:"metadata"`
	// Data is the payload, exactly one variant
	Data WorkloadData `json:"data" validate:"-"`
}

type envelope struct {
	WorkloadID  int64  `json:"workload_id"`
	NodeID      string `json:"node_id"`
	CustomerID  int64  `json:"customer_id"`
	Version     int64  `json:"version"`
	Reference   string `json:"reference"`
	PoolID      int64  `json:"pool_id"`
	Epoch       int64  `json:"epoch"`
	Description string `json:"description"`
	Metadata    string `json:"metadata"`
}

var envelopeFields = jsonFields(reflect.TypeOf(envelope{}))

func (w *Workload) envelope() envelope {
	return envelope{
		WorkloadID:  w.WorkloadID,
		NodeID:      w.NodeID,
		CustomerID:  w.CustomerID,
		Version:     w.Version,
		Reference:   w.Reference,
		PoolID:      w.PoolID,
		Epoch:       w.Epoch,
		Description: w.Description,
		Metadata:    w.Metadata,
	}
}

// Type returns the type of the workload payload, empty if there is none
func (w *Workload) Type() WorkloadType {
	if w.Data == nil {
		return ""
	}
	return w.Data.Type()
}

// Requirements returns the capacity needed by the workload payload
func (w *Workload) Requirements() Capacity {
	if w.Data == nil {
		return Capacity{}
	}
	return w.Data.Requirements()
}

// Redacted returns a copy of the workload with every secret value replaced
func (w Workload) Redacted() Workload {
	if w.Data != nil {
		w.Data = w.Data.redacted()
	}
	return w
}

// MarshalJSON implements json.Marshaler. The payload is tagged explicitly
// with its type: "data": {"Volume": {...}}
func (w Workload) MarshalJSON() ([]byte, error) {
	if w.Data == nil {
		return nil, ErrNoData
	}

	return json.Marshal(struct {
		envelope
		Data map[WorkloadType]WorkloadData `json:"data"`
	}{
		envelope: w.envelope(),
		Data:     map[WorkloadType]WorkloadData{w.Data.Type(): w.Data},
	})
}

// UnmarshalJSON implements json.Unmarshaler. It fails with a *DecodeError.
// Every field must be present exactly once with its exact name, unknown
// fields and null values are rejected at every level.
func (w *Workload) UnmarshalJSON(data []byte) error {
	keys, values, err := members(data)
	if err != nil {
		return envelopeError(err)
	}

	types := make(map[string]reflect.Type, len(envelopeFields))
	for _, f := range envelopeFields {
		types[f.name] = f.typ
	}

	for _, key := range keys {
		if key == "data" {
			continue
		}

		typ, ok := types[key]
		if !ok {
			return malformed(key, ErrUnknownField)
		}

		if err := checkShape(values[key], typ, key); err != nil {
			return envelopeError(err)
		}
	}

	raw, ok := values["data"]
	if !ok {
		return malformed("data", ErrMissingField)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return malformed("data", ErrNullField)
	}

	tag, content, err := splitVariant(raw)
	if err != nil {
		return malformed("data", err)
	}

	typ := WorkloadType(tag)
	payload, ok := New(typ)
	if !ok {
		return &DecodeError{Kind: ErrUnknownVariant, Field: "data", Err: errors.Errorf("unknown type '%s'", tag)}
	}

	if bytes.Equal(bytes.TrimSpace(content), []byte("null")) {
		return invalidPayload("data."+tag, ErrNullField)
	}

	if err := checkShape(content, reflect.TypeOf(payload).Elem(), ""); err != nil {
		return payloadError(typ, err)
	}

	if err := decodeStrict(content, payload); err != nil {
		return payloadError(typ, err)
	}

	// missing envelope fields come after payload errors
	for _, f := range envelopeFields {
		if _, ok := values[f.name]; !ok {
			return malformed(f.name, ErrMissingField)
		}
	}

	var v struct {
		envelope
		Data json.RawMessage `json:"data"`
	}
	if err := decodeStrict(data, &v); err != nil {
		return envelopeError(err)
	}

	e := v.envelope
	*w = Workload{
		WorkloadID:  e.WorkloadID,
		NodeID:      e.NodeID,
		CustomerID:  e.CustomerID,
		Version:     e.Version,
		Reference:   e.Reference,
		PoolID:      e.PoolID,
		Epoch:       e.Epoch,
		Description: e.Description,
		Metadata:    e.Metadata,
		Data:        payload,
	}
	return nil
}

// MarshalZerologObject logs the workload identity and its redacted payload
func (w Workload) MarshalZerologObject(e *zerolog.Event) {
	e.Str("node_id", w.NodeID).
		Int64("workload_id", w.WorkloadID).
		Int64("version", w.Version).
		Str("type", w.Type().String())

	if w.Data == nil {
		return
	}

	data, err := json.Marshal(w.Data.redacted())
	if err != nil {
		return
	}
	e.RawJSON("data", data)
}

// decodeStrict decodes exactly one json value rejecting unknown fields
func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}

	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after workload")
	}
	return nil
}

// splitVariant returns the single tag and content of the data object
func splitVariant(raw []byte) (string, json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return "", nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", nil, errors.New("data must be an object holding one variant")
	}

	var tags []string
	var content json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return "", nil, errors.Errorf("unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return "", nil, err
		}

		tags = append(tags, key)
		content = value
	}

	if len(tags) != 1 {
		return "", nil, errors.Errorf("data must hold exactly one variant, found %d %v", len(tags), tags)
	}

	return tags[0], content, nil
}

func envelopeError(err error) *DecodeError {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return malformed(fieldErr.Field, fieldErr.Err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return malformed(typeErr.Field, err)
	}
	return malformed("", err)
}
