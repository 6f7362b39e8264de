package zos

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrMissingField is returned when a field of the wire format is absent
	ErrMissingField = errors.New("missing field")
	// ErrUnknownField is returned for keys that are not part of the wire format,
	// keys are case sensitive
	ErrUnknownField = errors.New("unknown field")
	// ErrDuplicateField is returned when an object holds the same key twice
	ErrDuplicateField = errors.New("duplicate field")
	// ErrNullField is returned for fields set to null
	ErrNullField = errors.New("field is null")
)

var (
	jsonUnmarshaler = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

	fieldsCache sync.Map
)

type jsonField struct {
	name string
	typ  reflect.Type
}

// jsonFields lists the wire fields of a struct type in declaration order,
// embedded structs are flattened
func jsonFields(t reflect.Type) []jsonField {
	if cached, ok := fieldsCache.Load(t); ok {
		return cached.([]jsonField)
	}

	var fields []jsonField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}

		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			fields = append(fields, jsonFields(f.Type)...)
			continue
		}

		if !f.IsExported() {
			continue
		}

		if name == "" {
			name = f.Name
		}
		fields = append(fields, jsonField{name: name, typ: f.Type})
	}

	fieldsCache.Store(t, fields)
	return fields
}

// members splits a json object into its members in document order. Keys
// must be unique and nothing may follow the object.
func members(raw []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.Errorf("expected an object, found %v", tok)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, nil, errors.Errorf("unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		if _, ok := values[key]; ok {
			return nil, nil, &FieldError{Field: key, Err: ErrDuplicateField}
		}

		keys = append(keys, key)
		values[key] = value
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, errors.New("unexpected data after object")
	}

	return keys, values, nil
}

// checkShape verifies that raw holds every field of t exactly once, spelled
// as on the wire, and that every leaf decodes into its type. Errors are
// *FieldError located at the offending field under path.
func checkShape(raw json.RawMessage, t reflect.Type, path string) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &FieldError{Field: path, Err: ErrNullField}
	}

	ptr := reflect.PointerTo(t)
	switch {
	case t.Kind() == reflect.Pointer:
		return checkShape(raw, t.Elem(), path)

	case t.Kind() == reflect.Struct:
		if err := checkObject(raw, t, path); err != nil {
			return err
		}
		// value types may check their own content, e.g. mask family of IPNet
		if ptr.Implements(jsonUnmarshaler) {
			return unmarshalAt(raw, t, path)
		}
		return nil

	case ptr.Implements(jsonUnmarshaler), ptr.Implements(textUnmarshaler):
		return unmarshalAt(raw, t, path)

	case t.Kind() == reflect.Slice:
		return checkArray(raw, t, path)

	case t.Kind() == reflect.Map:
		return checkMap(raw, t, path)
	}

	return unmarshalAt(raw, t, path)
}

func checkObject(raw json.RawMessage, t reflect.Type, path string) error {
	keys, values, err := members(raw)
	if err != nil {
		return locate(path, err)
	}

	fields := jsonFields(t)
	types := make(map[string]reflect.Type, len(fields))
	for _, f := range fields {
		types[f.name] = f.typ
	}

	for _, key := range keys {
		typ, ok := types[key]
		if !ok {
			return &FieldError{Field: joinPath(path, key), Err: ErrUnknownField}
		}

		if err := checkShape(values[key], typ, joinPath(path, key)); err != nil {
			return err
		}
	}

	for _, f := range fields {
		if _, ok := values[f.name]; !ok {
			return &FieldError{Field: joinPath(path, f.name), Err: ErrMissingField}
		}
	}

	return nil
}

func checkArray(raw json.RawMessage, t reflect.Type, path string) error {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return locate(path, err)
	}

	for i, item := range items {
		if err := checkShape(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func checkMap(raw json.RawMessage, t reflect.Type, path string) error {
	keys, values, err := members(raw)
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return &FieldError{Field: fmt.Sprintf("%s[%s]", path, fieldErr.Field), Err: fieldErr.Err}
	} else if err != nil {
		return locate(path, err)
	}

	for _, key := range keys {
		if err := checkShape(values[key], t.Elem(), fmt.Sprintf("%s[%s]", path, key)); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalAt(raw json.RawMessage, t reflect.Type, path string) error {
	if err := json.Unmarshal(raw, reflect.New(t).Interface()); err != nil {
		return locate(path, err)
	}
	return nil
}

// locate places err at path, field errors are relative to path
func locate(path string, err error) *FieldError {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return &FieldError{Field: joinPath(path, fieldErr.Field), Err: fieldErr.Err}
	}
	return &FieldError{Field: path, Err: err}
}

func joinPath(path, name string) string {
	switch {
	case path == "":
		return name
	case name == "":
		return path
	case strings.HasPrefix(name, "["):
		return path + name
	}
	return path + "." + name
}
