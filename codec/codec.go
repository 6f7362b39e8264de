// Package codec reads and writes workload descriptors
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
	"gopkg.in/yaml.v3"
)

// Encode encodes a workload to its json wire format
func Encode(wl zos.Workload) ([]byte, error) {
	return json.Marshal(wl)
}

// Decode decodes a workload from its json wire format, errors are *zos.DecodeError
func Decode(data []byte) (zos.Workload, error) {
	var wl zos.Workload
	if err := wl.UnmarshalJSON(data); err != nil {
		return zos.Workload{}, err
	}
	return wl, nil
}

// EncodeYAML encodes a workload as a yaml document with the same field names
// and tags as the json wire format
func EncodeYAML(wl zos.Workload) ([]byte, error) {
	data, err := Encode(wl)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to convert workload to yaml")
	}

	return yaml.Marshal(numbers(doc))
}

// DecodeYAML decodes a yaml document. The document goes through the json
// decoder so unknown fields and tags are handled the same way.
func DecodeYAML(data []byte) (zos.Workload, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zos.Workload{}, &zos.DecodeError{Kind: zos.ErrMalformed, Err: err}
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return zos.Workload{}, &zos.DecodeError{Kind: zos.ErrMalformed, Err: err}
	}

	return Decode(content)
}

// Parse decodes a workload in the given format, json, yaml or yml
func Parse(content []byte, format string) (zos.Workload, error) {
	switch strings.ToLower(format) {
	case "json":
		return Decode(content)
	case "yaml", "yml":
		return DecodeYAML(content)
	}
	return zos.Workload{}, fmt.Errorf("invalid workload file format '%s'", format)
}

// ReadFile reads a workload file and returns its content and format
func ReadFile(path string) ([]byte, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	return content, strings.TrimPrefix(filepath.Ext(path), "."), nil
}

// Load reads and decodes a workload file
func Load(path string) (zos.Workload, error) {
	content, format, err := ReadFile(path)
	if err != nil {
		return zos.Workload{}, err
	}

	wl, err := Parse(content, format)
	if err != nil {
		return zos.Workload{}, errors.Wrapf(err, "failed to parse '%s'", path)
	}
	return wl, nil
}

// Export writes an indented json representation of the workload with every
// secret redacted, it is not meant to be decoded back
func Export(w io.Writer, wl zos.Workload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(wl.Redacted())
}

// numbers converts json numbers so yaml writes them as plain scalars
func numbers(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		for k, e := range v {
			v[k] = numbers(e)
		}
		return v
	case []interface{}:
		for i, e := range v {
			v[i] = numbers(e)
		}
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	}
	return v
}
