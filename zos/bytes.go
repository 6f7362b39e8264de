package zos

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Octets is an opaque byte sequence represented as a list of byte values when
// serialized to json, i.e [255, 255, 0, 0]
type Octets []byte

// MarshalJSON implements json.Marshaler
func (o Octets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(b)))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Octets) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = nil
		return nil
	}

	var values []int64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	result := make(Octets, 0, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return errors.Errorf("value %d at index %d is not a byte", v, i)
		}
		result = append(result, byte(v))
	}

	*o = result
	return nil
}
