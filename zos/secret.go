package zos

import (
	"fmt"
	"io"
	"strconv"
)

// Redacted replaces secret values in every human readable representation
const Redacted = "[redacted]"

// Secret is a string that is encoded as is on the wire but never rendered by
// fmt, loggers or exports. Values are usually encrypted by the caller already.
type Secret string

// String implements Stringer interface
func (s Secret) String() string {
	if s.Empty() {
		return ""
	}
	return Redacted
}

// GoString implements fmt.GoStringer
func (s Secret) GoString() string {
	return strconv.Quote(s.String())
}

// Format implements fmt.Formatter so no verb can print the value
func (s Secret) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		_, _ = io.WriteString(f, strconv.Quote(s.String()))
	case 'v':
		if f.Flag('#') {
			_, _ = io.WriteString(f, s.GoString())
			return
		}
		_, _ = io.WriteString(f, s.String())
	default:
		_, _ = io.WriteString(f, s.String())
	}
}

// Empty checks if the secret has no value
func (s Secret) Empty() bool {
	return len(s) == 0
}

func (s Secret) redacted() Secret {
	if s.Empty() {
		return s
	}
	return Redacted
}

func redactMap(m map[string]Secret) map[string]Secret {
	if m == nil {
		return nil
	}
	res := make(map[string]Secret, len(m))
	for k, v := range m {
		res[k] = v.redacted()
	}
	return res
}
