package zos

import (
	"context"

	"github.com/pkg/errors"
)

// ZdbMode is the mode of a 0-db namespace
type ZdbMode uint8

// ZdbMode enum
const (
	// ZdbModeSeq sequential mode, keys are generated by the database
	ZdbModeSeq ZdbMode = iota
	// ZdbModeUser user mode, keys are provided by the user
	ZdbModeUser
)

// String implements Stringer interface
func (m ZdbMode) String() string {
	switch m {
	case ZdbModeSeq:
		return "ZDBModeSeq"
	case ZdbModeUser:
		return "ZDBModeUser"
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler
func (m ZdbMode) MarshalText() ([]byte, error) {
	switch m {
	case ZdbModeSeq, ZdbModeUser:
		return []byte(m.String()), nil
	}
	return nil, errors.Errorf("invalid zdb mode %d", m)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *ZdbMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ZDBModeSeq":
		*m = ZdbModeSeq
	case "ZDBModeUser":
		*m = ZdbModeUser
	default:
		return errors.Errorf("unknown zdb mode '%s'", text)
	}
	return nil
}

// ZDB namespace creation info
type ZDB struct {
	Size     int64    `json:"size" validate:"gt=0"`
	Mode     ZdbMode  `json:"mode"`
	Password Secret   `json:"password"`
	DiskType DiskType `json:"disk_type"`
	// Public exposes the namespace on a public listener
	Public bool `json:"public"`
}

// Type implements WorkloadData
func (z *ZDB) Type() WorkloadType { return ZDBType }

// Requirements implements WorkloadData
func (z *ZDB) Requirements() Capacity {
	return z.DiskType.capacity(z.Size)
}

func (z *ZDB) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionZDB(ctx, wl, z)
}

func (z *ZDB) redacted() WorkloadData {
	c := *z
	c.Password = c.Password.redacted()
	return &c
}
