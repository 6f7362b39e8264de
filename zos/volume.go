package zos

import (
	"context"

	"github.com/pkg/errors"
)

// DiskType is the type of disk backing a storage workload
type DiskType uint8

// DiskType enum
const (
	// SSDDiskType solid state disk
	SSDDiskType DiskType = iota
	// HDDDiskType hard disk
	HDDDiskType
)

// String implements Stringer interface
func (d DiskType) String() string {
	switch d {
	case SSDDiskType:
		return "SSD"
	case HDDDiskType:
		return "HDD"
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler
func (d DiskType) MarshalText() ([]byte, error) {
	switch d {
	case SSDDiskType, HDDDiskType:
		return []byte(d.String()), nil
	}
	return nil, errors.Errorf("invalid disk type %d", d)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *DiskType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SSD":
		*d = SSDDiskType
	case "HDD":
		*d = HDDDiskType
	default:
		return errors.Errorf("unknown disk type '%s'", text)
	}
	return nil
}

// capacity returns the storage units of a disk of the given size
func (d DiskType) capacity(size int64) Capacity {
	if d == HDDDiskType {
		return Capacity{HRU: units(size)}
	}
	return Capacity{SRU: units(size)}
}

// Volume is a block storage volume
type Volume struct {
	// Size of the volume in bytes
	Size int64    `json:"size" validate:"gt=0"`
	Kind DiskType `json:"kind"`
}

// Type implements WorkloadData
func (v *Volume) Type() WorkloadType { return VolumeType }

// Requirements implements WorkloadData
func (v *Volume) Requirements() Capacity {
	return v.Kind.capacity(v.Size)
}

func (v *Volume) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionVolume(ctx, wl, v)
}

func (v *Volume) redacted() WorkloadData {
	c := *v
	return &c
}
