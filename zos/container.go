package zos

import (
	"context"
	"encoding/json"
	"net"
	"slices"
)

// Container reservation data
type Container struct {
	// Flist of the container, an immutable reference to the root filesystem image
	Flist string `json:"flist" validate:"required"`
	// HubURL of the hub serving the flist
	HubURL string `json:"hub_url"`
	// Environment variables available in the container
	Environment map[string]string `json:"environment"`
	// SecretEnvironment variables, values are encrypted by the caller
	SecretEnvironment map[string]Secret `json:"secret_environment"`
	// Entrypoint of the container, if not set the one configured in the flist is used
	Entrypoint string `json:"entrypoint"`
	// Interactive starts the container with coreX instead of the entrypoint
	Interactive bool `json:"interactive"`
	// Volumes mounted in the container
	Volumes []ContainerMount `json:"volumes" validate:"dive"`
	// NetworkConnections of the container
	NetworkConnections []NetworkConnection `json:"network_connections" validate:"dive"`
	// Stats collectors
	Stats []Stats `json:"stats"`
	// Logs sinks
	Logs     []Logs            `json:"logs"`
	Capacity ContainerCapacity `json:"capacity"`
}

// ContainerMount mounts a volume workload inside a container
type ContainerMount struct {
	// VolumeID of a volume workload, may reference a workload that does not exist yet
	VolumeID string `json:"volume_id" validate:"required"`
	// MountPoint is an absolute path inside the container
	MountPoint string `json:"mount_point" validate:"required,abspath"`
}

// NetworkConnection joins a container to a network workload
type NetworkConnection struct {
	NetworkID string `json:"network_id" validate:"required"`
	IPAddress net.IP `json:"ipaddress" validate:"required"`
	// PublicIP6 requests an extra public ipv6 address
	PublicIP6 bool `json:"public_ip6"`
	// YggdrasilIP requests an extra yggdrasil (planetary) address
	YggdrasilIP bool `json:"yggdrasil_ip"`
}

// Stats is a stats collector, data format is defined by the stats type
type Stats struct {
	Type string `json:"stats_type"`
	Data Octets `json:"data"`
}

// MarshalJSON implements json.Marshaler
func (s Stats) MarshalJSON() ([]byte, error) {
	type stats Stats
	v := stats(s)
	if v.Data == nil {
		v.Data = Octets{}
	}
	return json.Marshal(v)
}

// Logs is a logs sink of a container
type Logs struct {
	Type string   `json:"logs_type"`
	Data LogRedis `json:"data"`
}

// LogRedis forwards container output to redis channels
type LogRedis struct {
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
	SecretStdout Secret `json:"secret_stdout"`
	SecretStderr Secret `json:"secret_stderr"`
}

// ContainerCapacity configuration for container cpu, memory and disk
type ContainerCapacity struct {
	CPU      int64    `json:"cpu" validate:"gt=0"`
	Memory   int64    `json:"memory" validate:"gt=0"`
	DiskType DiskType `json:"disk_type"`
	DiskSize int64    `json:"disk_size" validate:"gte=0"`
}

// MarshalJSON implements json.Marshaler
func (c Container) MarshalJSON() ([]byte, error) {
	type container Container
	v := container(c)
	v.Environment = orEmptyMap(v.Environment)
	v.SecretEnvironment = orEmptyMap(v.SecretEnvironment)
	v.Volumes = orEmpty(v.Volumes)
	v.NetworkConnections = orEmpty(v.NetworkConnections)
	v.Stats = orEmpty(v.Stats)
	v.Logs = orEmpty(v.Logs)
	return json.Marshal(v)
}

// Type implements WorkloadData
func (c *Container) Type() WorkloadType { return ContainerType }

// Requirements implements WorkloadData
func (c *Container) Requirements() Capacity {
	capacity := c.Capacity.DiskType.capacity(c.Capacity.DiskSize)
	capacity.CRU = units(c.Capacity.CPU)
	capacity.MRU = units(c.Capacity.Memory)
	return capacity
}

func (c *Container) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionContainer(ctx, wl, c)
}

func (c *Container) redacted() WorkloadData {
	r := *c
	r.SecretEnvironment = redactMap(c.SecretEnvironment)
	r.Volumes = slices.Clone(c.Volumes)
	r.NetworkConnections = slices.Clone(c.NetworkConnections)
	r.Stats = slices.Clone(c.Stats)
	if c.Logs != nil {
		r.Logs = make([]Logs, len(c.Logs))
		for i, l := range c.Logs {
			l.Data.SecretStdout = l.Data.SecretStdout.redacted()
			l.Data.SecretStderr = l.Data.SecretStderr.redacted()
			r.Logs[i] = l
		}
	}
	return &r
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func orEmptyMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}
