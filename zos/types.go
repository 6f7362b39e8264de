// Package zos defines the workload descriptor exchanged between the control plane and node agents
package zos

const (
	// Kilobyte unit multiplier
	Kilobyte int64 = 1024
	// Megabyte unit multiplier
	Megabyte int64 = 1024 * Kilobyte
	// Gigabyte unit multiplier
	Gigabyte int64 = 1024 * Megabyte
	// Terabyte unit multiplier
	Terabyte int64 = 1024 * Gigabyte
)

// WorkloadType is the tag of a WorkloadData variant on the wire
type WorkloadType string

const (
	// VolumeType type
	VolumeType WorkloadType = "Volume"
	// ZDBType type
	ZDBType WorkloadType = "ZDB"
	// ContainerType type
	ContainerType WorkloadType = "Container"
	// K8SType type
	K8SType WorkloadType = "K8S"
	// PublicIPType type
	PublicIPType WorkloadType = "PublicIP"
	// NetworkType type
	NetworkType WorkloadType = "Network"
	// GatewayProxyType type
	GatewayProxyType WorkloadType = "GatewayProxy"
	// GatewayReverseProxyType type
	GatewayReverseProxyType WorkloadType = "GatewayReverseProxy"
	// GatewaySubdomainType type
	GatewaySubdomainType WorkloadType = "GatewaySubdomain"
	// GatewayDelegateType type
	GatewayDelegateType WorkloadType = "GatewayDelegate"
	// Gateway4To6Type type
	Gateway4To6Type WorkloadType = "Gateway4To6"
)

// String implements Stringer interface
func (t WorkloadType) String() string {
	return string(t)
}

// Types returns all known workload types in wire order
func Types() []WorkloadType {
	return []WorkloadType{
		VolumeType,
		ZDBType,
		ContainerType,
		K8SType,
		PublicIPType,
		NetworkType,
		GatewayProxyType,
		GatewayReverseProxyType,
		GatewaySubdomainType,
		GatewayDelegateType,
		Gateway4To6Type,
	}
}

// New creates an empty WorkloadData for the given type
func New(typ WorkloadType) (WorkloadData, bool) {
	switch typ {
	case VolumeType:
		return &Volume{}, true
	case ZDBType:
		return &ZDB{}, true
	case ContainerType:
		return &Container{}, true
	case K8SType:
		return &K8S{}, true
	case PublicIPType:
		return &PublicIP{}, true
	case NetworkType:
		return &Network{}, true
	case GatewayProxyType:
		return &GatewayProxy{}, true
	case GatewayReverseProxyType:
		return &GatewayReverseProxy{}, true
	case GatewaySubdomainType:
		return &GatewaySubdomain{}, true
	case GatewayDelegateType:
		return &GatewayDelegate{}, true
	case Gateway4To6Type:
		return &Gateway4To6{}, true
	}
	return nil, false
}
