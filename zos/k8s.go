package zos

import (
	"context"
	"encoding/json"
	"net"
	"slices"
)

// K8SSize is the compute profile behind a kubernetes size id
type K8SSize struct {
	CPU    int64
	Memory int64
	Disk   int64
}

// K8SSizes known kubernetes vm sizes, disks are always ssd
var K8SSizes = map[int64]K8SSize{
	1: {CPU: 1, Memory: 2 * Gigabyte, Disk: 50 * Gigabyte},
	2: {CPU: 2, Memory: 4 * Gigabyte, Disk: 100 * Gigabyte},
}

// K8S joins a kubernetes node to a cluster
type K8S struct {
	// Size of the vm, this defines the amount of vCpu, memory, and the disk size
	Size int64 `json:"size" validate:"gt=0"`
	// ClusterSecret is the encrypted cluster secret
	ClusterSecret Secret `json:"cluster_secret"`
	// NetworkID of the network in which to run the VM
	NetworkID string `json:"network_id"`
	// IPAddress of the VM inside the network
	IPAddress net.IP `json:"ipaddress" validate:"required"`
	// MasterIPs of the kubernetes master nodes. If this list is empty,
	// this node is considered to be a master node.
	MasterIPs []net.IP `json:"master_ips"`
	// SSHKeys added to the VM
	SSHKeys []string `json:"ssh_keys"`
	// PublicIPWID is the workload id of a PublicIP workload, 0 means none
	PublicIPWID int64 `json:"public_ip_wid" validate:"gte=0"`
}

// MarshalJSON implements json.Marshaler
func (k K8S) MarshalJSON() ([]byte, error) {
	type k8s K8S
	v := k8s(k)
	v.MasterIPs = orEmpty(v.MasterIPs)
	v.SSHKeys = orEmpty(v.SSHKeys)
	return json.Marshal(v)
}

// Type implements WorkloadData
func (k *K8S) Type() WorkloadType { return K8SType }

// Requirements implements WorkloadData. Unknown sizes require nothing.
func (k *K8S) Requirements() Capacity {
	size, ok := K8SSizes[k.Size]
	if !ok {
		return Capacity{}
	}
	return Capacity{
		CRU: units(size.CPU),
		MRU: units(size.Memory),
		SRU: units(size.Disk),
	}
}

func (k *K8S) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionK8S(ctx, wl, k)
}

func (k *K8S) redacted() WorkloadData {
	c := *k
	c.ClusterSecret = c.ClusterSecret.redacted()
	c.MasterIPs = slices.Clone(k.MasterIPs)
	c.SSHKeys = slices.Clone(k.SSHKeys)
	return &c
}
