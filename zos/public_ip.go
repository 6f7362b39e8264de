package zos

import "context"

// PublicIP leases a public address
type PublicIP struct {
	IPAddress IPNet `json:"ipaddress"`
}

// Type implements WorkloadData
func (p *PublicIP) Type() WorkloadType { return PublicIPType }

// Requirements implements WorkloadData
func (p *PublicIP) Requirements() Capacity {
	if p.IPAddress.IsV4() {
		return Capacity{IPV4U: 1}
	}
	return Capacity{}
}

func (p *PublicIP) provision(ctx context.Context, pr Provisioner, wl *Workload) error {
	return pr.ProvisionPublicIP(ctx, wl, p)
}

func (p *PublicIP) redacted() WorkloadData {
	c := *p
	return &c
}
