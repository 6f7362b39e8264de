package zos

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoData is returned when a workload carries no payload
var ErrNoData = errors.New("workload has no data")

// WorkloadData is the payload of a workload. The set of implementations is
// closed: only the types of this package can implement it.
type WorkloadData interface {
	// Type returns the wire tag of the payload
	Type() WorkloadType
	// Requirements describes the resources needed to provision the payload
	Requirements() Capacity

	provision(ctx context.Context, p Provisioner, wl *Workload) error
	redacted() WorkloadData
}

// Provisioner handles every workload kind. Adding a kind adds a method here,
// so every provisioner stops compiling until it handles the new kind.
type Provisioner interface {
	ProvisionVolume(ctx context.Context, wl *Workload, data *Volume) error
	ProvisionZDB(ctx context.Context, wl *Workload, data *ZDB) error
	ProvisionContainer(ctx context.Context, wl *Workload, data *Container) error
	ProvisionK8S(ctx context.Context, wl *Workload, data *K8S) error
	ProvisionPublicIP(ctx context.Context, wl *Workload, data *PublicIP) error
	ProvisionNetwork(ctx context.Context, wl *Workload, data *Network) error
	ProvisionGatewayProxy(ctx context.Context, wl *Workload, data *GatewayProxy) error
	ProvisionGatewayReverseProxy(ctx context.Context, wl *Workload, data *GatewayReverseProxy) error
	ProvisionGatewaySubdomain(ctx context.Context, wl *Workload, data *GatewaySubdomain) error
	ProvisionGatewayDelegate(ctx context.Context, wl *Workload, data *GatewayDelegate) error
	ProvisionGateway4To6(ctx context.Context, wl *Workload, data *Gateway4To6) error
}

// Dispatch routes the workload to the provisioner method of its kind
func Dispatch(ctx context.Context, p Provisioner, wl *Workload) error {
	if wl.Data == nil {
		return ErrNoData
	}
	return wl.Data.provision(ctx, p, wl)
}
