package provision

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

// LogProvisioner only logs the workloads it receives, it is used when no
// node agent is attached
type LogProvisioner struct {
	logger zerolog.Logger
}

var _ Provisioner = (*LogProvisioner)(nil)

// NewLogProvisioner creates a provisioner logging on the global logger
func NewLogProvisioner() *LogProvisioner {
	return &LogProvisioner{logger: log.Logger}
}

func (p *LogProvisioner) log(wl *zos.Workload, kind string) error {
	event := p.logger.Info().Object("workload", wl)
	if req := wl.Requirements(); !req.Zero() {
		event = event.Interface("requirements", req)
	}
	event.Msgf("provisioning %s", kind)
	return nil
}

// ProvisionVolume implements Provisioner
func (p *LogProvisioner) ProvisionVolume(_ context.Context, wl *zos.Workload, data *zos.Volume) error {
	return p.log(wl, "volume of "+data.Kind.String())
}

// ProvisionZDB implements Provisioner
func (p *LogProvisioner) ProvisionZDB(_ context.Context, wl *zos.Workload, data *zos.ZDB) error {
	return p.log(wl, "zdb namespace in "+data.Mode.String())
}

// ProvisionContainer implements Provisioner
func (p *LogProvisioner) ProvisionContainer(_ context.Context, wl *zos.Workload, data *zos.Container) error {
	return p.log(wl, "container "+data.Flist)
}

// ProvisionK8S implements Provisioner
func (p *LogProvisioner) ProvisionK8S(_ context.Context, wl *zos.Workload, _ *zos.K8S) error {
	return p.log(wl, "kubernetes vm")
}

// ProvisionPublicIP implements Provisioner
func (p *LogProvisioner) ProvisionPublicIP(_ context.Context, wl *zos.Workload, data *zos.PublicIP) error {
	return p.log(wl, "public ip "+data.IPAddress.String())
}

// ProvisionNetwork implements Provisioner
func (p *LogProvisioner) ProvisionNetwork(_ context.Context, wl *zos.Workload, data *zos.Network) error {
	return p.log(wl, "network "+data.Name)
}

// ProvisionGatewayProxy implements Provisioner
func (p *LogProvisioner) ProvisionGatewayProxy(_ context.Context, wl *zos.Workload, data *zos.GatewayProxy) error {
	return p.log(wl, "proxy for "+data.Domain)
}

// ProvisionGatewayReverseProxy implements Provisioner
func (p *LogProvisioner) ProvisionGatewayReverseProxy(_ context.Context, wl *zos.Workload, data *zos.GatewayReverseProxy) error {
	return p.log(wl, "reverse proxy for "+data.Domain)
}

// ProvisionGatewaySubdomain implements Provisioner
func (p *LogProvisioner) ProvisionGatewaySubdomain(_ context.Context, wl *zos.Workload, data *zos.GatewaySubdomain) error {
	return p.log(wl, "subdomain "+data.Domain)
}

// ProvisionGatewayDelegate implements Provisioner
func (p *LogProvisioner) ProvisionGatewayDelegate(_ context.Context, wl *zos.Workload, data *zos.GatewayDelegate) error {
	return p.log(wl, "delegated domain "+data.Domain)
}

// ProvisionGateway4To6 implements Provisioner
func (p *LogProvisioner) ProvisionGateway4To6(_ context.Context, wl *zos.Workload, _ *zos.Gateway4To6) error {
	return p.log(wl, "4to6 gateway")
}
