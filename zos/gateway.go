package zos

import (
	"context"
	"encoding/json"
	"slices"
)

// GatewayProxy is a tcp proxy from a domain to a backend address
type GatewayProxy struct {
	Domain  string `json:"domain" validate:"required"`
	Addr    string `json:"addr" validate:"required"`
	Port    uint32 `json:"port" validate:"lte=65535"`
	PortTLS uint32 `json:"port_tls" validate:"lte=65535"`
}

// GatewayReverseProxy is a reverse proxy authenticated with a secret
type GatewayReverseProxy struct {
	Domain string `json:"domain" validate:"required"`
	Secret Secret `json:"secret"`
}

// GatewaySubdomain binds a subdomain to backend addresses
type GatewaySubdomain struct {
	Domain string   `json:"domain" validate:"required"`
	IPs    []string `json:"ips" validate:"dive,ip"`
}

// GatewayDelegate delegates a dns zone to the gateway
type GatewayDelegate struct {
	Domain string `json:"domain" validate:"required"`
}

// Gateway4To6 relays ipv4 traffic to ipv6
type Gateway4To6 struct {
	PublicKey string `json:"public_key" validate:"required,wgkey"`
}

// Type implements WorkloadData
func (g *GatewayProxy) Type() WorkloadType { return GatewayProxyType }

// Requirements implements WorkloadData
func (g *GatewayProxy) Requirements() Capacity { return Capacity{} }

func (g *GatewayProxy) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionGatewayProxy(ctx, wl, g)
}

func (g *GatewayProxy) redacted() WorkloadData {
	c := *g
	return &c
}

// Type implements WorkloadData
func (g *GatewayReverseProxy) Type() WorkloadType { return GatewayReverseProxyType }

// Requirements implements WorkloadData
func (g *GatewayReverseProxy) Requirements() Capacity { return Capacity{} }

func (g *GatewayReverseProxy) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionGatewayReverseProxy(ctx, wl, g)
}

func (g *GatewayReverseProxy) redacted() WorkloadData {
	c := *g
	c.Secret = c.Secret.redacted()
	return &c
}

// MarshalJSON implements json.Marshaler
func (g GatewaySubdomain) MarshalJSON() ([]byte, error) {
	type subdomain GatewaySubdomain
	v := subdomain(g)
	v.IPs = orEmpty(v.IPs)
	return json.Marshal(v)
}

// Type implements WorkloadData
func (g *GatewaySubdomain) Type() WorkloadType { return GatewaySubdomainType }

// Requirements implements WorkloadData
func (g *GatewaySubdomain) Requirements() Capacity { return Capacity{} }

func (g *GatewaySubdomain) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionGatewaySubdomain(ctx, wl, g)
}

func (g *GatewaySubdomain) redacted() WorkloadData {
	c := *g
	c.IPs = slices.Clone(g.IPs)
	return &c
}

// Type implements WorkloadData
func (g *GatewayDelegate) Type() WorkloadType { return GatewayDelegateType }

// Requirements implements WorkloadData
func (g *GatewayDelegate) Requirements() Capacity { return Capacity{} }

func (g *GatewayDelegate) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionGatewayDelegate(ctx, wl, g)
}

func (g *GatewayDelegate) redacted() WorkloadData {
	c := *g
	return &c
}

// Type implements WorkloadData
func (g *Gateway4To6) Type() WorkloadType { return Gateway4To6Type }

// Requirements implements WorkloadData
func (g *Gateway4To6) Requirements() Capacity { return Capacity{} }

func (g *Gateway4To6) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionGateway4To6(ctx, wl, g)
}

func (g *Gateway4To6) redacted() WorkloadData {
	c := *g
	return &c
}
