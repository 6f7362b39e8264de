package zos

import (
	"context"
	"encoding/json"
	"slices"
)

// Network is a private wireguard overlay network. It usually spans multiple
// nodes, every participating node has an entry in NetworkResources with its
// own keys, subnet and the list of peers it connects to.
type Network struct {
	Name string `json:"name" validate:"required"`
	// WorkloadID of the network this workload belongs to
	WorkloadID int64 `json:"workload_id"`
	// IPRange of the whole network, for example 10.1.0.0/16
	IPRange          IPNet              `json:"iprange"`
	NetworkResources []NetworkResources `json:"network_resources" validate:"dive"`
	// FarmerTID is the twin id of the resource provider
	FarmerTID int64 `json:"farmer_tid"`
}

// NetworkResources is the participation of one node in a network
type NetworkResources struct {
	NodeID string `json:"node_id" validate:"required"`
	// WireguardPrivateKeyEncrypted is the private key of this node, it has to be
	// generated by the user because other peers need its public key upfront
	WireguardPrivateKeyEncrypted Secret `json:"wireguard_private_key_encrypted"`
	WireguardPublicKey           string `json:"wireguard_public_key" validate:"wgkey"`
	WireguardListenPort          int64  `json:"wireguard_listen_port" validate:"gte=0,lte=65535"`
	// IPRange is the subnet of this node, must be part of the network ip range
	IPRange IPNet           `json:"iprange"`
	Peers   []WireguardPeer `json:"peers" validate:"dive"`
}

// WireguardPeer is the description of a peer of a NetworkResources
type WireguardPeer struct {
	PublicKey string `json:"public_key" validate:"wgkey"`
	// Endpoint of the peer as host:port, empty if the peer is not reachable
	Endpoint string `json:"endpoint" validate:"omitempty,endpoint"`
	// IPRange is the subnet of the peer
	IPRange IPNet `json:"iprange"`
	// AllowedIPRange routed through the tunnel
	AllowedIPRange []IPNet `json:"allowed_ip_range" validate:"min=1,dive"`
}

// MarshalJSON implements json.Marshaler
func (n Network) MarshalJSON() ([]byte, error) {
	type network Network
	v := network(n)
	v.NetworkResources = orEmpty(v.NetworkResources)
	return json.Marshal(v)
}

// MarshalJSON implements json.Marshaler
func (r NetworkResources) MarshalJSON() ([]byte, error) {
	type resources NetworkResources
	v := resources(r)
	v.Peers = orEmpty(v.Peers)
	return json.Marshal(v)
}

// MarshalJSON implements json.Marshaler
func (p WireguardPeer) MarshalJSON() ([]byte, error) {
	type peer WireguardPeer
	v := peer(p)
	v.AllowedIPRange = orEmpty(v.AllowedIPRange)
	return json.Marshal(v)
}

// Type implements WorkloadData
func (n *Network) Type() WorkloadType { return NetworkType }

// Requirements implements WorkloadData
func (n *Network) Requirements() Capacity {
	return Capacity{}
}

func (n *Network) provision(ctx context.Context, p Provisioner, wl *Workload) error {
	return p.ProvisionNetwork(ctx, wl, n)
}

func (n *Network) redacted() WorkloadData {
	c := *n
	if n.NetworkResources != nil {
		c.NetworkResources = make([]NetworkResources, len(n.NetworkResources))
		for i, r := range n.NetworkResources {
			r.WireguardPrivateKeyEncrypted = r.WireguardPrivateKeyEncrypted.redacted()
			r.Peers = slices.Clone(r.Peers)
			c.NetworkResources[i] = r
		}
	}
	return &c
}
