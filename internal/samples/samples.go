// Package samples holds valid workloads of every kind used by tests across packages
package samples

import (
	"bytes"
	"encoding/base64"
	"net"

	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

// NodeID of every sample workload
const NodeID = "node-1"

// Key returns a valid wireguard key made of 32 times the given byte
func Key(b byte) string {
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{b}, 32))
}

// Workload wraps data in an envelope with the given id and version
func Workload(id, version int64, data zos.WorkloadData) zos.Workload {
	return zos.Workload{
		WorkloadID:  id,
		NodeID:      NodeID,
		CustomerID:  7,
		Version:     version,
		Reference:   "ref",
		PoolID:      3,
		Epoch:       1600000000,
		Description: "sample " + data.Type().String(),
		Metadata:    `{"project":"samples"}`,
		Data:        data,
	}
}

// Volume sample
func Volume() *zos.Volume {
	return &zos.Volume{Size: 10 * zos.Gigabyte, Kind: zos.SSDDiskType}
}

// ZDB sample
func ZDB() *zos.ZDB {
	return &zos.ZDB{
		Size:     zos.Terabyte,
		Mode:     zos.ZdbModeUser,
		Password: "encrypted-password",
		DiskType: zos.HDDDiskType,
		Public:   true,
	}
}

// Container sample
func Container() *zos.Container {
	return &zos.Container{
		Flist:       "https://hub.grid.tf/tf-official-apps/base:latest.flist",
		HubURL:      "zdb://hub.grid.tf:9900",
		Environment: map[string]string{"LOG_LEVEL": "info"},
		SecretEnvironment: map[string]zos.Secret{
			"API_TOKEN": "encrypted-token",
		},
		Entrypoint:  "/sbin/zinit init",
		Interactive: false,
		Volumes: []zos.ContainerMount{
			{VolumeID: "1-1", MountPoint: "/data"},
		},
		NetworkConnections: []zos.NetworkConnection{
			{NetworkID: "net", IPAddress: net.ParseIP("10.1.1.2"), PublicIP6: true},
		},
		Stats: []zos.Stats{
			{Type: "redis", Data: zos.Octets(`{"endpoint":"redis://10.1.1.1:6379"}`)},
		},
		Logs: []zos.Logs{
			{Type: "redis", Data: zos.LogRedis{
				Stdout:       "redis://10.1.1.1:6379/stdout",
				Stderr:       "redis://10.1.1.1:6379/stderr",
				SecretStdout: "encrypted-stdout",
			}},
		},
		Capacity: zos.ContainerCapacity{
			CPU:      2,
			Memory:   2 * zos.Gigabyte,
			DiskType: zos.SSDDiskType,
			DiskSize: 10 * zos.Gigabyte,
		},
	}
}

// K8S sample
func K8S() *zos.K8S {
	return &zos.K8S{
		Size:          1,
		ClusterSecret: "encrypted-cluster-secret",
		NetworkID:     "net",
		IPAddress:     net.ParseIP("10.1.2.2"),
		MasterIPs:     []net.IP{net.ParseIP("10.1.1.2")},
		SSHKeys:       []string{"ssh-ed25519 AAAA"},
		PublicIPWID:   5,
	}
}

// PublicIP sample
func PublicIP() *zos.PublicIP {
	return &zos.PublicIP{IPAddress: zos.MustParseIPNet("185.206.122.31/24")}
}

// Network sample
func Network() *zos.Network {
	return &zos.Network{
		Name:       "net",
		WorkloadID: 6,
		IPRange:    zos.MustParseIPNet("10.1.0.0/16"),
		FarmerTID:  1,
		NetworkResources: []zos.NetworkResources{
			{
				NodeID:                       NodeID,
				WireguardPrivateKeyEncrypted: "encrypted-private-key",
				WireguardPublicKey:           Key(1),
				WireguardListenPort:          3000,
				IPRange:                      zos.MustParseIPNet("10.1.1.0/24"),
				Peers: []zos.WireguardPeer{
					{
						PublicKey: Key(2),
						Endpoint:  "185.206.122.32:3000",
						IPRange:   zos.MustParseIPNet("10.1.2.0/24"),
						AllowedIPRange: []zos.IPNet{
							zos.MustParseIPNet("10.1.2.0/24"),
							zos.MustParseIPNet("100.64.1.2/32"),
						},
					},
					{
						PublicKey: Key(3),
						IPRange:   zos.MustParseIPNet("10.1.3.0/24"),
						AllowedIPRange: []zos.IPNet{
							zos.MustParseIPNet("10.1.3.0/24"),
						},
					},
				},
			},
		},
	}
}

// GatewayProxy sample
func GatewayProxy() *zos.GatewayProxy {
	return &zos.GatewayProxy{Domain: "app.gateway.grid.tf", Addr: "10.1.1.2", Port: 80, PortTLS: 443}
}

// GatewayReverseProxy sample
func GatewayReverseProxy() *zos.GatewayReverseProxy {
	return &zos.GatewayReverseProxy{Domain: "rp.gateway.grid.tf", Secret: "encrypted-secret"}
}

// GatewaySubdomain sample
func GatewaySubdomain() *zos.GatewaySubdomain {
	return &zos.GatewaySubdomain{Domain: "sub.gateway.grid.tf", IPs: []string{"185.206.122.33", "2a02:1802:5e::1"}}
}

// GatewayDelegate sample
func GatewayDelegate() *zos.GatewayDelegate {
	return &zos.GatewayDelegate{Domain: "delegated.grid.tf"}
}

// Gateway4To6 sample
func Gateway4To6() *zos.Gateway4To6 {
	return &zos.Gateway4To6{PublicKey: Key(4)}
}

// All returns one valid workload of every kind, ids start at 1 in wire order
func All() []zos.Workload {
	data := []zos.WorkloadData{
		Volume(),
		ZDB(),
		Container(),
		K8S(),
		PublicIP(),
		Network(),
		GatewayProxy(),
		GatewayReverseProxy(),
		GatewaySubdomain(),
		GatewayDelegate(),
		Gateway4To6(),
	}

	workloads := make([]zos.Workload, 0, len(data))
	for i, d := range data {
		workloads = append(workloads, Workload(int64(i+1), 1, d))
	}
	return workloads
}
