package zos_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/internal/samples"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

func decode(t *testing.T, data string) (zos.Workload, error) {
	t.Helper()
	var wl zos.Workload
	err := wl.UnmarshalJSON([]byte(data))
	return wl, err
}

func decodeError(t *testing.T, data string) *zos.DecodeError {
	t.Helper()
	_, err := decode(t, data)
	require.Error(t, err)

	var decodeErr *zos.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	return decodeErr
}

func TestWorkloadRoundTrip(t *testing.T) {
	all := samples.All()
	require.Len(t, all, len(zos.Types()))

	for _, wl := range all {
		t.Run(wl.Type().String(), func(t *testing.T) {
			data, err := json.Marshal(wl)
			require.NoError(t, err)

			var got zos.Workload
			require.NoError(t, json.Unmarshal(data, &got))

			if diff := cmp.Diff(wl, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			again, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(data), string(again))
		})
	}
}

func TestWorkloadVolumeWireFormat(t *testing.T) {
	wl := zos.Workload{
		WorkloadID: 1,
		NodeID:     "node",
		Version:    1,
		Data:       &zos.Volume{Size: 10737418240, Kind: zos.SSDDiskType},
	}

	data, err := json.Marshal(wl)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"workload_id": 1,
		"node_id": "node",
		"customer_id": 0,
		"version": 1,
		"reference": "",
		"pool_id": 0,
		"epoch": 0,
		"description": "",
		"metadata": "",
		"data": {"Volume": {"size": 10737418240, "kind": "SSD"}}
	}`, string(data))

	got, err := decode(t, string(data))
	require.NoError(t, err)

	volume, ok := got.Data.(*zos.Volume)
	require.True(t, ok)
	assert.Equal(t, int64(10737418240), volume.Size)
	assert.Equal(t, zos.SSDDiskType, volume.Kind)
}

func TestWorkloadSizeBoundaries(t *testing.T) {
	for _, size := range []int64{0, 1, math.MaxInt64} {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			wl := samples.Workload(1, 1, &zos.Volume{Size: size, Kind: zos.HDDDiskType})

			data, err := json.Marshal(wl)
			require.NoError(t, err)

			got, err := decode(t, string(data))
			require.NoError(t, err)
			assert.Equal(t, size, got.Data.(*zos.Volume).Size)
		})
	}
}

func TestWorkloadEmptyCollections(t *testing.T) {
	wl := samples.Workload(1, 1, &zos.Container{
		Flist:    "flist",
		Capacity: zos.ContainerCapacity{CPU: 1, Memory: zos.Gigabyte},
	})

	data, err := json.Marshal(wl)
	require.NoError(t, err)

	var raw struct {
		Data map[string]map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))

	container := raw.Data["Container"]
	assert.JSONEq(t, `{}`, string(container["environment"]))
	assert.JSONEq(t, `{}`, string(container["secret_environment"]))
	assert.JSONEq(t, `[]`, string(container["volumes"]))
	assert.JSONEq(t, `[]`, string(container["network_connections"]))
	assert.JSONEq(t, `[]`, string(container["stats"]))
	assert.JSONEq(t, `[]`, string(container["logs"]))

	t.Run("null collections are rejected", func(t *testing.T) {
		null := strings.Replace(string(data), `"volumes":[]`, `"volumes":null`, 1)
		require.NotEqual(t, string(data), null)

		err := decodeError(t, null)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
		assert.ErrorIs(t, err, zos.ErrNullField)
		assert.Equal(t, "data.Container.volumes", err.Field)
	})
}

func TestWorkloadDecodeErrors(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		err := decodeError(t, `{"node_id": `)
		assert.ErrorIs(t, err, zos.ErrMalformed)
	})

	t.Run("trailing data", func(t *testing.T) {
		var wl zos.Workload
		err := wl.UnmarshalJSON([]byte(`{"data": {"GatewayDelegate": {"domain": "d"}}} {}`))
		assert.ErrorIs(t, err, zos.ErrMalformed)
	})

	t.Run("missing data", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n"}`)
		assert.ErrorIs(t, err, zos.ErrMalformed)
		assert.Equal(t, "data", err.Field)
	})

	t.Run("null data", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": null}`)
		assert.ErrorIs(t, err, zos.ErrMalformed)
	})

	t.Run("zero tags", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {}}`)
		assert.ErrorIs(t, err, zos.ErrMalformed)
		assert.Equal(t, "data", err.Field)
	})

	t.Run("multiple tags", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"Volume": {"size": 1, "kind": "SSD"}, "GatewayDelegate": {"domain": "d"}}}`)
		assert.ErrorIs(t, err, zos.ErrMalformed)
	})

	t.Run("data is not an object", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": "Volume"}`)
		assert.ErrorIs(t, err, zos.ErrMalformed)
	})

	t.Run("unknown tag", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"VirtualMachine": {}}}`)
		assert.ErrorIs(t, err, zos.ErrUnknownVariant)
		assert.Equal(t, "data", err.Field)
	})

	t.Run("unknown envelope field", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "owner": "x", "data": {"GatewayDelegate": {"domain": "d"}}}`)
		assert.ErrorIs(t, err, zos.ErrMalformed)
	})

	t.Run("envelope type mismatch", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "version": "one", "data": {"GatewayDelegate": {"domain": "d"}}}`)
		assert.ErrorIs(t, err, zos.ErrMalformed)
		assert.Equal(t, "version", err.Field)
	})

	t.Run("unknown payload field", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"Volume": {"size": 1, "kind": "SSD", "iops": 5}}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
		assert.Equal(t, "data.Volume.iops", err.Field)
	})

	t.Run("payload type mismatch", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"Volume": {"size": "big", "kind": "SSD"}}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
		assert.Equal(t, "data.Volume.size", err.Field)
	})

	t.Run("null payload", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"Volume": null}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
	})

	t.Run("unknown disk type", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"Volume": {"size": 1, "kind": "NVME"}}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
	})

	t.Run("unknown zdb mode", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"ZDB": {"size": 1, "mode": "ZDBModeFast"}}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
	})

	t.Run("stats byte out of range", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"Container": {"flist": "f", "stats": [{"stats_type": "redis", "data": [256]}]}}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
		assert.Equal(t, "data.Container.stats[0].data", err.Field)
	})

	t.Run("mask does not match family", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"PublicIP": {"ipaddress": {"ip": "185.206.122.31", "mask": [255,255,255,0,0,0,0,0,0,0,0,0,0,0,0,0]}}}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
		assert.Equal(t, "data.PublicIP.ipaddress.mask", err.Field)
	})

	t.Run("nested mask does not match family", func(t *testing.T) {
		network := samples.Network()
		network.NetworkResources[0].IPRange.Mask = zos.Octets(net.CIDRMask(24, 128))

		data, err := json.Marshal(samples.Workload(6, 1, network))
		require.NoError(t, err)

		decodeErr := decodeError(t, string(data))
		assert.ErrorIs(t, decodeErr, zos.ErrInvalidPayload)
		assert.ErrorIs(t, decodeErr, zos.ErrMaskFamily)
		assert.Equal(t, "data.Network.network_resources[0].iprange.mask", decodeErr.Field)
	})

	t.Run("unknown ipnet field", func(t *testing.T) {
		err := decodeError(t, `{"node_id": "n", "data": {"PublicIP": {"ipaddress": {"ip": "185.206.122.31", "mask": [255,255,255,0], "gw": "x"}}}}`)
		assert.ErrorIs(t, err, zos.ErrInvalidPayload)
	})
}

// full wraps data in an envelope holding every field
func full(data string) string {
	return `{"workload_id": 1, "node_id": "n", "customer_id": 0, "version": 1, "reference": "", ` +
		`"pool_id": 0, "epoch": 0, "description": "", "metadata": "", "data": ` + data + `}`
}

func TestWorkloadDecodeStrictShape(t *testing.T) {
	t.Run("complete envelope", func(t *testing.T) {
		got, err := decode(t, full(`{"Volume": {"size": 1, "kind": "HDD"}}`))
		require.NoError(t, err)
		assert.Equal(t, &zos.Volume{Size: 1, Kind: zos.HDDDiskType}, got.Data)
		assert.Equal(t, int64(1), got.Version)
	})

	cases := []struct {
		name  string
		data  string
		kind  error
		cause error
		field string
	}{
		{
			name:  "missing payload field",
			data:  full(`{"Volume": {"size": 1}}`),
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrMissingField,
			field: "data.Volume.kind",
		},
		{
			name:  "empty payload",
			data:  full(`{"Volume": {}}`),
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrMissingField,
			field: "data.Volume.size",
		},
		{
			name:  "missing nested field",
			data:  full(`{"PublicIP": {"ipaddress": {"ip": "185.206.122.31"}}}`),
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrMissingField,
			field: "data.PublicIP.ipaddress.mask",
		},
		{
			name:  "missing envelope field",
			data:  `{"workload_id": 1, "node_id": "n", "customer_id": 0, "reference": "", "pool_id": 0, "epoch": 0, "description": "", "metadata": "", "data": {"Volume": {"size": 1, "kind": "SSD"}}}`,
			kind:  zos.ErrMalformed,
			cause: zos.ErrMissingField,
			field: "version",
		},
		{
			name:  "payload errors come before missing envelope fields",
			data:  `{"node_id": "n", "data": {"Volume": {"size": 5}}}`,
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrMissingField,
			field: "data.Volume.kind",
		},
		{
			name:  "null payload field",
			data:  full(`{"Volume": {"size": 1, "kind": null}}`),
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrNullField,
			field: "data.Volume.kind",
		},
		{
			name:  "null envelope field",
			data:  strings.Replace(full(`{"Volume": {"size": 1, "kind": "SSD"}}`), `"reference": ""`, `"reference": null`, 1),
			kind:  zos.ErrMalformed,
			cause: zos.ErrNullField,
			field: "reference",
		},
		{
			name:  "envelope key case",
			data:  `{"NODE_ID": "n", "data": {"Volume": {"size": 1, "kind": "SSD"}}}`,
			kind:  zos.ErrMalformed,
			cause: zos.ErrUnknownField,
			field: "NODE_ID",
		},
		{
			name:  "payload key case",
			data:  full(`{"Volume": {"SIZE": 1, "kind": "SSD"}}`),
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrUnknownField,
			field: "data.Volume.SIZE",
		},
		{
			name:  "duplicate envelope key",
			data:  `{"version": 1, "version": 2, "data": {"Volume": {"size": 1, "kind": "SSD"}}}`,
			kind:  zos.ErrMalformed,
			cause: zos.ErrDuplicateField,
			field: "version",
		},
		{
			name:  "duplicate payload key",
			data:  full(`{"Volume": {"size": 1, "size": 2, "kind": "HDD"}}`),
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrDuplicateField,
			field: "data.Volume.size",
		},
		{
			name:  "duplicate nested key",
			data:  full(`{"PublicIP": {"ipaddress": {"ip": "185.206.122.31", "ip": "185.206.122.32", "mask": [255,255,255,0]}}}`),
			kind:  zos.ErrInvalidPayload,
			cause: zos.ErrDuplicateField,
			field: "data.PublicIP.ipaddress.ip",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := decodeError(t, c.data)
			assert.ErrorIs(t, err, c.kind)
			assert.ErrorIs(t, err, c.cause)
			assert.Equal(t, c.field, err.Field)
		})
	}

	t.Run("duplicate environment key", func(t *testing.T) {
		data, err := json.Marshal(samples.Workload(3, 1, samples.Container()))
		require.NoError(t, err)

		dup := strings.Replace(string(data), `"environment":{`, `"environment":{"LOG_LEVEL":"debug",`, 1)
		require.NotEqual(t, string(data), dup)

		decodeErr := decodeError(t, dup)
		assert.ErrorIs(t, decodeErr, zos.ErrInvalidPayload)
		assert.ErrorIs(t, decodeErr, zos.ErrDuplicateField)
		assert.Equal(t, "data.Container.environment[LOG_LEVEL]", decodeErr.Field)
	})
}

func TestWorkloadMarshalWithoutData(t *testing.T) {
	_, err := json.Marshal(zos.Workload{NodeID: "n"})
	assert.ErrorIs(t, err, zos.ErrNoData)
}

func TestWorkloadSecrets(t *testing.T) {
	secrets := []string{
		"encrypted-password",
		"encrypted-token",
		"encrypted-stdout",
		"encrypted-cluster-secret",
		"encrypted-private-key",
		"encrypted-secret",
	}

	all := samples.All()

	t.Run("wire format keeps secrets", func(t *testing.T) {
		var buf bytes.Buffer
		for _, wl := range all {
			data, err := json.Marshal(wl)
			require.NoError(t, err)
			buf.Write(data)
		}

		for _, secret := range secrets {
			assert.Contains(t, buf.String(), secret)
		}
	})

	t.Run("fmt never prints secrets", func(t *testing.T) {
		var buf strings.Builder
		for _, wl := range all {
			fmt.Fprintf(&buf, "%v %+v %#v %s\n", wl.Data, wl.Data, wl.Data, wl.Data)
		}

		for _, secret := range secrets {
			assert.NotContains(t, buf.String(), secret)
		}
	})

	t.Run("redacted copy", func(t *testing.T) {
		var buf bytes.Buffer
		for _, wl := range all {
			data, err := json.Marshal(wl.Redacted())
			require.NoError(t, err)
			buf.Write(data)
		}

		for _, secret := range secrets {
			assert.NotContains(t, buf.String(), secret)
		}
		assert.Contains(t, buf.String(), "redacted")
	})

	t.Run("redaction does not touch the original", func(t *testing.T) {
		zdb := samples.ZDB()
		wl := samples.Workload(1, 1, zdb)
		_ = wl.Redacted()
		assert.Equal(t, zos.Secret("encrypted-password"), zdb.Password)
	})

	t.Run("zerolog", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		for _, wl := range all {
			logger.Info().Object("workload", wl).Msg("applying")
		}

		for _, secret := range secrets {
			assert.NotContains(t, buf.String(), secret)
		}
		assert.Contains(t, buf.String(), `"node_id":"node-1"`)
	})
}
