package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/internal/samples"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

func TestEncode(t *testing.T) {
	wl := samples.Workload(1, 1, samples.Volume())

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, encode(&buf, wl, "json"))

		got, err := codec.Decode(bytes.TrimSpace(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, wl.Data, got.Data)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, encode(&buf, wl, "YAML"))
		assert.Contains(t, buf.String(), "size: 10737418240")

		got, err := codec.DecodeYAML(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, wl.Data, got.Data)
	})

	t.Run("invalid format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, encode(&buf, wl, "toml"))
		assert.Empty(t, buf.String())
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, validate(&buf, samples.Workload(1, 1, samples.ZDB())))
		assert.Equal(t, "workload is valid\n", buf.String())
	})

	t.Run("invalid", func(t *testing.T) {
		wl := samples.Workload(1, 1, samples.Volume())
		wl.NodeID = ""

		var buf bytes.Buffer
		err := validate(&buf, wl)
		assert.ErrorIs(t, err, errInvalid)
		assert.Contains(t, buf.String(), "node_id")
	})
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, describe(&buf, samples.Workload(2, 1, samples.ZDB())))

	out := buf.String()
	assert.Contains(t, out, "ZDB")
	assert.Contains(t, out, samples.NodeID)
	assert.Contains(t, out, zos.Redacted)
	assert.NotContains(t, out, "encrypted-password")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		require.NoError(t, serveCmd.Flags().Set("env", ""))
		require.NoError(t, serveCmd.Flags().Set("listen", ""))

		cfg, err := loadConfig(serveCmd)
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.ListenAddr)
	})

	t.Run("env file and listen override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("STORE=bolt\nBOLT_PATH=/tmp/workloads.db\n"), 0o644))

		require.NoError(t, serveCmd.Flags().Set("env", path))
		require.NoError(t, serveCmd.Flags().Set("listen", ":9090"))
		t.Cleanup(func() {
			_ = serveCmd.Flags().Set("env", "")
			_ = serveCmd.Flags().Set("listen", "")
		})

		cfg, err := loadConfig(serveCmd)
		require.NoError(t, err)
		assert.Equal(t, "bolt", cfg.Store)
		assert.Equal(t, ":9090", cfg.ListenAddr)
	})

	t.Run("missing env file", func(t *testing.T) {
		require.NoError(t, serveCmd.Flags().Set("env", filepath.Join(t.TempDir(), "missing")))
		t.Cleanup(func() { _ = serveCmd.Flags().Set("env", "") })

		_, err := loadConfig(serveCmd)
		assert.Error(t, err)
	})
}
