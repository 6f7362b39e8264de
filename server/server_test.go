package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/internal/samples"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/mocks"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/provision"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/store"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

func setUp(t testing.TB, p provision.Provisioner) *Server {
	s := store.NewMemStore()
	engine := provision.NewEngine(s, p, provision.WithRetries(0))
	return New(engine, s)
}

func request(srv *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	response := httptest.NewRecorder()

	srv.Handler().ServeHTTP(response, req)
	return response
}

func submit(t *testing.T, srv *Server, wl zos.Workload) *httptest.ResponseRecorder {
	t.Helper()
	data, err := codec.Encode(wl)
	require.NoError(t, err)
	return request(srv, http.MethodPost, "/workloads", bytes.NewReader(data))
}

func TestSubmitHandler(t *testing.T) {
	srv := setUp(t, provision.NewLogProvisioner())

	t.Run("ok", func(t *testing.T) {
		response := submit(t, srv, samples.Workload(1, 1, samples.Volume()))
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "/nodes/"+samples.NodeID+"/workloads/1", response.Header().Get("Location"))

		var result zos.Result
		require.NoError(t, json.NewDecoder(response.Body).Decode(&result))
		assert.Equal(t, zos.StateOk, result.State)
		assert.Equal(t, int64(1), result.Version)
	})

	t.Run("unchanged", func(t *testing.T) {
		response := submit(t, srv, samples.Workload(1, 1, samples.Volume()))
		assert.Equal(t, http.StatusConflict, response.Code)

		var result zos.Result
		require.NoError(t, json.NewDecoder(response.Body).Decode(&result))
		assert.Equal(t, zos.StateUnChanged, result.State)
		assert.Empty(t, response.Header().Get("Location"))
	})

	decodeCases := []struct {
		name  string
		body  string
		kind  string
		field string
	}{
		{name: "malformed", body: `{"node_id": `, kind: "malformed"},
		{name: "unknown variant", body: `{"node_id": "n", "data": {"Vm": {}}}`, kind: "unknown_variant", field: "data"},
		{name: "invalid payload", body: `{"node_id": "n", "data": {"Volume": {"size": "1"}}}`, kind: "invalid_payload", field: "data.Volume.size"},
		{name: "partial payload", body: `{"node_id": "n", "data": {"Volume": {"size": 1}}}`, kind: "invalid_payload", field: "data.Volume.kind"},
	}

	for _, c := range decodeCases {
		t.Run(c.name, func(t *testing.T) {
			response := request(srv, http.MethodPost, "/workloads", bytes.NewBufferString(c.body))
			assert.Equal(t, http.StatusBadRequest, response.Code)

			var body ErrorBody
			require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
			assert.Equal(t, c.kind, body.Kind)
			assert.Equal(t, c.field, body.Field)
			assert.NotEmpty(t, body.Error)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		c := samples.Container()
		c.Capacity.CPU = 0
		c.Volumes = append(c.Volumes, c.Volumes[0])

		response := submit(t, srv, samples.Workload(2, 1, c))
		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)

		var body ErrorBody
		require.NoError(t, json.NewDecoder(response.Body).Decode(&body))

		var fields []string
		for _, v := range body.Violations {
			fields = append(fields, v.Field)
		}
		assert.ElementsMatch(t, []string{"data.Container.capacity.cpu", "data.Container.volumes[1].mount_point"}, fields)
	})
}

func TestSubmitProvisionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := mocks.NewMockProvisioner(ctrl)
	p.EXPECT().ProvisionGatewayDelegate(gomock.Any(), gomock.Any(), gomock.Any()).Return(provision.Permanent(errors.New("zone is taken")))

	srv := setUp(t, p)
	response := submit(t, srv, samples.Workload(1, 1, samples.GatewayDelegate()))
	assert.Equal(t, http.StatusInternalServerError, response.Code)

	var result zos.Result
	require.NoError(t, json.NewDecoder(response.Body).Decode(&result))
	assert.Equal(t, zos.StateError, result.State)
	assert.Equal(t, "zone is taken", result.Error)
}

func TestReadHandlers(t *testing.T) {
	srv := setUp(t, provision.NewLogProvisioner())
	for _, wl := range samples.All() {
		require.Equal(t, http.StatusOK, submit(t, srv, wl).Code)
	}

	t.Run("list", func(t *testing.T) {
		response := request(srv, http.MethodGet, "/nodes/"+samples.NodeID+"/workloads", nil)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.NotContains(t, response.Body.String(), "encrypted-")
		assert.Contains(t, response.Body.String(), zos.Redacted)

		var workloads []zos.Workload
		require.NoError(t, json.NewDecoder(response.Body).Decode(&workloads))
		assert.Len(t, workloads, len(samples.All()))
	})

	t.Run("list by type", func(t *testing.T) {
		response := request(srv, http.MethodGet, "/nodes/"+samples.NodeID+"/workloads?type=Network", nil)
		assert.Equal(t, http.StatusOK, response.Code)

		var workloads []zos.Workload
		require.NoError(t, json.NewDecoder(response.Body).Decode(&workloads))
		require.Len(t, workloads, 1)
		assert.Equal(t, zos.NetworkType, workloads[0].Type())
	})

	t.Run("list of unknown node", func(t *testing.T) {
		response := request(srv, http.MethodGet, "/nodes/missing/workloads", nil)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `[]`, response.Body.String())
	})

	t.Run("list with bad query", func(t *testing.T) {
		response := request(srv, http.MethodGet, "/nodes/"+samples.NodeID+"/workloads?type=Vm", nil)
		assert.Equal(t, http.StatusBadRequest, response.Code)

		response = request(srv, http.MethodGet, "/nodes/"+samples.NodeID+"/workloads?owner=me", nil)
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("get", func(t *testing.T) {
		response := request(srv, http.MethodGet, "/nodes/"+samples.NodeID+"/workloads/2", nil)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"password":"[redacted]"`)
	})

	t.Run("get missing", func(t *testing.T) {
		response := request(srv, http.MethodGet, "/nodes/"+samples.NodeID+"/workloads/99", nil)
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("delete", func(t *testing.T) {
		response := request(srv, http.MethodDelete, "/nodes/"+samples.NodeID+"/workloads/1", nil)
		assert.Equal(t, http.StatusOK, response.Code)

		var result zos.Result
		require.NoError(t, json.NewDecoder(response.Body).Decode(&result))
		assert.Equal(t, zos.StateDeleted, result.State)

		response = request(srv, http.MethodDelete, "/nodes/"+samples.NodeID+"/workloads/1", nil)
		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

func TestMetrics(t *testing.T) {
	srv := setUp(t, provision.NewLogProvisioner())

	submit(t, srv, samples.Workload(1, 1, samples.Volume()))
	submit(t, srv, samples.Workload(1, 1, samples.Volume()))
	request(srv, http.MethodPost, "/workloads", bytes.NewBufferString(`{}`))

	response := request(srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Contains(t, body, `grid_workloads_submitted_total{result="ok"} 1`)
	assert.Contains(t, body, `grid_workloads_submitted_total{result="unchanged"} 1`)
	assert.Contains(t, body, `grid_workloads_submitted_total{result="malformed"} 1`)
}

func TestRequestID(t *testing.T) {
	srv := setUp(t, provision.NewLogProvisioner())

	response := request(srv, http.MethodGet, "/nodes/n/workloads", nil)
	assert.NotEmpty(t, response.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/nodes/n/workloads", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)
	assert.Equal(t, "req-1", recorder.Header().Get(RequestIDHeader))
}
