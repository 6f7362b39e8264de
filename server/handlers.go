package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/store"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/validation"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

// ListFilter is the query of the list endpoint
type ListFilter struct {
	Type string `schema:"type"`
}

func (s *Server) submitHandler(r *http.Request, w http.ResponseWriter) (interface{}, Response) {
	logger := zerolog.Ctx(r.Context())

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.submitted.WithLabelValues("error").Inc()
		return nil, BadRequest(errors.Wrap(err, "failed to read request body"))
	}

	wl, err := codec.Decode(data)
	if err != nil {
		var decodeErr *zos.DecodeError
		if errors.As(err, &decodeErr) {
			s.submitted.WithLabelValues(decodeKind(decodeErr)).Inc()
		}
		logger.Debug().Err(err).Msg("failed to decode workload")
		return nil, BadRequest(err)
	}

	if err := validation.Validate(wl); err != nil {
		s.submitted.WithLabelValues("invalid").Inc()
		logger.Debug().Err(err).Object("workload", wl).Msg("invalid workload")
		return nil, UnprocessableEntity(err)
	}

	result := s.engine.ApplyWorkload(r.Context(), wl)
	s.submitted.WithLabelValues(string(result.State)).Inc()

	if result.State.IsOkay() {
		location := fmt.Sprintf("/nodes/%s/workloads/%d", url.PathEscape(wl.NodeID), wl.WorkloadID)
		return result, Ok().WithHeader("Location", location)
	}

	if result.State == zos.StateUnChanged {
		return result, Status(http.StatusConflict)
	}
	return result, Status(http.StatusInternalServerError)
}

func (s *Server) listHandler(r *http.Request, w http.ResponseWriter) (interface{}, Response) {
	nodeID := mux.Vars(r)["node_id"]

	var filter ListFilter
	if err := s.decoder.Decode(&filter, r.URL.Query()); err != nil {
		return nil, BadRequest(errors.Wrap(err, "invalid query"))
	}

	if filter.Type != "" {
		if _, ok := zos.New(zos.WorkloadType(filter.Type)); !ok {
			return nil, BadRequest(errors.Errorf("unknown workload type '%s'", filter.Type))
		}
	}

	workloads, err := s.store.List(r.Context(), nodeID)
	if err != nil {
		return nil, InternalServerError(err)
	}

	result := make([]zos.Workload, 0, len(workloads))
	for _, wl := range workloads {
		if filter.Type != "" && wl.Type().String() != filter.Type {
			continue
		}
		result = append(result, wl.Redacted())
	}

	return result, nil
}

func (s *Server) getHandler(r *http.Request, w http.ResponseWriter) (interface{}, Response) {
	nodeID, workloadID, err := identity(r)
	if err != nil {
		return nil, BadRequest(err)
	}

	wl, err := s.store.Get(r.Context(), nodeID, workloadID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFound(err)
	} else if err != nil {
		return nil, InternalServerError(err)
	}

	return wl.Redacted(), nil
}

func (s *Server) deleteHandler(r *http.Request, w http.ResponseWriter) (interface{}, Response) {
	nodeID, workloadID, err := identity(r)
	if err != nil {
		return nil, BadRequest(err)
	}

	result, err := s.engine.Delete(r.Context(), nodeID, workloadID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFound(err)
	} else if err != nil {
		return nil, InternalServerError(err)
	}

	return result, nil
}

func identity(r *http.Request) (string, int64, error) {
	vars := mux.Vars(r)

	workloadID, err := strconv.ParseInt(vars["workload_id"], 10, 64)
	if err != nil {
		return "", 0, errors.Wrap(err, "invalid workload id")
	}
	return vars["node_id"], workloadID, nil
}
