package store

import (
	"context"
	"sync"

	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

type memRecord struct {
	version int64
	data    []byte
}

// MemStore is an in memory store, records are kept encoded so callers never
// share state with the store
type MemStore struct {
	m     sync.RWMutex
	nodes map[string]map[int64]memRecord
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in memory store
func NewMemStore() *MemStore {
	return &MemStore{nodes: make(map[string]map[int64]memRecord)}
}

// Put implements Store
func (s *MemStore) Put(_ context.Context, wl zos.Workload) error {
	data, err := codec.Encode(wl)
	if err != nil {
		return err
	}

	s.m.Lock()
	defer s.m.Unlock()

	node, ok := s.nodes[wl.NodeID]
	if !ok {
		node = make(map[int64]memRecord)
		s.nodes[wl.NodeID] = node
	}

	if stored, ok := node[wl.WorkloadID]; ok && stored.version >= wl.Version {
		return conflict(stored.version, wl.Version)
	}

	node[wl.WorkloadID] = memRecord{version: wl.Version, data: data}
	return nil
}

// Get implements Store
func (s *MemStore) Get(_ context.Context, nodeID string, workloadID int64) (zos.Workload, error) {
	s.m.RLock()
	defer s.m.RUnlock()

	record, ok := s.nodes[nodeID][workloadID]
	if !ok {
		return zos.Workload{}, notFound(nodeID, workloadID)
	}
	return decode(record.data)
}

// List implements Store
func (s *MemStore) List(_ context.Context, nodeID string) ([]zos.Workload, error) {
	s.m.RLock()
	defer s.m.RUnlock()

	workloads := make([]zos.Workload, 0, len(s.nodes[nodeID]))
	for _, record := range s.nodes[nodeID] {
		wl, err := decode(record.data)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, wl)
	}

	sortWorkloads(workloads)
	return workloads, nil
}

// Delete implements Store
func (s *MemStore) Delete(_ context.Context, nodeID string, workloadID int64) error {
	s.m.Lock()
	defer s.m.Unlock()

	if _, ok := s.nodes[nodeID][workloadID]; !ok {
		return notFound(nodeID, workloadID)
	}
	delete(s.nodes[nodeID], workloadID)
	return nil
}

// Close implements Store
func (s *MemStore) Close() error {
	return nil
}
