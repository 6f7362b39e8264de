// Package store keeps the latest applied version of every workload. A
// workload is only stored if its version is newer than the stored one.
package store

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

var (
	// ErrNotFound is returned when no workload is stored for an identity
	ErrNotFound = errors.New("workload not found")
	// ErrVersionConflict is returned when the stored version is newer or equal
	ErrVersionConflict = errors.New("workload version conflict")
)

// Store is the storage boundary of workloads, keyed by (node_id, workload_id)
type Store interface {
	// Put stores the workload if its version is greater than the stored version
	Put(ctx context.Context, wl zos.Workload) error
	// Get returns the stored workload
	Get(ctx context.Context, nodeID string, workloadID int64) (zos.Workload, error)
	// List returns the workloads of a node ordered by workload id
	List(ctx context.Context, nodeID string) ([]zos.Workload, error)
	// Delete removes a stored workload
	Delete(ctx context.Context, nodeID string, workloadID int64) error
	// Close releases the store resources
	Close() error
}

func conflict(stored, version int64) error {
	return errors.Wrapf(ErrVersionConflict, "stored version %d, got %d", stored, version)
}

func notFound(nodeID string, workloadID int64) error {
	return errors.Wrapf(ErrNotFound, "workload %d on node '%s'", workloadID, nodeID)
}

func decode(data []byte) (zos.Workload, error) {
	wl, err := codec.Decode(data)
	if err != nil {
		return zos.Workload{}, errors.Wrap(err, "failed to decode stored workload")
	}
	return wl, nil
}

func sortWorkloads(workloads []zos.Workload) {
	sort.Slice(workloads, func(i, j int) bool {
		return workloads[i].WorkloadID < workloads[j].WorkloadID
	})
}
