package store

import (
	"context"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
	bolt "go.etcd.io/bbolt"
)

var bucketWorkloads = []byte("workloads")

// BoltStore implements Store using BoltDB. Every node has its own bucket
// nested in the workloads bucket, keys are big endian workload ids.
type BoltStore struct {
	db *bolt.DB
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore opens or creates a BoltDB file at path
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database '%s'", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWorkloads)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create workloads bucket")
	}

	return &BoltStore{db: db}, nil
}

func workloadKey(workloadID int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(workloadID))
	return key
}

// Put implements Store. Bolt allows a single writer so the version check and
// the write are atomic.
func (s *BoltStore) Put(_ context.Context, wl zos.Workload) error {
	data, err := codec.Encode(wl)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		node, err := tx.Bucket(bucketWorkloads).CreateBucketIfNotExists([]byte(wl.NodeID))
		if err != nil {
			return errors.Wrapf(err, "failed to create bucket of node '%s'", wl.NodeID)
		}

		key := workloadKey(wl.WorkloadID)
		if existing := node.Get(key); existing != nil {
			stored, err := decode(existing)
			if err != nil {
				return err
			}
			if stored.Version >= wl.Version {
				return conflict(stored.Version, wl.Version)
			}
		}

		return node.Put(key, data)
	})
}

// Get implements Store
func (s *BoltStore) Get(_ context.Context, nodeID string, workloadID int64) (zos.Workload, error) {
	var wl zos.Workload
	err := s.db.View(func(tx *bolt.Tx) error {
		node := tx.Bucket(bucketWorkloads).Bucket([]byte(nodeID))
		if node == nil {
			return notFound(nodeID, workloadID)
		}

		data := node.Get(workloadKey(workloadID))
		if data == nil {
			return notFound(nodeID, workloadID)
		}

		var err error
		wl, err = decode(data)
		return err
	})
	return wl, err
}

// List implements Store
func (s *BoltStore) List(_ context.Context, nodeID string) ([]zos.Workload, error) {
	workloads := []zos.Workload{}
	err := s.db.View(func(tx *bolt.Tx) error {
		node := tx.Bucket(bucketWorkloads).Bucket([]byte(nodeID))
		if node == nil {
			return nil
		}

		return node.ForEach(func(_, v []byte) error {
			wl, err := decode(v)
			if err != nil {
				return err
			}
			workloads = append(workloads, wl)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortWorkloads(workloads)
	return workloads, nil
}

// Delete implements Store
func (s *BoltStore) Delete(_ context.Context, nodeID string, workloadID int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		node := tx.Bucket(bucketWorkloads).Bucket([]byte(nodeID))
		if node == nil {
			return notFound(nodeID, workloadID)
		}

		key := workloadKey(workloadID)
		if node.Get(key) == nil {
			return notFound(nodeID, workloadID)
		}
		return node.Delete(key)
	})
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}
