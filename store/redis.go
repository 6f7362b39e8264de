package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

const redisTxRetries = 5

// RedisStore implements Store on redis. Every workload is a key holding its
// encoded form, and every node has a set of its workload ids. Version checks
// use optimistic transactions.
type RedisStore struct {
	redis *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a redis store for the given address
func NewRedisStore(address string) *RedisStore {
	return &RedisStore{
		redis: redis.NewClient(&redis.Options{
			Addr: address,
		}),
	}
}

func redisWorkloadKey(nodeID string, workloadID int64) string {
	return fmt.Sprintf("workload:%s:%d", nodeID, workloadID)
}

func redisNodeKey(nodeID string) string {
	return fmt.Sprintf("node:%s:workloads", nodeID)
}

// Ping checks the connection to redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.WithContext(ctx).Ping().Err()
}

// Put implements Store. The transaction is retried if the workload key
// changed while checking its version.
func (s *RedisStore) Put(ctx context.Context, wl zos.Workload) error {
	data, err := codec.Encode(wl)
	if err != nil {
		return err
	}

	key := redisWorkloadKey(wl.NodeID, wl.WorkloadID)
	client := s.redis.WithContext(ctx)

	backoff := retry.WithMaxRetries(redisTxRetries, retry.NewExponential(10*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := client.Watch(func(tx *redis.Tx) error {
			existing, err := tx.Get(key).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}

			if err == nil {
				stored, err := decode(existing)
				if err != nil {
					return err
				}
				if stored.Version >= wl.Version {
					return conflict(stored.Version, wl.Version)
				}
			}

			_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
				pipe.Set(key, data, 0)
				pipe.SAdd(redisNodeKey(wl.NodeID), wl.WorkloadID)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// Get implements Store
func (s *RedisStore) Get(ctx context.Context, nodeID string, workloadID int64) (zos.Workload, error) {
	data, err := s.redis.WithContext(ctx).Get(redisWorkloadKey(nodeID, workloadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zos.Workload{}, notFound(nodeID, workloadID)
	} else if err != nil {
		return zos.Workload{}, errors.Wrap(err, "failed to get workload")
	}

	return decode(data)
}

// List implements Store
func (s *RedisStore) List(ctx context.Context, nodeID string) ([]zos.Workload, error) {
	client := s.redis.WithContext(ctx)

	ids, err := client.SMembers(redisNodeKey(nodeID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list workloads of node '%s'", nodeID)
	}

	workloads := make([]zos.Workload, 0, len(ids))
	for _, id := range ids {
		workloadID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid workload id '%s'", id)
		}

		data, err := client.Get(redisWorkloadKey(nodeID, workloadID)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, "failed to get workload")
		}

		wl, err := decode(data)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, wl)
	}

	sortWorkloads(workloads)
	return workloads, nil
}

// Delete implements Store
func (s *RedisStore) Delete(ctx context.Context, nodeID string, workloadID int64) error {
	client := s.redis.WithContext(ctx)

	deleted, err := client.Del(redisWorkloadKey(nodeID, workloadID)).Result()
	if err != nil {
		return errors.Wrap(err, "failed to delete workload")
	}

	if err := client.SRem(redisNodeKey(nodeID), workloadID).Err(); err != nil {
		return errors.Wrap(err, "failed to delete workload")
	}

	if deleted == 0 {
		return notFound(nodeID, workloadID)
	}
	return nil
}

// Close implements Store
func (s *RedisStore) Close() error {
	return s.redis.Close()
}
