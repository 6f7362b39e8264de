package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/store"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/validation"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRetries     = 3
	defaultConcurrency = 10
)

// Engine is the node agent side of the workload contract. It decodes,
// validates and stores a workload, then provisions it if its version is new.
type Engine struct {
	store       store.Store
	provisioner Provisioner

	retries     uint64
	concurrency int
	newBackOff  func() backoff.BackOff

	locks *locker
	now   func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithRetries sets how many times a failed provision is retried
func WithRetries(retries uint64) Option {
	return func(e *Engine) {
		e.retries = retries
	}
}

// WithBackOff sets the back off policy between provision retries
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(e *Engine) {
		e.newBackOff = newBackOff
	}
}

// WithConcurrency sets how many workloads ApplyAll processes at once
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

func exponentialBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 2 * time.Minute
	return b
}

// NewEngine creates a new engine
func NewEngine(s store.Store, p Provisioner, opts ...Option) *Engine {
	e := &Engine{
		store:       s,
		provisioner: p,
		retries:     defaultRetries,
		concurrency: defaultConcurrency,
		newBackOff:  exponentialBackOff,
		locks:       newLocker(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply decodes and applies an encoded workload
func (e *Engine) Apply(ctx context.Context, data []byte) zos.Result {
	wl, err := codec.Decode(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode workload")
		return zos.Result{State: zos.StateError, Error: err.Error(), Created: e.now().Unix()}
	}

	return e.ApplyWorkload(ctx, wl)
}

// ApplyWorkload applies a decoded workload. Invalid workloads never reach
// the store, stale versions are reported unchanged, the version is stored
// before provisioning so a failed provision needs a new version to be retried.
func (e *Engine) ApplyWorkload(ctx context.Context, wl zos.Workload) zos.Result {
	result := zos.Result{
		NodeID:     wl.NodeID,
		WorkloadID: wl.WorkloadID,
		Version:    wl.Version,
		State:      zos.StateInit,
	}
	finish := func(state zos.ResultState, err error) zos.Result {
		result.State = state
		if err != nil {
			result.Error = err.Error()
		}
		result.Created = e.now().Unix()
		return result
	}

	if err := validation.Validate(wl); err != nil {
		log.Error().Err(err).Object("workload", wl).Msg("invalid workload")
		return finish(zos.StateError, err)
	}

	unlock := e.locks.lock(identity(wl.NodeID, wl.WorkloadID))
	defer unlock()

	if err := e.store.Put(ctx, wl); errors.Is(err, store.ErrVersionConflict) {
		log.Debug().Err(err).Object("workload", wl).Msg("workload is up to date")
		return finish(zos.StateUnChanged, err)
	} else if err != nil {
		log.Error().Err(err).Object("workload", wl).Msg("failed to store workload")
		return finish(zos.StateError, err)
	}

	if err := e.provision(ctx, &wl); err != nil {
		log.Error().Err(err).Object("workload", wl).Msg("failed to provision workload")
		return finish(zos.StateError, err)
	}

	log.Info().Object("workload", wl).Msg("workload provisioned")
	return finish(zos.StateOk, nil)
}

func (e *Engine) provision(ctx context.Context, wl *zos.Workload) error {
	b := backoff.WithContext(backoff.WithMaxRetries(e.newBackOff(), e.retries), ctx)

	return backoff.RetryNotify(func() error {
		return Dispatch(ctx, e.provisioner, wl)
	}, b, func(err error, next time.Duration) {
		log.Warn().Err(err).Object("workload", wl).Dur("next", next).Msg("provision failed, retrying")
	})
}

// ApplyAll applies a batch of encoded workloads concurrently, results are in
// the order of the batch
func (e *Engine) ApplyAll(ctx context.Context, batch [][]byte) ([]zos.Result, error) {
	results := make([]zos.Result, len(batch))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, data := range batch {
		i, data := i, data
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Apply(ctx, data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes a workload from the store
func (e *Engine) Delete(ctx context.Context, nodeID string, workloadID int64) (zos.Result, error) {
	result := zos.Result{NodeID: nodeID, WorkloadID: workloadID}

	unlock := e.locks.lock(identity(nodeID, workloadID))
	defer unlock()

	wl, err := e.store.Get(ctx, nodeID, workloadID)
	if err == nil {
		result.Version = wl.Version
		err = e.store.Delete(ctx, nodeID, workloadID)
	}

	result.Created = e.now().Unix()
	if err != nil {
		result.State = zos.StateError
		result.Error = err.Error()
		return result, err
	}

	log.Info().Object("workload", wl).Msg("workload deleted")
	result.State = zos.StateDeleted
	return result, nil
}

func identity(nodeID string, workloadID int64) string {
	return fmt.Sprintf("%s/%d", nodeID, workloadID)
}
