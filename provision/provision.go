// Package provision applies workloads on a node: it orders them by version
// and hands every kind to its provisioner method.
package provision

import (
	"context"

	"github.com/cenkalti/backoff"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
)

// Provisioner handles every workload kind, see zos.Provisioner
type Provisioner = zos.Provisioner

// Dispatch calls the provisioner method of the workload kind
func Dispatch(ctx context.Context, p Provisioner, wl *zos.Workload) error {
	return zos.Dispatch(ctx, p, wl)
}

// Permanent marks a provisioning error that must not be retried
func Permanent(err error) error {
	return backoff.Permanent(err)
}
