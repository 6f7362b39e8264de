package mocks

//go:generate mockgen -package mocks -destination provisioner_mock.go github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos Provisioner
//go:generate mockgen -package mocks -destination store_mock.go github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/store Store
