package main

import "github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/cmd"

func main() {
	cmd.Execute()
}
