package zos

// ResultState type
type ResultState string

const (
	// StateInit is the first state of the workload on storage
	StateInit ResultState = "init"
	// StateUnChanged means the workload was not applied because a newer or
	// equal version of it was already applied
	StateUnChanged ResultState = "unchanged"
	// StateError constant
	StateError ResultState = "error"
	// StateOk constant
	StateOk ResultState = "ok"
	// StateDeleted constant
	StateDeleted ResultState = "deleted"
)

// IsOkay checks if the state is ok
func (s ResultState) IsOkay() bool {
	return s == StateOk
}

// Result is reported back by the node agent for a (node_id, workload_id, version)
type Result struct {
	NodeID     string      `json:"node_id"`
	WorkloadID int64       `json:"workload_id"`
	Version    int64       `json:"version"`
	State      ResultState `json:"state"`
	Error      string      `json:"message,omitempty"`
	// Created is the unix time the result was produced
	Created int64 `json:"created"`
}
