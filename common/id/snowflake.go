// Package id issues organization IDs from a process-wide snowflake node.
package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node    *snowflake.Node
	nodeErr error
	once    sync.Once
)

// Init sets up the node for this process. Later calls return the first
// call's result whatever nodeID they pass.
func Init(nodeID int64) error {
	once.Do(func() {
		node, nodeErr = snowflake.NewNode(nodeID)
	})
	return nodeErr
}

// New panics if Init has not succeeded.
func New() int64 {
	if node == nil {
		panic("id: New called before Init")
	}
	return node.Generate().Int64()
}

// Parse reads a decimal ID as it appears in URLs and JSON. Only positive
// values are accepted.
func Parse(s string) (int64, error) {
	sf, err := snowflake.ParseString(s)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, err)
	}
	if sf.Int64() <= 0 {
		return 0, fmt.Errorf("parse id %q: must be positive", s)
	}
	return sf.Int64(), nil
}
