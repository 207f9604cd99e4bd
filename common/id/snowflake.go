package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// NewString generates an opaque, compact observation ID. Base36 keeps ids
// short enough to embed in API responses without reading as counters.
func NewString() string {
	return node.Generate().Base36()
}
