package snowflake

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// SetNode 多实例部署时每个实例需要不同的 nodeID (0-1023)
func SetNode(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	node = n
	return nil
}

// GenID 生成笔记、用户、讨论等主键
func GenID() uint64 {
	return uint64(node.Generate().Int64())
}
