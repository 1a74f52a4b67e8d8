package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"

	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
)

var _ ports.IDGenerator = (*Snowflake)(nil)

// Snowflake genera ids enteros crecientes; cada instancia del servicio debe usar un nodeID distinto (0-1023).
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake crea el generador para el nodo indicado.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

// NextID devuelve un id nuevo.
func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}
