package search

import (
	"fmt"
	"strings"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/maze"
)

// Strategy selects the frontier discipline.
type Strategy string

const (
	// DepthFirst explores from a LIFO stack.
	DepthFirst Strategy = "dfs"
	// BreadthFirst explores from a FIFO queue and finds shortest paths.
	BreadthFirst Strategy = "bfs"
)

// ParseStrategy accepts "dfs"/"stack" and "bfs"/"queue", case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfs", "stack":
		return DepthFirst, nil
	case "bfs", "queue":
		return BreadthFirst, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, s)
	}
}

// Frontier holds discovered nodes that have not been expanded yet.
type Frontier interface {
	Add(node Node)
	Remove() (Node, error)
	Empty() bool
	// ContainsState reports whether a pending node carries state.
	ContainsState(state maze.Cell) bool
	Len() int
}

// NewFrontier returns the frontier for strategy.
func NewFrontier(strategy Strategy) (Frontier, error) {
	switch strategy {
	case DepthFirst:
		return NewStackFrontier(), nil
	case BreadthFirst:
		return NewQueueFrontier(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, strategy)
	}
}

// nodeList is the storage both disciplines share.
type nodeList struct {
	nodes []Node
}

func (that *nodeList) Add(node Node) {
	that.nodes = append(that.nodes, node)
}

func (that *nodeList) Empty() bool {
	return len(that.nodes) == 0
}

func (that *nodeList) Len() int {
	return len(that.nodes)
}

func (that *nodeList) ContainsState(state maze.Cell) bool {
	for _, n := range that.nodes {
		if n.State == state {
			return true
		}
	}

	return false
}

// StackFrontier removes the most recently added node.
type StackFrontier struct {
	nodeList
}

func NewStackFrontier() *StackFrontier {
	return &StackFrontier{}
}

func (that *StackFrontier) Remove() (Node, error) {
	if that.Empty() {
		return Node{}, apperror.ErrEmptyFrontier
	}

	last := len(that.nodes) - 1
	node := that.nodes[last]
	that.nodes = that.nodes[:last]

	return node, nil
}

// QueueFrontier removes the earliest added node.
type QueueFrontier struct {
	nodeList
}

func NewQueueFrontier() *QueueFrontier {
	return &QueueFrontier{}
}

func (that *QueueFrontier) Remove() (Node, error) {
	if that.Empty() {
		return Node{}, apperror.ErrEmptyFrontier
	}

	node := that.nodes[0]
	that.nodes = that.nodes[1:]

	return node, nil
}
