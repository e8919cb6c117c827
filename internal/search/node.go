package search

import (
	"slices"

	"github.com/coolavy/CS50AI/internal/maze"
)

// noParent marks the root node.
const noParent = -1

// Node is one step of a path. Parent is the arena handle of the node it was
// reached from; a child always refers to an earlier handle.
type Node struct {
	ID     int
	State  maze.Cell
	Parent int
	Action maze.Action
}

// IsRoot reports whether the node is the start of the search.
func (that Node) IsRoot() bool {
	return that.Parent == noParent
}

// arena owns every node created during one search.
type arena struct {
	nodes []Node
}

func (that *arena) root(state maze.Cell) Node {
	return that.push(state, noParent, "")
}

func (that *arena) child(parent Node, n maze.Neighbor) Node {
	return that.push(n.Cell, parent.ID, n.Action)
}

func (that *arena) push(state maze.Cell, parent int, action maze.Action) Node {
	node := Node{ID: len(that.nodes), State: state, Parent: parent, Action: action}
	that.nodes = append(that.nodes, node)

	return node
}

// path walks parent handles back to the root and returns the actions and
// states in start-to-goal order. The root's state is not included.
func (that *arena) path(goal Node) ([]maze.Action, []maze.Cell) {
	var (
		actions []maze.Action
		states  []maze.Cell
	)

	for node := goal; !node.IsRoot(); node = that.nodes[node.Parent] {
		actions = append(actions, node.Action)
		states = append(states, node.State)
	}

	slices.Reverse(actions)
	slices.Reverse(states)

	return actions, states
}
