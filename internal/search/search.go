// Package search finds a path through a maze.Grid with uninformed graph
// search. The frontier discipline decides the exploration order:
// DepthFirst (stack) returns some path, BreadthFirst (queue) returns a
// shortest one.
package search

import (
	"fmt"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/maze"
)

// Solution is a start-to-goal path. States[i] is the cell reached by
// Actions[i]; the start cell is not listed and the goal is last.
type Solution struct {
	Actions []maze.Action
	States  []maze.Cell
	// Explored counts nodes removed from the frontier, the goal included.
	Explored int
}

// Option configures Solve.
type Option func(*Options)

// Options holds hooks run during Solve.
type Options struct {
	// OnExpand is called for every node whose neighbors are generated.
	OnExpand func(node Node)
	// OnEnqueue is called for every child added to the frontier.
	OnEnqueue func(node Node)
}

// DefaultOptions returns no-op hooks.
func DefaultOptions() Options {
	return Options{
		OnExpand:  func(Node) {},
		OnEnqueue: func(Node) {},
	}
}

// WithOnExpand registers a callback run when a node is expanded.
func WithOnExpand(fn func(node Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnEnqueue registers a callback run when a child node is enqueued.
func WithOnEnqueue(fn func(node Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// Solve searches g from its start to its goal with the given strategy.
// It returns ErrNoSolution when the goal is unreachable.
func Solve(g *maze.Grid, strategy Strategy, opts ...Option) (*Solution, error) {
	frontier, err := NewFrontier(strategy)
	if err != nil {
		return nil, err
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &walker{
		grid:     g,
		opts:     o,
		frontier: frontier,
		explored: make(map[maze.Cell]struct{}),
	}

	return w.run()
}

// walker holds the mutable state of one Solve call.
type walker struct {
	grid     *maze.Grid
	opts     Options
	frontier Frontier
	explored map[maze.Cell]struct{}
	arena    arena
	removed  int
}

func (w *walker) run() (*Solution, error) {
	w.frontier.Add(w.arena.root(w.grid.Start()))

	for {
		if w.frontier.Empty() {
			return nil, fmt.Errorf("%w: explored %d cells", apperror.ErrNoSolution, len(w.explored))
		}

		node, err := w.frontier.Remove()
		if err != nil {
			return nil, fmt.Errorf("remove from frontier: %w", err)
		}
		w.removed++

		if node.State == w.grid.Goal() {
			actions, states := w.arena.path(node)
			return &Solution{Actions: actions, States: states, Explored: w.removed}, nil
		}

		if w.isExplored(node.State) {
			continue
		}

		w.expand(node)
	}
}

// expand marks node explored and enqueues every neighbor that is neither
// pending nor explored.
func (w *walker) expand(node Node) {
	w.explored[node.State] = struct{}{}
	w.opts.OnExpand(node)

	for _, n := range w.grid.Neighbors(node.State) {
		if w.frontier.ContainsState(n.Cell) || w.isExplored(n.Cell) {
			continue
		}

		child := w.arena.child(node, n)
		w.frontier.Add(child)
		w.opts.OnEnqueue(child)
	}
}

func (w *walker) isExplored(state maze.Cell) bool {
	_, ok := w.explored[state]
	return ok
}
