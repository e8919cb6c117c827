package entity

import "github.com/coolavy/CS50AI/internal/maze"

// MazeSolution is a solved maze as returned to clients and cached.
type MazeSolution struct {
	ID       string        `json:"id"`
	Strategy string        `json:"strategy"`
	Actions  []maze.Action `json:"actions"`
	Path     []maze.Cell   `json:"path"`
	Steps    int           `json:"steps"`
	Explored int           `json:"explored"`
	Rendered string        `json:"rendered"`
}
