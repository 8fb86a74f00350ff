package engine

import (
	list "github.com/bahlo/generic-list-go"
	"github.com/zyedidia/generic/mapset"
)

// frontier is a BFS queue element: a cell plus the route taken to reach it
type frontier struct {
	pos  Position
	path Route
}

// FindPathToExit runs a breadth-first search from start to the board's exit.
// Neighbors are expanded in up, right, down, left order, so ties between
// equally short routes always resolve the same way. The second return value
// is false when the exit cannot be reached.
func FindPathToExit(board *Board, start Position) (Route, bool) {
	if !board.InBounds(start) {
		return nil, false
	}

	queue := list.New[frontier]()
	queue.PushBack(frontier{pos: start, path: Route{}})

	visited := mapset.New[Position]()
	visited.Put(start)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front())

		if board.KindAt(current.pos) == Exit {
			return current.path, true
		}

		for _, d := range Directions {
			next := current.pos.Step(d)
			if visited.Has(next) || !board.CanEnter(next) {
				continue
			}
			visited.Put(next)

			path := make(Route, len(current.path), len(current.path)+1)
			copy(path, current.path)
			queue.PushBack(frontier{pos: next, path: append(path, d)})
		}
	}

	return nil, false
}

// ReachableCells returns every cell the player can reach from start,
// start included.
func ReachableCells(board *Board, start Position) []Position {
	if !board.InBounds(start) {
		return nil
	}

	queue := list.New[Position]()
	queue.PushBack(start)

	visited := mapset.New[Position]()
	visited.Put(start)

	reachable := []Position{start}
	for queue.Len() > 0 {
		current := queue.Remove(queue.Front())
		for _, d := range Directions {
			next := current.Step(d)
			if visited.Has(next) || !board.CanEnter(next) {
				continue
			}
			visited.Put(next)
			reachable = append(reachable, next)
			queue.PushBack(next)
		}
	}

	return reachable
}
