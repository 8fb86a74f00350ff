package engine

// CountKind counts the cells of a specific kind on the board
func CountKind(board *Board, kind CellKind) int {
	count := 0
	for _, row := range board.Cells {
		for _, cell := range row {
			if cell == kind {
				count++
			}
		}
	}
	return count
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// DeadEnds returns the path cells with exactly one traversable neighbor
func DeadEnds(board *Board) []Position {
	var ends []Position
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			p := Position{X: x, Y: y}
			if board.KindAt(p) != Path {
				continue
			}
			if len(board.PossibleMoves(p)) == 1 {
				ends = append(ends, p)
			}
		}
	}
	return ends
}

// ExitReachable reports whether the exit can be reached from the entrance
func ExitReachable(board *Board) bool {
	_, ok := FindPathToExit(board, board.Entrance)
	return ok
}
