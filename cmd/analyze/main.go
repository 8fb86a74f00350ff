// Command analyze prints quick, human-readable heuristics about the board
// files in a directory (input/ by default). It summarizes dimensions, the
// entrance and exit, the shortest escape route, how much of the maze is
// reachable from the entrance, and where the dead ends are.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/maze-escape/game/engine"
)

// Analysis holds the heuristics computed for one board
type Analysis struct {
	Size         int
	Entrance     engine.Position
	Exit         engine.Position
	Walls        int
	Open         int // path, entrance and exit cells
	Reachable    int
	ShortestPath engine.Route
	Solvable     bool
	DeadEnds     []engine.Position
}

func main() {
	dir := "input"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := analyzeDir(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func analyzeDir(w io.Writer, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no board files in %s", dir)
	}
	sort.Strings(files)

	for _, path := range files {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", filepath.Base(path))
		board, err := engine.LoadBoardFile(path, engine.DefaultBoardPolicy)
		if err != nil {
			fmt.Fprintf(w, "Error loading board: %v\n", err)
			continue
		}
		printAnalysis(w, analyzeBoard(board))
	}
	return nil
}

func analyzeBoard(board *engine.Board) Analysis {
	a := Analysis{
		Size:     board.Size,
		Entrance: board.Entrance,
		Exit:     board.Exit,
		Walls:    engine.CountKind(board, engine.Wall),
		DeadEnds: engine.DeadEnds(board),
	}
	a.Open = board.Size*board.Size - a.Walls
	a.Reachable = len(engine.ReachableCells(board, board.Entrance))
	a.ShortestPath, a.Solvable = engine.FindPathToExit(board, board.Entrance)
	return a
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Board Size: %d x %d\n", a.Size, a.Size)
	fmt.Fprintf(w, "Entrance: (%d, %d)\n", a.Entrance.X, a.Entrance.Y)
	fmt.Fprintf(w, "Exit: (%d, %d)\n", a.Exit.X, a.Exit.Y)
	fmt.Fprintf(w, "Walls: %d, Open cells: %d\n", a.Walls, a.Open)
	fmt.Fprintf(w, "Manhattan distance entrance to exit: %d\n", engine.ManhattanDistance(a.Entrance, a.Exit))

	if a.Solvable {
		fmt.Fprintf(w, "✅ Shortest escape: %d moves (%s)\n", len(a.ShortestPath), strings.Join(a.ShortestPath.Strings(), ", "))
	} else {
		fmt.Fprintf(w, "⚠️  CRITICAL: the exit cannot be reached from the entrance!\n")
	}

	unreachable := a.Open - a.Reachable
	if unreachable > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d of %d open cells are unreachable from the entrance\n", unreachable, a.Open)
	} else {
		fmt.Fprintf(w, "✅ All open cells are reachable from the entrance\n")
	}

	fmt.Fprintf(w, "Dead ends: %d\n", len(a.DeadEnds))
	for i, p := range a.DeadEnds {
		if i == 5 {
			fmt.Fprintf(w, "   ... and %d more\n", len(a.DeadEnds)-5)
			break
		}
		fmt.Fprintf(w, "   Dead end: (%d, %d)\n", p.X, p.Y)
	}
}
