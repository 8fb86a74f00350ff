// Command validate checks every board file (*.txt) in a directory. The
// directory is the first argument, or MAZE_BOARD_DIR / input/ when omitted.
// It checks:
//   - the grid is square and within the configured size bounds
//   - every cell is 0 (wall), 1 (path), 2 (entrance) or 3 (exit)
//   - there is exactly one entrance and one exit
//   - the exit can be reached from the entrance
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/maze-escape/game/config"
	"github.com/wricardo/maze-escape/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Info holds what was learned about a valid board; Errors why it is not.
type ValidationResult struct {
	File   string
	Valid  bool
	Info   []string
	Errors []string
}

// validateBoard loads one board file and checks it against policy
func validateBoard(filePath string, policy engine.BoardPolicy) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	board, err := engine.LoadBoardFile(filePath, policy)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Size %dx%d", board.Size, board.Size),
		fmt.Sprintf("✓ Entrance at (%d, %d), exit at (%d, %d)", board.Entrance.X, board.Entrance.Y, board.Exit.X, board.Exit.Y),
	)

	path, ok := engine.FindPathToExit(board, board.Entrance)
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, "exit is not reachable from the entrance")
		return result
	}
	result.Info = append(result.Info, fmt.Sprintf("✓ Exit reachable in %d moves", len(path)))

	return result
}

// run validates every board in dir and prints a report. It returns false
// when any board is invalid or none were found.
func run(w io.Writer, dir string, policy engine.BoardPolicy) bool {
	files, err := filepath.Glob(filepath.Join(dir, "*"+config.BoardExt))
	if err != nil {
		fmt.Fprintf(w, "Error finding board files: %v\n", err)
		return false
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No board files found in %s\n", dir)
		return false
	}
	sort.Strings(files)

	allValid := true
	for _, file := range files {
		result := validateBoard(file, policy)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All boards are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some boards have errors")
	}
	return allValid
}

func main() {
	env := config.LoadEnv()

	dir := env.BoardDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if !run(os.Stdout, dir, env.BoardPolicy()) {
		os.Exit(1)
	}
}
