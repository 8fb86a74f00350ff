package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrInvalidDimensions     = errors.New("invalid board dimensions")
	ErrInvalidCellValue      = errors.New("invalid cell value")
	ErrMultipleEntrances     = errors.New("multiple entrances found")
	ErrMultipleExits         = errors.New("multiple exits found")
	ErrMissingEntranceOrExit = errors.New("board must have exactly one entrance and one exit")
)

// Board is a validated square maze grid
type Board struct {
	Size     int          `json:"size"`
	Cells    [][]CellKind `json:"cells"`
	Entrance Position     `json:"entrance"`
	Exit     Position     `json:"exit"`
}

// InBounds reports whether p lies on the board
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.Size && p.Y >= 0 && p.Y < b.Size
}

// KindAt returns the kind of the cell at p. Out-of-bounds positions read as Wall.
func (b *Board) KindAt(p Position) CellKind {
	if !b.InBounds(p) {
		return Wall
	}
	return b.Cells[p.Y][p.X]
}

// CanEnter reports whether the player may move onto p
func (b *Board) CanEnter(p Position) bool {
	return b.InBounds(p) && b.Cells[p.Y][p.X].Traversable()
}

// PossibleMoves returns the directions that lead from p onto a Path or Exit
// cell, in up, right, down, left order.
func (b *Board) PossibleMoves(p Position) []Direction {
	var moves []Direction
	for _, d := range Directions {
		if b.CanEnter(p.Step(d)) {
			moves = append(moves, d)
		}
	}
	return moves
}

// ParseBoard reads whitespace-separated integer rows and validates them
// against policy.
func ParseBoard(r io.Reader, policy BoardPolicy) (*Board, error) {
	var rows [][]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: board is empty", ErrInvalidDimensions)
	}

	size := len(rows[0])
	if len(rows) != size || size < policy.MinSize || size > policy.MaxSize {
		return nil, fmt.Errorf("%w: board must be square between [%d x %d] and [%d x %d], got %d rows of %d",
			ErrInvalidDimensions, policy.MinSize, policy.MinSize, policy.MaxSize, policy.MaxSize, len(rows), size)
	}

	board := &Board{
		Size:  size,
		Cells: make([][]CellKind, size),
	}

	entrances, exits := 0, 0
	for y, fields := range rows {
		if len(fields) != size {
			return nil, fmt.Errorf("%w: row %d must have %d cells, got %d",
				ErrInvalidDimensions, y+1, size, len(fields))
		}

		board.Cells[y] = make([]CellKind, size)
		for x, token := range fields {
			value, err := strconv.Atoi(token)
			if err != nil || value < int(Wall) || value > int(Exit) {
				return nil, fmt.Errorf("%w: '%s' at row %d, col %d", ErrInvalidCellValue, token, y+1, x+1)
			}

			kind := CellKind(value)
			board.Cells[y][x] = kind

			switch kind {
			case Entrance:
				entrances++
				if entrances > 1 {
					return nil, fmt.Errorf("%w: second entrance at row %d, col %d", ErrMultipleEntrances, y+1, x+1)
				}
				board.Entrance = Position{X: x, Y: y}
			case Exit:
				exits++
				if exits > 1 {
					return nil, fmt.Errorf("%w: second exit at row %d, col %d", ErrMultipleExits, y+1, x+1)
				}
				board.Exit = Position{X: x, Y: y}
			}
		}
	}

	if entrances != 1 || exits != 1 {
		return nil, ErrMissingEntranceOrExit
	}

	return board, nil
}

// LoadBoardFile loads and validates a board file
func LoadBoardFile(path string, policy BoardPolicy) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	board, err := ParseBoard(f, policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return board, nil
}

// String renders the board back into the file format
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Cells {
		for x, kind := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(int(kind)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
