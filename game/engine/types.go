package engine

import "fmt"

// CellKind represents the kind of a board cell as it appears in board files
type CellKind int

const (
	Wall     CellKind = 0
	Path     CellKind = 1
	Entrance CellKind = 2
	Exit     CellKind = 3

	// Reserved marker values. They exist in the file format's value range
	// but the loader rejects them.
	Undiscovered CellKind = 4
	PlayerMarker CellKind = 5
)

// Validation constants
const (
	MinBoardSize = 5
	MaxBoardSize = 10
)

// String returns the lowercase name of the cell kind
func (k CellKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Path:
		return "path"
	case Entrance:
		return "entrance"
	case Exit:
		return "exit"
	case Undiscovered:
		return "undiscovered"
	case PlayerMarker:
		return "player"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Traversable reports whether the player may step onto a cell of this kind.
// The entrance is not traversable once left.
func (k CellKind) Traversable() bool {
	return k == Path || k == Exit
}

// Position represents x,y coordinates (x = column, y = row)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the position one cell away in the given direction
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Direction is one of the four movement directions
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in the fixed clockwise priority used for
// move summaries and hint tie-breaking.
var Directions = [4]Direction{Up, Right, Down, Left}

// Delta returns the x,y offset of a single step in the direction
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection maps a command token to a Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	}
	return 0, false
}

// Route is an ordered sequence of directions
type Route []Direction

// Strings returns the direction names of the route
func (p Route) Strings() []string {
	names := make([]string, len(p))
	for i, d := range p {
		names[i] = d.String()
	}
	return names
}

// BoardPolicy bounds the accepted board dimension
type BoardPolicy struct {
	MinSize int `json:"min_size"`
	MaxSize int `json:"max_size"`
}

// DefaultBoardPolicy accepts square boards between 5x5 and 10x10
var DefaultBoardPolicy = BoardPolicy{MinSize: MinBoardSize, MaxSize: MaxBoardSize}

// GameState is a read-only snapshot of an engine, used by the API layers
type GameState struct {
	Started    bool     `json:"started"`
	Completed  bool     `json:"completed"`
	PlayerPos  Position `json:"player_pos"`
	BoardSize  int      `json:"board_size"`
	Discovered int      `json:"discovered"`
	Map        string   `json:"map,omitempty"`
}
