package engine

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCellKindConstants(t *testing.T) {
	tests := []struct {
		kind        CellKind
		value       int
		name        string
		traversable bool
	}{
		{Wall, 0, "wall", false},
		{Path, 1, "path", true},
		{Entrance, 2, "entrance", false},
		{Exit, 3, "exit", true},
		{Undiscovered, 4, "undiscovered", false},
		{PlayerMarker, 5, "player", false},
	}

	for _, tt := range tests {
		if int(tt.kind) != tt.value {
			t.Errorf("Expected %s to have value %d, got %d", tt.name, tt.value, int(tt.kind))
		}
		if tt.kind.String() != tt.name {
			t.Errorf("Expected name %q, got %q", tt.name, tt.kind.String())
		}
		if tt.kind.Traversable() != tt.traversable {
			t.Errorf("Expected %s traversable=%v", tt.name, tt.traversable)
		}
	}

	if !strings.HasPrefix(CellKind(9).String(), "unknown") {
		t.Errorf("Expected unknown kind name, got %q", CellKind(9).String())
	}
}

func TestValidationConstants(t *testing.T) {
	if MinBoardSize != 5 {
		t.Errorf("Expected MinBoardSize to be 5, got %d", MinBoardSize)
	}
	if MaxBoardSize != 10 {
		t.Errorf("Expected MaxBoardSize to be 10, got %d", MaxBoardSize)
	}
	if DefaultBoardPolicy.MinSize != MinBoardSize || DefaultBoardPolicy.MaxSize != MaxBoardSize {
		t.Errorf("Unexpected default policy %+v", DefaultBoardPolicy)
	}
}

func TestDirections(t *testing.T) {
	tests := []struct {
		dir    Direction
		name   string
		dx, dy int
	}{
		{Up, "up", 0, -1},
		{Right, "right", 1, 0},
		{Down, "down", 0, 1},
		{Left, "left", -1, 0},
	}

	for i, tt := range tests {
		if Directions[i] != tt.dir {
			t.Errorf("Expected direction %d in priority order to be %s, got %s", i, tt.name, Directions[i])
		}
		if tt.dir.String() != tt.name {
			t.Errorf("Expected %q, got %q", tt.name, tt.dir.String())
		}
		dx, dy := tt.dir.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("Expected %s delta (%d,%d), got (%d,%d)", tt.name, tt.dx, tt.dy, dx, dy)
		}

		parsed, ok := ParseDirection(tt.name)
		if !ok || parsed != tt.dir {
			t.Errorf("ParseDirection(%q) = %v, %v", tt.name, parsed, ok)
		}
	}

	for _, s := range []string{"Up", "north", "", "map"} {
		if _, ok := ParseDirection(s); ok {
			t.Errorf("Expected ParseDirection(%q) to fail", s)
		}
	}
}

func TestPosition_Step(t *testing.T) {
	p := Position{X: 2, Y: 3}

	if got := p.Step(Up); got != (Position{X: 2, Y: 2}) {
		t.Errorf("Expected (2,2), got %v", got)
	}
	if got := p.Step(Left).Step(Left).Step(Left); got != (Position{X: -1, Y: 3}) {
		t.Errorf("Expected (-1,3), got %v", got)
	}
}

func TestRoute_Strings(t *testing.T) {
	path := Route{Right, Down, Down, Right}
	if got := strings.Join(path.Strings(), ", "); got != "right, down, down, right" {
		t.Errorf("Unexpected path text %q", got)
	}
	if len(Route(nil).Strings()) != 0 {
		t.Error("Expected empty path to have no names")
	}
}

func TestGameStateJSONMarshaling(t *testing.T) {
	state := GameState{
		Started:    true,
		PlayerPos:  Position{X: 1, Y: 2},
		BoardSize:  5,
		Discovered: 9,
	}

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Failed to marshal GameState: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal GameState: %v", err)
	}

	for _, key := range []string{"started", "completed", "player_pos", "board_size", "discovered"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected JSON field %q", key)
		}
	}
	if _, ok := fields["map"]; ok {
		t.Error("Expected empty map to be omitted")
	}
}
