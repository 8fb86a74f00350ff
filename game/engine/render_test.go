package engine

import (
	"strings"
	"testing"
)

func TestRenderMap_InitialView(t *testing.T) {
	board := mustParseBoard(t, testBoard)
	d := NewDiscovery(board.Size)
	d.ResetTo(board.Entrance)

	expected := "+\t_\t?\t?\t?\t\n" +
		"#\t_\t?\t?\t?\t\n" +
		"?\t?\t?\t?\t?\t\n" +
		"?\t?\t?\t?\t?\t\n" +
		"?\t?\t?\t?\t?\t\n"

	got := RenderMap(board, d, board.Entrance, false)
	if got != expected {
		t.Errorf("Unexpected map:\n%q\nexpected:\n%q", got, expected)
	}
}

func TestRenderMap_RevealAll(t *testing.T) {
	board := mustParseBoard(t, testBoard)
	d := NewDiscovery(board.Size)

	expected := ">\t_\t#\t#\t#\t\n" +
		"#\t_\t#\t+\tX\t\n" +
		"#\t_\t_\t_\t#\t\n" +
		"#\t#\t#\t_\t#\t\n" +
		"#\t#\t#\t#\t#\t\n"

	got := RenderMap(board, d, Position{X: 3, Y: 1}, true)
	if got != expected {
		t.Errorf("Unexpected map:\n%q\nexpected:\n%q", got, expected)
	}
	if strings.ContainsRune(got, GlyphUndiscovered) {
		t.Error("Expected no placeholder glyphs when revealing everything")
	}
}

func TestRenderMap_PlayerOnExit(t *testing.T) {
	board := mustParseBoard(t, testBoard)

	got := RenderMap(board, NewDiscovery(board.Size), board.Exit, true)
	rows := strings.Split(got, "\n")
	if rows[1] != "#\t_\t#\t_\tX\t" {
		t.Errorf("Expected exit glyph under the player, got %q", rows[1])
	}
	if strings.ContainsRune(got, GlyphPlayer) {
		t.Error("Expected no player glyph while standing on the exit")
	}
}

func TestKindGlyph(t *testing.T) {
	tests := []struct {
		kind     CellKind
		expected byte
	}{
		{Wall, '#'},
		{Path, '_'},
		{Entrance, '>'},
		{Exit, 'X'},
		{Undiscovered, ' '},
	}

	for _, tt := range tests {
		if got := KindGlyph(tt.kind); got != tt.expected {
			t.Errorf("KindGlyph(%v) = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}
