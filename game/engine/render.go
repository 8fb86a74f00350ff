package engine

import "strings"

// Map glyphs
const (
	GlyphUndiscovered = '?'
	GlyphPlayer       = '+'
	GlyphWall         = '#'
	GlyphPath         = '_'
	GlyphEntrance     = '>'
	GlyphExit         = 'X'

	cellSeparator = '\t'
)

// RenderMap draws the board as seen by the player. Undiscovered cells are
// masked unless revealAll is set.
func RenderMap(board *Board, discovery *Discovery, player Position, revealAll bool) string {
	var sb strings.Builder
	sb.Grow(board.Size * (board.Size*2 + 1))

	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			p := Position{X: x, Y: y}
			sb.WriteByte(cellGlyph(board, discovery, player, p, revealAll))
			sb.WriteByte(cellSeparator)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func cellGlyph(board *Board, discovery *Discovery, player, p Position, revealAll bool) byte {
	if !revealAll && (discovery == nil || !discovery.IsDiscovered(p)) {
		return GlyphUndiscovered
	}

	kind := board.KindAt(p)
	if p == player {
		if kind == Exit {
			return GlyphExit
		}
		return GlyphPlayer
	}

	return KindGlyph(kind)
}

// KindGlyph returns the map glyph for a cell kind
func KindGlyph(kind CellKind) byte {
	switch kind {
	case Wall:
		return GlyphWall
	case Path:
		return GlyphPath
	case Entrance:
		return GlyphEntrance
	case Exit:
		return GlyphExit
	default:
		return ' '
	}
}
