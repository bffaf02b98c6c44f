package repl

import (
	"strings"

	"github.com/benbeisheim/capturechess-backend/internal/model"
)

const ranks = "87654321"

// Render draws the board with box characters. The piece on src, if any, is
// marked with '?' and every square in dst is bracketed.
func Render(b *model.BoardState, src *model.Square, dst []model.Square) string {
	highlighted := make(map[model.Square]bool, len(dst))
	for _, sq := range dst {
		highlighted[sq] = true
	}

	var sb strings.Builder
	sb.WriteString("(blacks captured: " + glyphs(b.Captured(model.Black)) + ")\n")
	sb.WriteString("╔═A═╤═B═╤═C═╤═D═╤═E═╤═F═╤═G═╤═H═╗\n")
	grid := b.Grid()
	for row := 0; row < 8; row++ {
		sb.WriteByte(ranks[row])
		for col := 0; col < 8; col++ {
			sq := model.Square{Row: row, Col: col}
			glyph := grid[row][col].Glyph()
			switch {
			case src != nil && *src == sq:
				sb.WriteString(" " + glyph + "?")
			case highlighted[sq]:
				sb.WriteString("[" + glyph + "]")
			default:
				sb.WriteString(" " + glyph + " ")
			}
			if col < 7 {
				sb.WriteString("│")
			}
		}
		sb.WriteByte(ranks[row])
		sb.WriteByte('\n')
		if row < 7 {
			sb.WriteString("╟───┼───┼───┼───┼───┼───┼───┼───╢\n")
		}
	}
	sb.WriteString("╚═A═╧═B═╧═C═╧═D═╧═E═╧═F═╧═G═╧═H═╝\n")
	sb.WriteString(" (whites captured: " + glyphs(b.Captured(model.White)) + ")\n")
	return sb.String()
}

func glyphs(pieces []model.Piece) string {
	var sb strings.Builder
	for _, p := range pieces {
		sb.WriteString(p.Glyph())
	}
	return sb.String()
}
