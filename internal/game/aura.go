// path: internal/game/aura.go
package game

// BardBonus is 1 when any square of the 3x3 neighborhood centered on sq
// (sq itself included) holds a friendly bard, else 0. The bonus extends
// movement radii only; attack radii never receive it.
func BardBonus(b *Board, sq Square, color Color) int {
	row := sq.Row()
	col := sq.Col()
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n, ok := SquareFromCoords(row+dr, col+dc)
			if !ok {
				continue
			}
			if pc, ok := b.At(n); ok && pc.Kind == Bard && pc.Color == color {
				return 1
			}
		}
	}
	return 0
}
