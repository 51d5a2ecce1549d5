// path: internal/game/board.go
package game

// Board is an 8x8 grid of optional pieces, row-major. It is a value type:
// every transformation returns a fresh board and a snapshot handed out to
// callers is never mutated afterwards.
type Board struct {
	squares [64]Piece
	filled  Bitboard
}

// At returns the piece on sq, if any.
func (b *Board) At(sq Square) (Piece, bool) {
	if !b.filled.Has(sq) {
		return Piece{}, false
	}
	return b.squares[sq], true
}

// Occupied reports whether sq holds a piece.
func (b *Board) Occupied(sq Square) bool { return b.filled.Has(sq) }

// EnemyAt reports whether sq holds a piece of the color opposing c.
func (b *Board) EnemyAt(sq Square, c Color) bool {
	pc, ok := b.At(sq)
	return ok && pc.Color != c
}

// WithPieceMoved returns a new board where to holds a copy of the piece
// formerly at from and from is empty. Whatever occupied to is discarded,
// which covers quiet moves and captures alike.
func (b Board) WithPieceMoved(from, to Square) Board {
	pc, ok := b.At(from)
	if !ok || from == to {
		return b
	}
	b.squares[from] = Piece{}
	b.filled = b.filled.Remove(from)
	b.squares[to] = pc
	b.filled = b.filled.Add(to)
	return b
}

// WithPiece returns a new board with pc placed on sq.
func (b Board) WithPiece(sq Square, pc Piece) Board {
	b.squares[sq] = pc
	b.filled = b.filled.Add(sq)
	return b
}

// WithUpdated returns a new board with the piece at sq replaced by the
// result of fn. No-op when sq is empty.
func (b Board) WithUpdated(sq Square, fn func(Piece) Piece) Board {
	pc, ok := b.At(sq)
	if !ok {
		return b
	}
	b.squares[sq] = fn(pc)
	return b
}

// Each visits every occupied square in ascending order.
func (b *Board) Each(fn func(Square, Piece)) {
	b.filled.Iter(func(sq Square) {
		fn(sq, b.squares[sq])
	})
}

// FindKing locates the king of the given color.
func (b *Board) FindKing(color Color) (Square, bool) {
	var found Square
	ok := false
	b.Each(func(sq Square, pc Piece) {
		if !ok && pc.Kind == King && pc.Color == color {
			found = sq
			ok = true
		}
	})
	return found, ok
}

// backRank is the shared home-rank layout, mirrored for both colors.
var backRank = [8]PieceKind{Archer, Assassin, Paladin, King, Mage, Bard, Warrior, Archer}

// NewBoard builds the canonical initial placement: the back rank above on
// each home edge, defenders on the second rank flanking a 4-wide gap of
// spearmen. Mages start on cooldown 2.
func NewBoard() Board {
	var b Board

	setup := func(color Color, home, second int) {
		for col, kind := range backRank {
			sq, _ := SquareFromCoords(home, col)
			pc := Piece{Kind: kind, Color: color}
			if kind == Mage {
				pc.Cooldown = 2
			}
			b = b.WithPiece(sq, pc)
		}
		for col := 0; col < 8; col++ {
			kind := Defender
			if col >= 2 && col <= 5 {
				kind = Spearman
			}
			sq, _ := SquareFromCoords(second, col)
			b = b.WithPiece(sq, Piece{Kind: kind, Color: color})
		}
	}

	setup(Black, 0, 1)
	setup(White, 7, 6)
	return b
}

// Pieces returns the serializable occupant list in square order.
func (b *Board) Pieces() []PieceState {
	out := make([]PieceState, 0, 32)
	b.Each(func(sq Square, pc Piece) {
		st := PieceState{Square: sq, Kind: pc.Kind, Color: pc.Color}
		switch pc.Kind {
		case Warrior:
			stance := pc.Stance
			st.Stance = &stance
		case Mage:
			cd := pc.Cooldown
			st.Cooldown = &cd
		}
		out = append(out, st)
	})
	return out
}

// BoardFromPieces rebuilds a board from a serialized occupant list. Later
// entries win on a square collision; malformed auxiliary state is ignored
// for kinds that do not carry it.
func BoardFromPieces(pieces []PieceState) Board {
	var b Board
	for _, st := range pieces {
		pc := Piece{Kind: st.Kind, Color: st.Color}
		switch st.Kind {
		case Warrior:
			if st.Stance != nil {
				pc.Stance = *st.Stance % 3
			}
		case Mage:
			if st.Cooldown != nil && *st.Cooldown > 0 {
				pc.Cooldown = *st.Cooldown
				if pc.Cooldown > 2 {
					pc.Cooldown = 2
				}
			}
		}
		b = b.WithPiece(st.Square, pc)
	}
	return b
}
