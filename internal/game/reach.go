// path: internal/game/reach.go
package game

import "github.com/taehyun00/BuringChess/internal/shared"

// Reachability is computed per kind by a closed (moveRule, attackRule)
// pair, selected through a single dispatch table so kind checks never leak
// into the turn controller. Both rules are pure functions of a board
// snapshot. Area rules enumerate every square within a Chebyshev radius
// with no line-of-sight blocking; only the spearman's advance is blocked
// by intervening pieces.
type moveRule func(b *Board, sq Square, pc Piece) Bitboard

type attackRule func(b *Board, sq Square, pc Piece) Bitboard

type ruleSet struct {
	moves   moveRule
	attacks attackRule
}

var kindRules = [shared.KindCount]ruleSet{
	King:     {moves: kingMoves, attacks: kingAttacks},
	Warrior:  {moves: warriorMoves, attacks: warriorAttacks},
	Defender: {moves: defenderMoves, attacks: defenderAttacks},
	Paladin:  {moves: paladinMoves, attacks: paladinAttacks},
	Mage:     {moves: mageMoves, attacks: mageAttacks},
	Spearman: {moves: spearmanMoves, attacks: spearmanAttacks},
	Archer:   {moves: noMoves, attacks: archerAttacks},
	Bard:     {moves: bardMoves, attacks: noAttacks},
	Assassin: {moves: assassinMoves, attacks: assassinAttacks},
}

// LegalMoves returns the legal relocation targets for the occupant of sq.
// Empty squares and unknown kinds yield the empty set, never an error.
func LegalMoves(b *Board, sq Square) Bitboard {
	pc, ok := b.At(sq)
	if !ok || pc.Kind >= shared.KindCount {
		return 0
	}
	return kindRules[pc.Kind].moves(b, sq, pc)
}

// LegalAttacks returns the legal capture targets for the occupant of sq.
func LegalAttacks(b *Board, sq Square) Bitboard {
	pc, ok := b.At(sq)
	if !ok || pc.Kind >= shared.KindCount {
		return 0
	}
	return kindRules[pc.Kind].attacks(b, sq, pc)
}

func noMoves(*Board, Square, Piece) Bitboard { return 0 }

func noAttacks(*Board, Square, Piece) Bitboard { return 0 }

// areaSquares visits every on-board square within Chebyshev distance radius
// of sq, origin excluded.
func areaSquares(sq Square, radius int, fn func(Square)) {
	row := sq.Row()
	col := sq.Col()
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if target, ok := SquareFromCoords(row+dr, col+dc); ok {
				fn(target)
			}
		}
	}
}

func emptyWithin(b *Board, sq Square, radius int) Bitboard {
	var set Bitboard
	areaSquares(sq, radius, func(target Square) {
		if !b.Occupied(target) {
			set = set.Add(target)
		}
	})
	return set
}

func enemiesWithin(b *Board, sq Square, radius int, color Color) Bitboard {
	var set Bitboard
	areaSquares(sq, radius, func(target Square) {
		if b.EnemyAt(target, color) {
			set = set.Add(target)
		}
	})
	return set
}

// ---- king ----

// The king needs no separate attack phase: its move set accepts enemy
// squares directly, and the radius-1 enemy-only set is produced in parallel.
func kingMoves(b *Board, sq Square, pc Piece) Bitboard {
	var set Bitboard
	areaSquares(sq, 1, func(target Square) {
		if !b.Occupied(target) || b.EnemyAt(target, pc.Color) {
			set = set.Add(target)
		}
	})
	return set
}

func kingAttacks(b *Board, sq Square, pc Piece) Bitboard {
	return enemiesWithin(b, sq, 1, pc.Color)
}

// ---- defender ----

func defenderForward(sq Square, color Color, fn func(Square)) {
	row := sq.Row() + color.Forward()
	col := sq.Col()
	for dc := -1; dc <= 1; dc++ {
		if target, ok := SquareFromCoords(row, col+dc); ok {
			fn(target)
		}
	}
}

func defenderMoves(b *Board, sq Square, pc Piece) Bitboard {
	var set Bitboard
	defenderForward(sq, pc.Color, func(target Square) {
		if !b.Occupied(target) {
			set = set.Add(target)
		}
	})
	return set
}

func defenderAttacks(b *Board, sq Square, pc Piece) Bitboard {
	var set Bitboard
	defenderForward(sq, pc.Color, func(target Square) {
		if b.EnemyAt(target, pc.Color) {
			set = set.Add(target)
		}
	})
	return set
}

// ---- warrior ----

func warriorMoves(b *Board, sq Square, pc Piece) Bitboard {
	if pc.Stance != StanceMobile {
		return 0
	}
	return emptyWithin(b, sq, 1+BardBonus(b, sq, pc.Color))
}

func warriorAttacks(b *Board, sq Square, pc Piece) Bitboard {
	switch pc.Stance {
	case StanceWeakStrike:
		return enemiesWithin(b, sq, 1, pc.Color)
	case StanceStrongStrike:
		return enemiesWithin(b, sq, 2, pc.Color)
	default:
		return 0
	}
}

// ---- paladin ----

func paladinMoves(b *Board, sq Square, pc Piece) Bitboard {
	return emptyWithin(b, sq, 2+BardBonus(b, sq, pc.Color))
}

func paladinAttacks(b *Board, sq Square, pc Piece) Bitboard {
	return enemiesWithin(b, sq, 2, pc.Color)
}

// ---- mage ----

func mageMoves(b *Board, sq Square, pc Piece) Bitboard {
	if pc.Cooldown == 0 {
		return 0
	}
	return emptyWithin(b, sq, 1+BardBonus(b, sq, pc.Color))
}

// A ready mage strikes along its full row and column, unbounded and
// unblocked by intervening pieces.
func mageAttacks(b *Board, sq Square, pc Piece) Bitboard {
	if pc.Cooldown > 0 {
		return 0
	}
	var set Bitboard
	row := sq.Row()
	col := sq.Col()
	for i := 0; i < 8; i++ {
		if i != col {
			target, _ := SquareFromCoords(row, i)
			if b.EnemyAt(target, pc.Color) {
				set = set.Add(target)
			}
		}
		if i != row {
			target, _ := SquareFromCoords(i, col)
			if b.EnemyAt(target, pc.Color) {
				set = set.Add(target)
			}
		}
	}
	return set
}

// ---- spearman ----

func spearmanMoves(b *Board, sq Square, pc Piece) Bitboard {
	var set Bitboard
	dir := pc.Color.Forward()
	row := sq.Row()
	col := sq.Col()
	limit := 3 + BardBonus(b, sq, pc.Color)
	for step := 1; step <= limit; step++ {
		target, ok := SquareFromCoords(row+dir*step, col)
		if !ok || b.Occupied(target) {
			break
		}
		set = set.Add(target)
	}
	return set
}

// The thrust always lands exactly three squares ahead, regardless of what
// stands in between; the aura does not stretch it.
func spearmanAttacks(b *Board, sq Square, pc Piece) Bitboard {
	target, ok := SquareFromCoords(sq.Row()+3*pc.Color.Forward(), sq.Col())
	if !ok || !b.EnemyAt(target, pc.Color) {
		return 0
	}
	return BB(target)
}

// ---- archer ----

// Archers never relocate. Their volley covers every strictly forward square
// within Euclidean distance 4, unblocked.
func archerAttacks(b *Board, sq Square, pc Piece) Bitboard {
	var set Bitboard
	dir := pc.Color.Forward()
	row := sq.Row()
	col := sq.Col()
	for fwd := 1; fwd <= 4; fwd++ {
		for dc := -4; dc <= 4; dc++ {
			if fwd*fwd+dc*dc > 16 {
				continue
			}
			target, ok := SquareFromCoords(row+dir*fwd, col+dc)
			if !ok {
				continue
			}
			if b.EnemyAt(target, pc.Color) {
				set = set.Add(target)
			}
		}
	}
	return set
}

// ---- bard ----

// A bard is its own neighbor, so its base radius 1 always carries the +1.
func bardMoves(b *Board, sq Square, pc Piece) Bitboard {
	return emptyWithin(b, sq, 1+BardBonus(b, sq, pc.Color))
}

// ---- assassin ----

// Quadrant numbering: 1 = rows<4,cols>=4; 2 = rows<4,cols<4;
// 3 = rows>=4,cols<4; 4 = rows>=4,cols>=4.
func quadrantOf(sq Square) int {
	top := sq.Row() < 4
	left := sq.Col() < 4
	switch {
	case top && !left:
		return 1
	case top && left:
		return 2
	case !top && left:
		return 3
	default:
		return 4
	}
}

func quadrantSuccessor(q int) int { return q%4 + 1 }

func quadrantSquares(q int, fn func(Square)) {
	rowBase, colBase := 0, 0
	switch q {
	case 1:
		colBase = 4
	case 2:
	case 3:
		rowBase = 4
	case 4:
		rowBase, colBase = 4, 4
	}
	for r := rowBase; r < rowBase+4; r++ {
		for c := colBase; c < colBase+4; c++ {
			sq, _ := SquareFromCoords(r, c)
			fn(sq)
		}
	}
}

// The assassin's accessible region is the quadrant clockwise-adjacent to
// whichever quadrant it currently stands in, recomputed on every query.
func assassinMoves(b *Board, sq Square, pc Piece) Bitboard {
	var set Bitboard
	quadrantSquares(quadrantSuccessor(quadrantOf(sq)), func(target Square) {
		if !b.Occupied(target) {
			set = set.Add(target)
		}
	})
	return set
}

func assassinAttacks(b *Board, sq Square, pc Piece) Bitboard {
	var set Bitboard
	quadrantSquares(quadrantSuccessor(quadrantOf(sq)), func(target Square) {
		if b.EnemyAt(target, pc.Color) {
			set = set.Add(target)
		}
	})
	return set
}
