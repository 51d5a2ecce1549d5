// path: internal/shared/types.go
package shared

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Index() int { return int(c) }

// Forward is the row delta toward the opponent's home edge. Row 0 is
// black's home edge and row 7 is white's, so white advances upward.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return 0, false
	}
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", string(text))
	}
	*c = parsed
	return nil
}

type PieceKind uint8

const (
	King PieceKind = iota
	Warrior
	Defender
	Paladin
	Mage
	Spearman
	Archer
	Bard
	Assassin
	KindCount
)

func (k PieceKind) String() string {
	switch k {
	case King:
		return "king"
	case Warrior:
		return "warrior"
	case Defender:
		return "defender"
	case Paladin:
		return "paladin"
	case Mage:
		return "mage"
	case Spearman:
		return "spearman"
	case Archer:
		return "archer"
	case Bard:
		return "bard"
	case Assassin:
		return "assassin"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func ParsePieceKind(s string) (PieceKind, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for k := King; k < KindCount; k++ {
		if k.String() == needle {
			return k, true
		}
	}
	return 0, false
}

func (k PieceKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *PieceKind) UnmarshalText(text []byte) error {
	parsed, ok := ParsePieceKind(string(text))
	if !ok {
		return fmt.Errorf("invalid piece kind %q", string(text))
	}
	*k = parsed
	return nil
}

// Stance is the warrior's three-cycle action state.
type Stance uint8

const (
	StanceMobile Stance = iota
	StanceWeakStrike
	StanceStrongStrike
)

// Next advances the cycle: mobile -> weak strike -> strong strike -> mobile.
func (s Stance) Next() Stance { return (s + 1) % 3 }

func (s Stance) String() string {
	switch s {
	case StanceMobile:
		return "mobile"
	case StanceWeakStrike:
		return "weak-strike"
	case StanceStrongStrike:
		return "strong-strike"
	default:
		return "?"
	}
}

// Square indexes the 8x8 board row-major: row*8 + col. Row 0 is black's
// home edge, row 7 white's.
type Square uint8

func (s Square) Row() int { return int(s) >> 3 }
func (s Square) Col() int { return int(s) & 7 }

func SquareFromCoords(row, col int) (Square, bool) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return 0, false
	}
	return Square(row*8 + col), true
}

// String renders the algebraic coordinate. Rank 1 is white's home rank
// (row 7), so "d2" is row 6, col 3.
func (s Square) String() string {
	file := byte('a' + s.Col())
	rank := byte('1' + (7 - s.Row()))
	return string([]byte{file, rank})
}

func CoordToSquare(coord string) (Square, bool) {
	if len(coord) != 2 {
		return 0, false
	}
	file := coord[0]
	rank := coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	row := 7 - int(rank-'1')
	col := int(file - 'a')
	return Square(row*8 + col), true
}

func (s Square) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Square) UnmarshalText(text []byte) error {
	parsed, ok := CoordToSquare(strings.ToLower(strings.TrimSpace(string(text))))
	if !ok {
		return fmt.Errorf("invalid square %q", string(text))
	}
	*s = parsed
	return nil
}

// ChebyshevDist is the king-move distance used by all area rules.
func ChebyshevDist(a, b Square) int {
	dr := a.Row() - b.Row()
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col() - b.Col()
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}
