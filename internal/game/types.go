// path: internal/game/types.go
package game

import "github.com/taehyun00/BuringChess/internal/shared"

// Re-exported value types so callers can stay on the game package.
type (
	Color     = shared.Color
	PieceKind = shared.PieceKind
	Stance    = shared.Stance
	Square    = shared.Square
)

const (
	White = shared.White
	Black = shared.Black
)

const (
	King     = shared.King
	Warrior  = shared.Warrior
	Defender = shared.Defender
	Paladin  = shared.Paladin
	Mage     = shared.Mage
	Spearman = shared.Spearman
	Archer   = shared.Archer
	Bard     = shared.Bard
	Assassin = shared.Assassin
)

const (
	StanceMobile       = shared.StanceMobile
	StanceWeakStrike   = shared.StanceWeakStrike
	StanceStrongStrike = shared.StanceStrongStrike
)

func CoordToSquare(coord string) (Square, bool) { return shared.CoordToSquare(coord) }

func SquareFromCoords(row, col int) (Square, bool) { return shared.SquareFromCoords(row, col) }

// Piece is a single unit on the board. Stance is meaningful only for
// warriors and Cooldown only for mages; both are zero for every other kind
// and the engine never reads them off the wrong kind.
type Piece struct {
	Kind     PieceKind
	Color    Color
	Stance   Stance
	Cooldown int
}

// PieceState is the serializable representation of an occupied square.
type PieceState struct {
	Square   Square    `json:"square"`
	Kind     PieceKind `json:"kind"`
	Color    Color     `json:"color"`
	Stance   *Stance   `json:"stance,omitempty"`
	Cooldown *int      `json:"cooldown,omitempty"`
}

// BoardState is the full serializable session snapshot handed to the
// renderer and carried verbatim by the relay.
type BoardState struct {
	Pieces     []PieceState `json:"pieces"`
	Turn       Color        `json:"turn"`
	TurnName   string       `json:"turnName"`
	Selected   string       `json:"selected,omitempty"`
	Moves      []string     `json:"moves,omitempty"`
	Attacks    []string     `json:"attacks,omitempty"`
	GameOver   bool         `json:"gameOver"`
	HasWinner  bool         `json:"hasWinner"`
	Winner     Color        `json:"winner"`
	WinnerName string       `json:"winnerName,omitempty"`
}

// Outcome reports what a click did. Rejected inputs yield silent outcomes
// rather than errors; nothing in the turn controller can fail.
type Outcome uint8

const (
	// OutcomeIgnored: idle click on an empty or enemy-held square.
	OutcomeIgnored Outcome = iota
	// OutcomeSelected: a friendly piece is now selected.
	OutcomeSelected
	// OutcomeCleared: selected click outside the cached sets.
	OutcomeCleared
	// OutcomeMoved: quiet relocation completed.
	OutcomeMoved
	// OutcomeCaptured: capture completed.
	OutcomeCaptured
	// OutcomeVictory: capture took a king; the session is frozen.
	OutcomeVictory
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSelected:
		return "selected"
	case OutcomeCleared:
		return "cleared"
	case OutcomeMoved:
		return "moved"
	case OutcomeCaptured:
		return "captured"
	case OutcomeVictory:
		return "victory"
	default:
		return "?"
	}
}

// Acted reports whether the click completed a move or capture, i.e. whether
// the resulting snapshot should be broadcast to the other participant.
func (o Outcome) Acted() bool {
	return o == OutcomeMoved || o == OutcomeCaptured || o == OutcomeVictory
}
