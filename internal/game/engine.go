// path: internal/game/engine.go
// Package game implements the BuringChess rule engine and turn controller.
package game

// Engine owns one game session: the current board snapshot, the active
// color, the selection caches and the terminal result. All methods are
// synchronous and complete atomically with respect to the caller; callers
// that share an Engine across goroutines serialize access themselves.
type Engine struct {
	board     Board
	turn      Color
	selected  Square
	hasSel    bool
	moveSet   Bitboard
	attackSet Bitboard
	gameOver  bool
	winner    Color
}

// NewEngine creates a session with the canonical initial placement and
// white to move.
func NewEngine() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// Reset restores the canonical placement and clears selection, result and
// the active color back to white.
func (e *Engine) Reset() {
	e.board = NewBoard()
	e.turn = White
	e.clearSelection()
	e.gameOver = false
	e.winner = White
}

// Board returns the current snapshot. The returned value is a copy; the
// engine never mutates a snapshot it has handed out.
func (e *Engine) Board() Board { return e.board }

// Turn returns the active color.
func (e *Engine) Turn() Color { return e.turn }

// Winner reports the terminal result, if any.
func (e *Engine) Winner() (Color, bool) { return e.winner, e.gameOver }

// Selection returns the currently selected square, if any.
func (e *Engine) Selection() (Square, bool) { return e.selected, e.hasSel }

// MoveTargets and AttackTargets expose the cached sets for the current
// selection; both are empty while idle.
func (e *Engine) MoveTargets() Bitboard   { return e.moveSet }
func (e *Engine) AttackTargets() Bitboard { return e.attackSet }

func (e *Engine) clearSelection() {
	e.hasSel = false
	e.selected = 0
	e.moveSet = 0
	e.attackSet = 0
}

// Click advances the Idle -> Selected -> Idle state machine. Every input is
// accepted; inputs that match nothing are silently discarded (idle) or
// clear the selection, per the error taxonomy. Once the session is
// terminal, all clicks are ignored.
func (e *Engine) Click(sq Square) Outcome {
	if e.gameOver {
		return OutcomeIgnored
	}
	if !e.hasSel {
		return e.trySelect(sq)
	}

	switch {
	case e.attackSet.Has(sq):
		return e.applyAction(e.selected, sq, true)
	case e.moveSet.Has(sq):
		return e.applyAction(e.selected, sq, false)
	default:
		e.clearSelection()
		return OutcomeCleared
	}
}

func (e *Engine) trySelect(sq Square) Outcome {
	pc, ok := e.board.At(sq)
	if !ok || pc.Color != e.turn {
		return OutcomeIgnored
	}
	e.selected = sq
	e.hasSel = true
	e.moveSet = LegalMoves(&e.board, sq)
	e.attackSet = LegalAttacks(&e.board, sq)
	return OutcomeSelected
}

// applyAction performs a validated quiet move or capture, runs the acting
// piece's state transition and the board-wide cooldown decay, checks the
// win condition and flips the active color.
func (e *Engine) applyAction(from, to Square, capture bool) Outcome {
	actor, ok := e.board.At(from)
	if !ok {
		e.clearSelection()
		return OutcomeCleared
	}

	kingTaken := false
	if capture {
		if victim, ok := e.board.At(to); ok && victim.Kind == King {
			kingTaken = true
		}
	}

	// Relocation is uniform for moves and captures: the destination takes a
	// copy of the actor and whatever stood there is discarded.
	e.board = e.board.WithPieceMoved(from, to)

	freshCooldown := false
	switch actor.Kind {
	case Warrior:
		e.board = e.board.WithUpdated(to, func(pc Piece) Piece {
			pc.Stance = pc.Stance.Next()
			return pc
		})
	case Mage:
		if capture {
			// A quiet move never touches the cooldown; only a strike rearms it.
			e.board = e.board.WithUpdated(to, func(pc Piece) Piece {
				pc.Cooldown = 2
				return pc
			})
			freshCooldown = true
		}
	}

	e.decayCooldowns(to, freshCooldown)
	e.clearSelection()

	if kingTaken {
		e.gameOver = true
		e.winner = actor.Color
		return OutcomeVictory
	}

	e.turn = e.turn.Opposite()
	if capture {
		return OutcomeCaptured
	}
	return OutcomeMoved
}

// decayCooldowns runs the end-of-turn pass: every mage of either color with
// a positive cooldown loses one. A cooldown rearmed to 2 this same
// half-turn is exempt so it decays on the two following half-turns, not
// this one.
func (e *Engine) decayCooldowns(acted Square, freshCooldown bool) {
	var mages []Square
	e.board.Each(func(sq Square, pc Piece) {
		if pc.Kind != Mage || pc.Cooldown == 0 {
			return
		}
		if freshCooldown && sq == acted {
			return
		}
		mages = append(mages, sq)
	})
	for _, sq := range mages {
		e.board = e.board.WithUpdated(sq, func(pc Piece) Piece {
			pc.Cooldown--
			return pc
		})
	}
}

// ApplyRemote replaces the local state wholesale with a relayed snapshot.
// The sender is trusted: no merge, no legality re-check. Selection is
// dropped since the cached sets no longer match the board.
func (e *Engine) ApplyRemote(pieces []PieceState, turn Color) {
	if e.gameOver {
		return
	}
	e.board = BoardFromPieces(pieces)
	e.turn = turn
	e.clearSelection()
	if _, ok := e.board.FindKing(White); !ok {
		e.gameOver = true
		e.winner = Black
	} else if _, ok := e.board.FindKing(Black); !ok {
		e.gameOver = true
		e.winner = White
	}
}

// ApplyResult freezes the session with a relayed terminal result.
func (e *Engine) ApplyResult(winner Color) {
	e.gameOver = true
	e.winner = winner
	e.clearSelection()
}

// State produces the serializable snapshot consumed by the renderer and
// carried verbatim by the relay.
func (e *Engine) State() BoardState {
	state := BoardState{
		Pieces:   e.board.Pieces(),
		Turn:     e.turn,
		TurnName: e.turn.String(),
		GameOver: e.gameOver,
	}
	if e.hasSel {
		state.Selected = e.selected.String()
		state.Moves = squareNames(e.moveSet)
		state.Attacks = squareNames(e.attackSet)
	}
	if e.gameOver {
		state.HasWinner = true
		state.Winner = e.winner
		state.WinnerName = e.winner.String()
	}
	return state
}

func squareNames(set Bitboard) []string {
	out := make([]string, 0, set.Count())
	set.Iter(func(sq Square) { out = append(out, sq.String()) })
	return out
}
