// path: internal/relay/messages.go
package relay

import (
	"encoding/json"

	"github.com/taehyun00/BuringChess/internal/game"
)

// Envelope is the wire shape of every relay message, client- and
// server-bound alike.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client-bound and server-bound message types.
const (
	// client -> relay
	TypeCreate = "create"
	TypeJoin   = "join"
	TypeAction = "action"
	TypeResult = "result"

	// relay -> client
	TypeCreated = "created"
	TypeStart   = "start"
	TypeLeft    = "left"
	TypeError   = "error"
)

// SessionRef carries the target session of a join/action/result message.
type SessionRef struct {
	Session string `json:"session"`
}

// CreatedPayload answers a create: the new session id and the caller's
// assigned color (always white).
type CreatedPayload struct {
	Session string     `json:"session"`
	Color   game.Color `json:"color"`
}

// StartPayload signals both participants that the match begins, telling
// each its color.
type StartPayload struct {
	Session string     `json:"session"`
	Color   game.Color `json:"color"`
}

// ActionPayload is the full post-action snapshot a client submits. The
// relay itself never decodes the piece list; it forwards the envelope
// verbatim. The type exists for clients and tests.
type ActionPayload struct {
	Session string            `json:"session"`
	Pieces  []game.PieceState `json:"pieces"`
	Turn    game.Color        `json:"turn"`
}

// ResultPayload announces the terminal result of a session.
type ResultPayload struct {
	Session string     `json:"session"`
	Winner  game.Color `json:"winner"`
}

// ErrorPayload carries a user-visible failure message, e.g. a join against
// an unknown or occupied session.
type ErrorPayload struct {
	Message string `json:"message"`
}

// LeftPayload tells the surviving participant to discard the session.
type LeftPayload struct {
	Session string `json:"session"`
}

func envelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: msgType, Data: raw}, nil
}
