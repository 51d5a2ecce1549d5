// path: internal/relay/hub.go
// Package relay is the multiplayer message-passing layer: it pairs two
// websocket participants into a session and forwards serialized board
// snapshots between them verbatim. It validates nothing about the game;
// each client's own engine is the legality authority (trust-the-sender).
package relay

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/taehyun00/BuringChess/internal/game"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session already has two participants")
	ErrNotParticipant  = errors.New("not a participant of this session")
)

// Hub holds every live session. Sessions exist only in process memory for
// the lifetime of both connections; nothing is persisted.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*session
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

type session struct {
	id    string
	white *client
	black *client
}

// peerOf returns the other participant, or nil while waiting for one.
func (s *session) peerOf(c *client) *client {
	if s.white == c {
		return s.black
	}
	return s.white
}

type client struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	color     game.Color
	sessionID string
}

func (c *client) send(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(env)
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// SessionCount reports the number of live sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// HandleWS upgrades the connection and runs its read loop until the peer
// disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("ws upgrade failed", "err", err)
		return
	}
	c := &client{conn: conn}
	defer h.dropClient(c)

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		h.dispatch(c, env)
	}
}

func (h *Hub) dispatch(c *client, env Envelope) {
	switch env.Type {
	case TypeCreate:
		h.handleCreate(c)
	case TypeJoin:
		var ref SessionRef
		if err := decodeRef(env, &ref); err != nil {
			h.sendError(c, "invalid join payload")
			return
		}
		h.handleJoin(c, ref.Session)
	case TypeAction, TypeResult:
		var ref SessionRef
		if err := decodeRef(env, &ref); err != nil {
			h.sendError(c, "invalid payload")
			return
		}
		h.forward(c, ref.Session, env)
	default:
		h.sendError(c, "unknown message type")
	}
}

func decodeRef(env Envelope, ref *SessionRef) error {
	if env.Data == nil {
		return errors.New("missing data")
	}
	return json.Unmarshal(env.Data, ref)
}

// handleCreate opens a session and assigns the caller white.
func (h *Hub) handleCreate(c *client) {
	id := uuid.NewString()
	c.color = game.White
	c.sessionID = id

	h.mu.Lock()
	h.sessions[id] = &session{id: id, white: c}
	h.mu.Unlock()

	h.log.Infow("session created", "session", id)
	env, err := envelope(TypeCreated, CreatedPayload{Session: id, Color: game.White})
	if err == nil {
		if err := c.send(env); err != nil {
			h.log.Warnw("ws write failed", "session", id, "err", err)
		}
	}
}

// handleJoin seats the caller as black and signals both sides to start.
// Failures are surfaced to the joining caller only; the session, if any,
// is left untouched.
func (h *Hub) handleJoin(c *client, id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if !ok {
		h.mu.Unlock()
		h.sendError(c, ErrSessionNotFound.Error())
		return
	}
	if s.black != nil {
		h.mu.Unlock()
		h.sendError(c, ErrSessionFull.Error())
		return
	}
	c.color = game.Black
	c.sessionID = id
	s.black = c
	white := s.white
	h.mu.Unlock()

	h.log.Infow("session joined", "session", id)
	for _, participant := range []*client{white, c} {
		env, err := envelope(TypeStart, StartPayload{Session: id, Color: participant.color})
		if err != nil {
			continue
		}
		if err := participant.send(env); err != nil {
			h.log.Warnw("ws write failed", "session", id, "err", err)
		}
	}
}

// forward relays an action or result envelope to the other participant,
// fire-and-forget. The payload is passed through untouched.
func (h *Hub) forward(c *client, id string, env Envelope) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if !ok {
		h.mu.Unlock()
		h.sendError(c, ErrSessionNotFound.Error())
		return
	}
	if s.white != c && s.black != c {
		h.mu.Unlock()
		h.sendError(c, ErrNotParticipant.Error())
		return
	}
	peer := s.peerOf(c)
	h.mu.Unlock()

	if peer == nil {
		return
	}
	if err := peer.send(env); err != nil {
		h.log.Warnw("ws forward failed", "session", id, "type", env.Type, "err", err)
	}
}

// dropClient tears down the client's session on disconnect and tells the
// surviving participant to discard it.
func (h *Hub) dropClient(c *client) {
	_ = c.conn.Close()
	if c.sessionID == "" {
		return
	}

	h.mu.Lock()
	s, ok := h.sessions[c.sessionID]
	var peer *client
	if ok && (s.white == c || s.black == c) {
		peer = s.peerOf(c)
		delete(h.sessions, c.sessionID)
	}
	h.mu.Unlock()
	if !ok {
		return
	}

	h.log.Infow("participant left", "session", c.sessionID)
	if peer != nil {
		env, err := envelope(TypeLeft, LeftPayload{Session: c.sessionID})
		if err == nil {
			if err := peer.send(env); err != nil {
				h.log.Warnw("ws write failed", "session", c.sessionID, "err", err)
			}
		}
	}
}

func (h *Hub) sendError(c *client, msg string) {
	env, err := envelope(TypeError, ErrorPayload{Message: msg})
	if err != nil {
		return
	}
	if err := c.send(env); err != nil {
		h.log.Warnw("ws write failed", "err", err)
	}
}
