// path: internal/httpx/server.go
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taehyun00/BuringChess/internal/game"
	"github.com/taehyun00/BuringChess/internal/relay"
)

// Server wires the HTTP layer to the local engine and the relay hub. The
// engine serves the single local board (the renderer's backend); the hub
// carries two-player sessions over /ws.
type Server struct {
	engineMu sync.Mutex
	engine   *game.Engine
	hub      *relay.Hub
	log      *zap.SugaredLogger
	srvMu    sync.Mutex
	srv      *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

func NewServer(engine *game.Engine, hub *relay.Hub, log *zap.SugaredLogger) *Server {
	return &Server{engine: engine, hub: hub, log: log}
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Infow("http listening", "addr", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// routes configures the ServeMux with the JSON APIs and the relay endpoint.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// JSON APIs for the local board
	mux.HandleFunc("/api/state", s.withJSON(s.handleState))
	mux.HandleFunc("/api/click", s.withJSON(s.handleClick))
	mux.HandleFunc("/api/targets", s.withJSON(s.handleTargets))
	mux.HandleFunc("/api/reset", s.withJSON(s.handleReset))

	// Two-player sessions
	mux.HandleFunc("/ws", s.hub.HandleWS)

	// Health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.engineMu.Lock()
	state := s.engine.State()
	s.engineMu.Unlock()
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: click ----

type clickBody struct {
	Square string `json:"square"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	var body clickBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	sq, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(body.Square)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid square")
		return
	}

	s.engineMu.Lock()
	outcome := s.engine.Click(sq)
	state := s.engine.State()
	s.engineMu.Unlock()

	writeJSON(w, map[string]any{"outcome": outcome.String(), "state": state})
}

// ---- API: targets ----

// handleTargets is a pure reachability query; it never touches the
// selection state machine.
func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sq, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("square"))))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid square")
		return
	}

	s.engineMu.Lock()
	board := s.engine.Board()
	s.engineMu.Unlock()

	moves := game.LegalMoves(&board, sq)
	attacks := game.LegalAttacks(&board, sq)
	writeJSON(w, map[string]any{
		"moves":   squareNames(moves),
		"attacks": squareNames(attacks),
	})
}

func squareNames(set game.Bitboard) []string {
	out := make([]string, 0, set.Count())
	set.Iter(func(sq game.Square) { out = append(out, sq.String()) })
	return out
}

// ---- API: reset ----

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil {
		r.Body.Close()
	}
	s.engineMu.Lock()
	s.engine.Reset()
	state := s.engine.State()
	s.engineMu.Unlock()

	writeJSON(w, map[string]any{"state": state})
}
