// path: internal/relay/hub_test.go
package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/taehyun00/BuringChess/internal/game"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(zaptest.NewLogger(t).Sugar())
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	env, err := envelope(msgType, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(env))
}

func recv(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func createSession(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Envelope{Type: TypeCreate}))
	env := recv(t, conn)
	require.Equal(t, TypeCreated, env.Type)
	var created CreatedPayload
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.Session)
	require.Equal(t, game.White, created.Color)
	return created.Session
}

func TestCreateAssignsWhite(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv)

	createSession(t, conn)
	require.Equal(t, 1, hub.SessionCount())
}

func TestJoinUnknownSessionErrorsJoinerOnly(t *testing.T) {
	_, srv := newTestHub(t)
	creator := dial(t, srv)
	id := createSession(t, creator)

	joiner := dial(t, srv)
	send(t, joiner, TypeJoin, SessionRef{Session: "no-such-session"})
	env := recv(t, joiner)
	require.Equal(t, TypeError, env.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, ErrSessionNotFound.Error(), payload.Message)

	// The existing session is untouched and can still be joined.
	send(t, joiner, TypeJoin, SessionRef{Session: id})
	env = recv(t, joiner)
	require.Equal(t, TypeStart, env.Type)
}

func TestJoinStartsBothParticipants(t *testing.T) {
	_, srv := newTestHub(t)
	creator := dial(t, srv)
	id := createSession(t, creator)

	joiner := dial(t, srv)
	send(t, joiner, TypeJoin, SessionRef{Session: id})

	creatorStart := recv(t, creator)
	require.Equal(t, TypeStart, creatorStart.Type)
	var whiteSide StartPayload
	require.NoError(t, json.Unmarshal(creatorStart.Data, &whiteSide))
	require.Equal(t, game.White, whiteSide.Color)
	require.Equal(t, id, whiteSide.Session)

	joinerStart := recv(t, joiner)
	require.Equal(t, TypeStart, joinerStart.Type)
	var blackSide StartPayload
	require.NoError(t, json.Unmarshal(joinerStart.Data, &blackSide))
	require.Equal(t, game.Black, blackSide.Color)
}

func TestJoinOccupiedSessionRejected(t *testing.T) {
	_, srv := newTestHub(t)
	creator := dial(t, srv)
	id := createSession(t, creator)

	first := dial(t, srv)
	send(t, first, TypeJoin, SessionRef{Session: id})
	require.Equal(t, TypeStart, recv(t, first).Type)

	second := dial(t, srv)
	send(t, second, TypeJoin, SessionRef{Session: id})
	env := recv(t, second)
	require.Equal(t, TypeError, env.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, ErrSessionFull.Error(), payload.Message)
}

func TestActionForwardedVerbatimToPeer(t *testing.T) {
	_, srv := newTestHub(t)
	creator := dial(t, srv)
	id := createSession(t, creator)

	joiner := dial(t, srv)
	send(t, joiner, TypeJoin, SessionRef{Session: id})
	require.Equal(t, TypeStart, recv(t, creator).Type)
	require.Equal(t, TypeStart, recv(t, joiner).Type)

	eng := game.NewEngine()
	board := eng.Board()
	action := ActionPayload{Session: id, Pieces: board.Pieces(), Turn: game.Black}
	send(t, creator, TypeAction, action)

	env := recv(t, joiner)
	require.Equal(t, TypeAction, env.Type)
	var got ActionPayload
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, game.Black, got.Turn)
	require.Len(t, got.Pieces, 32)

	// A relayed snapshot replaces the receiver's state wholesale.
	receiver := game.NewEngine()
	receiver.ApplyRemote(got.Pieces, got.Turn)
	require.Equal(t, game.Black, receiver.Turn())
}

func TestResultBroadcast(t *testing.T) {
	_, srv := newTestHub(t)
	creator := dial(t, srv)
	id := createSession(t, creator)

	joiner := dial(t, srv)
	send(t, joiner, TypeJoin, SessionRef{Session: id})
	require.Equal(t, TypeStart, recv(t, creator).Type)
	require.Equal(t, TypeStart, recv(t, joiner).Type)

	send(t, creator, TypeResult, ResultPayload{Session: id, Winner: game.White})
	env := recv(t, joiner)
	require.Equal(t, TypeResult, env.Type)
	var payload ResultPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, game.White, payload.Winner)
}

func TestDisconnectNotifiesPeerAndDiscardsSession(t *testing.T) {
	hub, srv := newTestHub(t)
	creator := dial(t, srv)
	id := createSession(t, creator)

	joiner := dial(t, srv)
	send(t, joiner, TypeJoin, SessionRef{Session: id})
	require.Equal(t, TypeStart, recv(t, creator).Type)
	require.Equal(t, TypeStart, recv(t, joiner).Type)

	require.NoError(t, joiner.Close())

	env := recv(t, creator)
	require.Equal(t, TypeLeft, env.Type)
	var payload LeftPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, id, payload.Session)

	require.Eventually(t, func() bool { return hub.SessionCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestForeignSessionActionRejected(t *testing.T) {
	_, srv := newTestHub(t)
	creator := dial(t, srv)
	id := createSession(t, creator)

	outsider := dial(t, srv)
	send(t, outsider, TypeAction, ActionPayload{Session: id, Turn: game.Black})
	env := recv(t, outsider)
	require.Equal(t, TypeError, env.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, ErrNotParticipant.Error(), payload.Message)
}
