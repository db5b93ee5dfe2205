package server

import (
	"context"
	"encoding/json"
	"io"
	rand "math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/phh"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/lox/sevenstud/internal/room"
	"github.com/lox/sevenstud/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headsUpDeal gives alice As Ad / Kh and bob 2c 3d / 7s; alice leads third
// street and wins the showdown with aces and kings.
const headsUpDeal = "As Ad 2c 3d Kh 7s Kc 8d Qs 9h Jd 4c 5h 6s"

type response struct {
	OK     bool      `json:"ok"`
	Detail room.View `json:"detail"`
	Error  string    `json:"error"`
}

func newTestServer(t *testing.T) (*httptest.Server, *room.Manager) {
	t.Helper()
	stack := poker.MustParseCards(headsUpDeal)
	m := room.NewManager(room.WithEngineOptions(
		game.WithRNG(randutil.New(5)),
		game.WithDeckFactory(func(rng *rand.Rand) poker.Drawer {
			return poker.NewStackedDeck(stack...).Then(poker.NewDeck(rng))
		}),
	))
	ts := httptest.NewServer(NewServer(m).Handler())
	t.Cleanup(ts.Close)
	return ts, m
}

func post(t *testing.T, ts *httptest.Server, path string, form url.Values) (int, response) {
	t.Helper()
	resp, err := http.PostForm(ts.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func get(t *testing.T, ts *httptest.Server, path string, query url.Values) (int, response) {
	t.Helper()
	resp, err := http.Get(ts.URL + path + "?" + query.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	var body response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func startHeadsUp(t *testing.T, ts *httptest.Server) {
	t.Helper()
	status, body := post(t, ts, "/api/seven/start", url.Values{
		"roomId": {"r1"}, "users": {"alice, bob"}, "ante": {"10"},
	})
	require.Equal(t, http.StatusOK, status, body.Error)
	require.True(t, body.OK)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	status, body := get(t, ts, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.OK)
}

func TestStartAndState(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	startHeadsUp(t, ts)

	status, body := get(t, ts, "/api/seven/state", url.Values{"roomId": {"r1"}, "viewer": {"bob"}})
	require.Equal(t, http.StatusOK, status)
	v := body.Detail
	assert.Equal(t, "r1", v.RoomID)
	assert.True(t, v.InProgress)
	assert.Equal(t, game.ThirdStreet, v.Stage)
	assert.Equal(t, 20, v.Pot)
	assert.Equal(t, "alice", v.Turn)
	assert.Equal(t, 990, v.Balance)
	assert.Empty(t, v.LegalActions)

	require.Len(t, v.Players, 2)
	assert.True(t, v.Players[0].Cards[0].Hidden)
	require.NotNil(t, v.Players[0].Cards[2].Card)
	assert.Equal(t, poker.MustParseCards("Kh")[0], *v.Players[0].Cards[2].Card)
	require.NotNil(t, v.Players[1].Cards[0].Card)
}

func TestPlayHandOverHTTP(t *testing.T) {
	t.Parallel()

	ts, m := newTestServer(t)
	startHeadsUp(t, ts)

	status, body := post(t, ts, "/api/seven/bet", url.Values{"roomId": {"r1"}, "user": {"alice"}, "amount": {"10"}})
	require.Equal(t, http.StatusOK, status, body.Error)
	assert.Equal(t, "bob", body.Detail.Turn)
	assert.Equal(t, 980, body.Detail.Balance)

	status, body = post(t, ts, "/api/seven/call", url.Values{"roomId": {"r1"}, "user": {"bob"}})
	require.Equal(t, http.StatusOK, status, body.Error)
	assert.Equal(t, game.FourthStreet, body.Detail.Stage)

	for i := 0; body.Detail.InProgress; i++ {
		require.Less(t, i, 20)
		status, body = post(t, ts, "/api/seven/check", url.Values{"roomId": {"r1"}, "user": {body.Detail.Turn}})
		require.Equal(t, http.StatusOK, status, body.Error)
	}

	assert.Equal(t, []string{"alice"}, body.Detail.Winners)
	assert.Equal(t, 1020, m.Wallet().Balance("alice"))
	assert.Equal(t, 980, m.Wallet().Balance("bob"))
}

func TestErrorStatuses(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	startHeadsUp(t, ts)

	tests := []struct {
		name   string
		path   string
		form   url.Values
		status int
	}{
		{"out of turn", "/api/seven/check", url.Values{"roomId": {"r1"}, "user": {"bob"}}, http.StatusConflict},
		{"unknown seat", "/api/seven/fold", url.Values{"roomId": {"r1"}, "user": {"carol"}}, http.StatusConflict},
		{"unknown room", "/api/seven/call", url.Values{"roomId": {"r9"}, "user": {"alice"}}, http.StatusNotFound},
		{"next unknown room", "/api/seven/next", url.Values{"roomId": {"r9"}}, http.StatusNotFound},
		{"missing user", "/api/seven/call", url.Values{"roomId": {"r1"}}, http.StatusBadRequest},
		{"bad amount", "/api/seven/bet", url.Values{"roomId": {"r1"}, "user": {"alice"}, "amount": {"ten"}}, http.StatusBadRequest},
		{"bad ante", "/api/seven/start", url.Values{"roomId": {"r2"}, "users": {"a,b"}, "ante": {"x"}}, http.StatusBadRequest},
		{"one seat", "/api/seven/start", url.Values{"roomId": {"r2"}, "users": {"a"}}, http.StatusBadRequest},
		{"missing room", "/api/seven/start", url.Values{"users": {"a,b"}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, ts, tt.path, tt.form)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.OK)
			assert.NotEmpty(t, body.Error)
		})
	}

	resp, err := http.PostForm(ts.URL+"/api/seven/dance", url.Values{"roomId": {"r1"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	status, body := get(t, ts, "/api/seven/state", url.Values{"roomId": {"r1"}, "viewer": {"alice"}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body.Detail.Turn, "rejected actions must not change the room")
}

func TestNextForcesStreet(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	startHeadsUp(t, ts)

	status, body := post(t, ts, "/api/seven/next", url.Values{"roomId": {"r1"}, "viewer": {"alice"}})
	require.Equal(t, http.StatusOK, status, body.Error)
	assert.Equal(t, game.FourthStreet, body.Detail.Stage)
	assert.Len(t, body.Detail.Players[0].Cards, 4)
}

func TestStreamPushesSnapshots(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	startHeadsUp(t, ts)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/seven/ws?roomId=r1&viewer=bob"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first response
	require.NoError(t, conn.ReadJSON(&first))
	assert.True(t, first.OK)
	assert.Equal(t, "bob", first.Detail.Viewer)
	assert.Equal(t, "alice", first.Detail.Turn)

	status, _ := post(t, ts, "/api/seven/check", url.Values{"roomId": {"r1"}, "user": {"alice"}})
	require.Equal(t, http.StatusOK, status)

	var second response
	require.NoError(t, conn.ReadJSON(&second))
	assert.Greater(t, second.Detail.Seq, first.Detail.Seq)
	assert.Equal(t, "bob", second.Detail.Turn)
	assert.Equal(t, []game.Action{game.ActionFold, game.ActionCheck, game.ActionBet}, second.Detail.LegalActions)
}

func TestStreamUnknownRoom(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/seven/ws?roomId=nope"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunStopsWithContext(t *testing.T) {
	t.Parallel()

	s := NewServer(room.NewManager())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHistoryEndpoint(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	startHeadsUp(t, ts)

	status, _ := get(t, ts, "/api/seven/history", url.Values{"roomId": {"r1"}})
	assert.Equal(t, http.StatusConflict, status, "no history while the hand is live")

	status, body := post(t, ts, "/api/seven/fold", url.Values{"roomId": {"r1"}, "user": {"alice"}})
	require.Equal(t, http.StatusOK, status, body.Error)

	resp, err := http.Get(ts.URL + "/api/seven/history?roomId=r1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/toml", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	h, err := phh.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "r1", h.Table)
	assert.Equal(t, []string{"d dh p1 AsAdKh", "d dh p2 2c3d7s", "p1 f"}, h.Actions)
	assert.Equal(t, []int{0, 20}, h.Winnings)
}

func TestResumeEndpoint(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)
	status, _ := post(t, ts, "/api/seven/resume", url.Values{"roomId": {"r1"}})
	assert.Equal(t, http.StatusNotFound, status)

	startHeadsUp(t, ts)
	status, body := post(t, ts, "/api/seven/resume", url.Values{"roomId": {"r1"}, "viewer": {"alice"}})
	require.Equal(t, http.StatusOK, status, body.Error)
	assert.Equal(t, "alice", body.Detail.Turn)
	assert.Equal(t, game.ThirdStreet, body.Detail.Stage)
}
