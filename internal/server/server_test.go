package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/config"
)

func newTestConn(t *testing.T) *websocket.Conn {
	t.Helper()

	srv := New("unused", config.Default().Simulation, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil skips progress frames and returns the first frame of the wanted
// type, failing on anything else.
func readUntil(t *testing.T, conn *websocket.Conn, want MessageType) Message {
	t.Helper()
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == MessageTypeProgress {
			continue
		}
		require.Equal(t, want, msg.Type, "unexpected frame: %s", msg.Data)
		return msg
	}
}

func send(t *testing.T, conn *websocket.Conn, mt MessageType, data any) {
	t.Helper()
	msg, err := NewMessage(mt, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func TestSimulateRoundTrip(t *testing.T) {
	conn := newTestConn(t)

	seed := int64(42)
	send(t, conn, MessageTypeSimulate, SimulateRequest{
		Players: []PlayerSpec{
			{Name: "hero", Hole: "AsAh", Active: true, Hero: true},
			{Name: "villain", Active: true},
		},
		Trials: 2000,
		Seed:   &seed,
	})

	msg := readUntil(t, conn, MessageTypeResult)
	var resp SimulateResponse
	require.NoError(t, json.Unmarshal(msg.Data, &resp))

	assert.Equal(t, 2000, resp.Trials)
	require.Len(t, resp.Players, 2)
	assert.Equal(t, "hero", resp.Players[0].Name)
	assert.Greater(t, resp.Players[0].WinPct, 75.0)
	assert.Greater(t, resp.Players[0].MarginPct, 0.0)
}

func TestSimulateConflictError(t *testing.T) {
	conn := newTestConn(t)

	send(t, conn, MessageTypeSimulate, SimulateRequest{
		Players: []PlayerSpec{
			{Name: "a", Hole: "AsKd", Active: true},
			{Name: "b", Hole: "AsQh", Active: true},
		},
		Trials: 100,
	})

	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Contains(t, errData.Message, "conflicting card")
}

func TestCurveRoundTrip(t *testing.T) {
	conn := newTestConn(t)

	seed := int64(7)
	send(t, conn, MessageTypeCurve, CurveRequest{
		Hero:      "KsKh",
		Opponents: 3,
		Trials:    1000,
		Seed:      &seed,
	})

	msg := readUntil(t, conn, MessageTypeCurveResult)
	var resp CurveResponse
	require.NoError(t, json.Unmarshal(msg.Data, &resp))

	require.Len(t, resp.Points, 3)
	for i, p := range resp.Points {
		assert.Equal(t, i+1, p.Opponents)
		assert.Greater(t, p.EquityPct, 0.0)
	}
}

func TestUnknownMessageType(t *testing.T) {
	conn := newTestConn(t)

	require.NoError(t, conn.WriteJSON(Message{Type: "bogus"}))
	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Contains(t, errData.Message, "unknown message type")
}
