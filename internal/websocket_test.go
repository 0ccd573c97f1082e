package prayerlog

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"prayerlog/internal/journal"
)

func dialWS(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/connect"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, dst any) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, p, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(p, dst); err != nil {
		t.Fatalf("unmarshal %s: %v", p, err)
	}
}

func waitForClients(t *testing.T, state *State, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for state.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, state.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebsocketRequests(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	conn := dialWS(t, srv.URL)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("get_stats")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var statsMsg StatsMessage
	readJSON(t, conn, &statsMsg)
	if statsMsg.Event != "stats" {
		t.Fatalf("unexpected event %q", statsMsg.Event)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("get_guide")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var guideMsg GuideMessage
	readJSON(t, conn, &guideMsg)
	if guideMsg.Event != "guide" || len(guideMsg.Stages) != 4 {
		t.Fatalf("unexpected guide message: %+v", guideMsg)
	}
}

func TestBroadcastHookPushesStats(t *testing.T) {
	srv, state := newTestServer(t, nil)
	state.AddHook(BroadcastHook)
	conn := dialWS(t, srv.URL)
	waitForClients(t, state, 1)

	if _, err := state.AddSession(context.Background(), 300, journal.Notes{}, ""); err != nil {
		t.Fatalf("AddSession: %v", err)
	}

	var msg StatsMessage
	readJSON(t, conn, &msg)
	if msg.Event != "stats" || msg.Change != EventSessionAdded {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Stats.TotalPrayerTime != 300 || msg.Stats.ConsecutiveDays != 1 {
		t.Fatalf("unexpected stats: %+v", msg.Stats)
	}
}

func TestClientRemovedOnDisconnect(t *testing.T) {
	srv, state := newTestServer(t, nil)
	conn := dialWS(t, srv.URL)
	waitForClients(t, state, 1)

	conn.Close()
	waitForClients(t, state, 0)
}
