package relay

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startRelay(t *testing.T) (*Hub, string, func()) {
	t.Helper()

	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	return hub, wsURL, srv.Close
}

func dialRelay(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial relay: %v", err)
	}
	return conn
}

func readWithDeadline(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}
	return data
}

func TestWebSocketFanOut(t *testing.T) {
	hub, url, shutdown := startRelay(t)
	defer shutdown()

	a := dialRelay(t, url)
	defer a.Close()
	b := dialRelay(t, url)
	defer b.Close()
	c := dialRelay(t, url)
	defer c.Close()

	waitForCount(t, hub, 3)

	payload := []byte(`{"type":"draw","prevX":10,"prevY":10,"x":50,"y":50,"color":"red","size":5}`)
	if err := a.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("Failed to send: %v", err)
	}

	if got := readWithDeadline(t, b); !bytes.Equal(got, payload) {
		t.Errorf("Client b received wrong payload: %s", got)
	}
	if got := readWithDeadline(t, c); !bytes.Equal(got, payload) {
		t.Errorf("Client c received wrong payload: %s", got)
	}

	// The sender must not get its own event echoed back
	a.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, data, err := a.ReadMessage(); err == nil {
		t.Errorf("Sender received its own event: %s", data)
	}
}

func TestWebSocketDisconnectRemovesFromBroadcastSet(t *testing.T) {
	hub, url, shutdown := startRelay(t)
	defer shutdown()

	a := dialRelay(t, url)
	defer a.Close()
	b := dialRelay(t, url)
	defer b.Close()
	c := dialRelay(t, url)

	waitForCount(t, hub, 3)

	c.Close()
	waitForCount(t, hub, 2)

	payload := []byte(`{"type":"cursor","x":15,"y":25}`)
	if err := a.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("Failed to send: %v", err)
	}

	if got := readWithDeadline(t, b); !bytes.Equal(got, payload) {
		t.Errorf("Client b received wrong payload: %s", got)
	}
}

func TestWebSocketNewConnectionIsNewParticipant(t *testing.T) {
	hub, url, shutdown := startRelay(t)
	defer shutdown()

	a := dialRelay(t, url)
	waitForCount(t, hub, 1)

	a.Close()
	waitForCount(t, hub, 0)

	// Reconnecting yields a fresh session, unrelated to the old one
	again := dialRelay(t, url)
	defer again.Close()
	waitForCount(t, hub, 1)
}
