package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestHub(t *testing.T) (*Hub, string, context.CancelFunc) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws", hub.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	return hub, url, cancel
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHubBroadcastReachesTerminal(t *testing.T) {
	hub, url, cancel := newTestHub(t)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, "terminal registration", func() bool { return hub.ClientCount() == 1 })

	hub.Broadcast(TypeKOTSaved, map[string]interface{}{"order_no": 7})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != TypeKOTSaved {
		t.Errorf("type = %q, want %q", msg.Type, TypeKOTSaved)
	}
}

func TestHubDisconnectDropsTerminal(t *testing.T) {
	hub, url, cancel := newTestHub(t)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitFor(t, "terminal registration", func() bool { return hub.ClientCount() == 1 })

	conn.Close()
	waitFor(t, "terminal removal", func() bool { return hub.ClientCount() == 0 })
}

func TestHubShutdownReleasesConnections(t *testing.T) {
	hub, url, cancel := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, "terminal registration", func() bool { return hub.ClientCount() == 1 })

	cancel()

	// The connected terminal is closed out rather than left hanging
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	waitFor(t, "client set drained", func() bool { return hub.ClientCount() == 0 })

	// A terminal connecting after shutdown is refused promptly instead of
	// blocking the handler forever
	late, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return
	}
	defer late.Close()
	_ = late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); err == nil {
		t.Error("connection accepted after hub shutdown")
	}
}
