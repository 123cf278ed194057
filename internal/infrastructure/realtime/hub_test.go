package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

func startHubServer(t *testing.T, hub *Hub, userID uint) *httptest.Server {
	t.Helper()
	upgrader := NewUpgrader(nil)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = hub.Serve(context.Background(), conn, userID)
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return m
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_PublishReachesUserStream(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zerolog.Nop())
	srv := startHubServer(t, hub, 7)
	defer srv.Close()

	conn := dial(t, srv)
	if m := readMessage(t, conn); m.Type != "connected" {
		t.Fatalf("expected connected greeting, got %q", m.Type)
	}
	waitFor(t, func() bool { return hub.Clients(7) == 1 })

	hub.Publish(8, &domain.Notification{ID: 99, UserID: 8, Title: "not yours"})
	hub.Publish(7, &domain.Notification{ID: 1, UserID: 7, Title: "New connection request"})

	m := readMessage(t, conn)
	if m.Type != "notification" || m.Notification == nil || m.Notification.ID != 1 {
		t.Fatalf("unexpected message: %+v", m)
	}

	_ = conn.Close()
	waitFor(t, func() bool { return hub.Clients(7) == 0 })
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zerolog.Nop())
	srv := startHubServer(t, hub, 3)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	readMessage(t, conn)
	waitFor(t, func() bool { return hub.Clients(3) == 1 })

	hub.Close()
	waitFor(t, func() bool { return hub.Clients(3) == 0 })

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the client to be disconnected")
	}
}

func TestHub_ServeAfterCloseIsRejected(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Close()

	var serveErr error
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(done)
		conn, err := NewUpgrader(nil).Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serveErr = hub.Serve(context.Background(), conn, 1)
	}))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	<-done
	if serveErr != ErrHubClosed {
		t.Fatalf("expected ErrHubClosed, got %v", serveErr)
	}
}

func TestNewUpgrader_Origins(t *testing.T) {
	u := NewUpgrader([]string{"https://alumni.example/"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.Header.Set("Origin", "https://alumni.example")
	if !u.CheckOrigin(req) {
		t.Fatal("expected configured origin to be allowed")
	}
	req.Header.Set("Origin", "https://evil.example")
	if u.CheckOrigin(req) {
		t.Fatal("expected unknown origin to be rejected")
	}

	if !NewUpgrader([]string{"*"}).CheckOrigin(req) {
		t.Fatal("expected wildcard to allow any origin")
	}
}
