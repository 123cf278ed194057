package realtime

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// NewUpgrader returns an upgrader that accepts the listed origins. With no
// origins configured gorilla's same-origin check applies; "*" allows any.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	u := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowedOrigins) == 0 {
		return u
	}

	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = struct{}{}
	}
	_, wildcard := allowed["*"]
	u.CheckOrigin = func(r *http.Request) bool {
		if wildcard {
			return true
		}
		_, ok := allowed[r.Header.Get("Origin")]
		return ok
	}
	return u
}
