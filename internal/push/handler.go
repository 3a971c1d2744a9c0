// AngelaMos | 2026
// handler.go

package push

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/angelamos/contentai/internal/middleware"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 90 * time.Second
	pingPeriod = 54 * time.Second

	maxInboundSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS layer in front of
		// the upgrade.
		return true
	},
}

type Handler struct {
	hub       *Hub
	verifier  middleware.TokenVerifier
	blacklist middleware.Blacklist
	logger    *slog.Logger
}

func NewHandler(
	hub *Hub,
	verifier middleware.TokenVerifier,
	blacklist middleware.Blacklist,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		hub:       hub,
		verifier:  verifier,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ServeWS upgrades an authenticated request to a WebSocket connection
// and streams the user's push events over it. Browser WebSocket
// clients cannot set headers, so the token is also accepted as a
// query parameter.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		http.Error(w, "missing access token", http.StatusUnauthorized)
		return
	}

	claims, err := h.verifier.VerifyAccessToken(r.Context(), token)
	if err != nil {
		http.Error(w, "invalid access token", http.StatusUnauthorized)
		return
	}

	if h.blacklist != nil {
		revoked, blErr := h.blacklist.IsTokenBlacklisted(r.Context(), claims.JTI)
		if blErr != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if revoked {
			http.Error(w, "token revoked", http.StatusUnauthorized)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe(claims.UserID)
	defer unsubscribe()

	h.logger.Debug("push connection opened",
		slog.String("user_id", claims.UserID),
	)

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// readLoop drains inbound frames so pongs and close frames are
// processed. The push channel is one-way; client payloads are
// discarded.
func (h *Handler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxInboundSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
