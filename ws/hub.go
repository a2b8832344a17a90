package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"memory-match/auth"
	"memory-match/config"
	"memory-match/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development; restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionStarter is what the Hub needs from the session manager.
type SessionStarter interface {
	Start(req session.StartRequest, send chan []byte) (*session.Session, error)
}

// Authenticator resolves a bearer token to a user id and display name.
type Authenticator func(token string) (userID, name string, err error)

// TokenAuthenticator validates tokens against the JWKS published under baseURL.
func TokenAuthenticator(baseURL string) Authenticator {
	return func(token string) (string, string, error) {
		claims, err := auth.ValidateToken(baseURL, token)
		if err != nil {
			return "", "", err
		}
		return auth.UserIDFromClaims(claims), auth.FirstNameFromClaims(claims), nil
	}
}

// Hub maintains the set of active clients.
type Hub struct {
	Clients      map[*Client]bool
	Register     chan *Client
	Unregister   chan *Client
	Sessions     SessionStarter
	Config       *config.Config
	Authenticate Authenticator // nil disables the auth message
}

// NewHub creates a new Hub.
func NewHub(cfg *config.Config, sessions SessionStarter) *Hub {
	h := &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Sessions:   sessions,
		Config:     cfg,
	}
	if cfg.AuthBaseURL != "" {
		h.Authenticate = TokenAuthenticator(cfg.AuthBaseURL)
	}
	return h
}

// Run starts the hub's main loop. Should be run as a goroutine.
// When ctx is cancelled (e.g. on server shutdown), Run returns and no longer accepts new registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, stopping", "tag", "hub")
			return
		case client := <-h.Register:
			h.Clients[client] = true
			slog.Info("client connected", "tag", "hub", "total", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				slog.Info("client disconnected", "tag", "hub", "total", len(h.Clients))
			}
		}
	}
}

// ServeWS handles WebSocket upgrade requests and creates a new Client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "tag", "hub", "err", err)
		return
	}

	client := &Client{
		Hub:  h,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
