package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"memory-match/session"
	"memory-match/sessionerrors"
	"memory-match/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Time allowed for a quitting session to drain.
	quitWait = 2 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the player's session.
// Name, UserID and Session are only touched by the ReadPump goroutine.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	Name    string
	UserID  string
	Session *session.Session
}

// ReadPump pumps messages from the websocket connection to the session.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.quitSession()
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch envelope.Type {
	case "auth":
		c.handleAuth(envelope.Raw)
	case "set_name":
		c.handleSetName(envelope.Raw)
	case "new_game":
		c.handleNewGame(envelope.Raw)
	case "pick":
		c.handlePick(envelope.Raw)
	case "restart":
		c.submit(session.Action{Type: session.ActionRestart})
	case "quit":
		c.quitSession()
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	if c.Hub.Authenticate == nil {
		c.sendError("Server auth not configured.")
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Token == "" {
		c.sendError("Invalid auth message.")
		return
	}
	userID, name, err := c.Hub.Authenticate(msg.Token)
	if err != nil {
		slog.Info("token rejected", "tag", "ws", "err", err)
		c.sendError("Invalid or expired token.")
		return
	}
	c.UserID = userID
	if c.Name == "" {
		c.Name = name
	}
	c.send(AuthOKMsg{Type: "auth_ok", Name: c.Name})
}

func (c *Client) handleSetName(raw json.RawMessage) {
	var msg SetNameMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid set_name message.")
		return
	}

	name := strings.TrimSpace(msg.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > c.Hub.Config.MaxNameLength {
		c.sendError(fmt.Sprintf("Name must be between 1 and %d characters.", c.Hub.Config.MaxNameLength))
		return
	}

	c.Name = name
	c.send(NameSetMsg{Type: "name_set", Name: name})
}

func (c *Client) handleNewGame(raw json.RawMessage) {
	var msg NewGameMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid new_game message.")
		return
	}
	if c.Name == "" {
		c.sendError("Set a name first.")
		return
	}

	c.quitSession()
	s, err := c.Hub.Sessions.Start(session.StartRequest{
		PlayerName: c.Name,
		UserID:     c.UserID,
		Theme:      msg.Theme,
		Difficulty: msg.Difficulty,
	}, c.Send)
	switch {
	case err == nil:
		c.Session = s
	case errors.Is(err, sessionerrors.ErrUnknownTheme):
		c.sendError("Unknown theme: " + msg.Theme)
	case errors.Is(err, sessionerrors.ErrUnknownDifficulty):
		c.sendError("Unknown difficulty: " + msg.Difficulty)
	case errors.Is(err, sessionerrors.ErrInvalidName):
		c.sendError("Invalid name.")
	default:
		slog.Error("starting session", "tag", "ws", "err", err)
		c.sendError("Could not start a game.")
	}
}

func (c *Client) handlePick(raw json.RawMessage) {
	var msg PickMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid pick message.")
		return
	}
	c.submit(session.Action{Type: session.ActionPick, Pos: positionOf(msg)})
}

func (c *Client) submit(a session.Action) {
	if c.Session == nil {
		c.sendError("You are not in a game.")
		return
	}
	if err := c.Session.Submit(a); err != nil {
		c.Session = nil
		c.sendError("You are not in a game.")
	}
}

// quitSession stops the current session, if any, and waits for it to drain
// its queued actions so no frame of the old board follows the next session's.
func (c *Client) quitSession() {
	if c.Session == nil {
		return
	}
	s := c.Session
	c.Session = nil
	if err := s.Submit(session.Action{Type: session.ActionQuit}); err != nil {
		return
	}
	select {
	case <-s.Done:
	case <-time.After(quitWait):
		slog.Warn("session did not stop in time", "tag", "ws", "session", s.ID)
	}
}

func (c *Client) sendError(message string) {
	c.send(ErrorMsg{Type: "error", Message: message})
}

func (c *Client) send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	wsutil.SafeSend(c.Send, data)
}
