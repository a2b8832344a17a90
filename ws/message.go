package ws

import (
	"encoding/json"

	"memory-match/game"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg carries a bearer token identifying the player.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// SetNameMsg is sent by the client to declare a display name.
type SetNameMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewGameMsg starts a session. Empty fields use the server defaults.
type NewGameMsg struct {
	Type       string `json:"type"`
	Theme      string `json:"theme"`
	Difficulty string `json:"difficulty"`
}

// PickMsg is sent by the client to turn a card face-up.
type PickMsg struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// --- Server-to-Client messages ---

// ErrorMsg is sent when a client action is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AuthOKMsg confirms a valid token.
type AuthOKMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NameSetMsg confirms the display name.
type NameSetMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func positionOf(m PickMsg) game.Position {
	return game.Position{Row: m.Row, Col: m.Col}
}
