package ws

import "github.com/neonarcade/doodle-server/game"

// EventHandler reacts to a single inbound event from a client.
type EventHandler func(evt game.Event, c *Client) error

// Inbound payloads carry the client-supplied half of the contract and are
// validated before they reach the coordinator.

type PayloadCreateRoom struct {
	Name     string        `json:"name" validate:"omitempty,max=24"`
	Avatar   int           `json:"avatar" validate:"min=0"`
	Settings game.Settings `json:"settings"`
}

type PayloadJoinRoom struct {
	Name   string `json:"name" validate:"omitempty,max=24"`
	Avatar int    `json:"avatar" validate:"min=0"`
	Code   string `json:"code" validate:"required,len=6"`
}

type PayloadSelectWord struct {
	Word string `json:"word" validate:"required"`
}

type PayloadGuess struct {
	Message string `json:"message" validate:"required,max=120"`
}

// displayName falls back to the token username so a client that omits the
// name still shows up as something.
func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
