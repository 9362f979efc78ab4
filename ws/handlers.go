package ws

import (
	"encoding/json"

	"github.com/neonarcade/doodle-server/game"
)

func handleCreateRoom(evt game.Event, c *Client) error {
	var payload PayloadCreateRoom
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	name := displayName(payload.Name, c.Username)
	return c.manager.game.CreateRoom(c.ID, name, payload.Avatar, payload.Settings)
}

func handleJoinRoom(evt game.Event, c *Client) error {
	var payload PayloadJoinRoom
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	name := displayName(payload.Name, c.Username)
	return c.manager.game.JoinRoom(c.ID, name, payload.Avatar, payload.Code)
}

func handleStartGame(evt game.Event, c *Client) error {
	return c.manager.game.StartGame(c.ID)
}

func handleSelectWord(evt game.Event, c *Client) error {
	var payload PayloadSelectWord
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	return c.manager.game.SelectWord(c.ID, payload.Word)
}

// handleDraw relays the stroke verbatim; the coordinator does not look
// inside it.
func handleDraw(evt game.Event, c *Client) error {
	return c.manager.game.Draw(c.ID, evt.Payload)
}

func handleClearCanvas(evt game.Event, c *Client) error {
	return c.manager.game.ClearCanvas(c.ID)
}

func handleGuess(evt game.Event, c *Client) error {
	var payload PayloadGuess
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	return c.manager.game.Guess(c.ID, payload.Message)
}
