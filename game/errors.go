package game

import "errors"

// Client-input errors. All are reported privately to the offending sender
// as an error event and never affect the room or other members.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrGameInProgress      = errors.New("game already in progress")
	ErrNotHost             = errors.New("only the host can start the game")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrAlreadyGuessed      = errors.New("you already guessed the word")
	ErrInvalidWordChoice   = errors.New("word was not among the offered choices")
	ErrInsufficientPlayers = errors.New("need at least 2 players")
	ErrCollisionExhausted  = errors.New("could not allocate a unique room code")
)
