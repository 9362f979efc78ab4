package game

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Points for a correct guess by arrival order: 500 for the first, dropping
// 100 per position with a floor of 200. The drawer gets a flat bonus per
// correct guess received.
const (
	guessPointsBase  = 600
	guessPointsStep  = 100
	guessPointsFloor = 200
	drawerBonus      = 50
)

// Guess evaluates a chat message against the current word. Wrong guesses
// are public chat; correct ones are announced without revealing the text.
// Outside an active turn the message relays as plain chat.
func (c *Coordinator) Guess(id, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.roomOf(id)
	if room == nil {
		return ErrRoomNotFound
	}

	sender, _ := room.member(id)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if room.Phase != PhasePlaying || room.CurrentWord == "" {
		c.emitToRoom(room, EventChat, ChatPayload{PlayerID: id, Name: sender.Name, Message: text})
		return nil
	}

	if room.CurrentDrawer == id {
		return ErrNotYourTurn
	}
	if _, done := room.Guessed[id]; done {
		return ErrAlreadyGuessed
	}

	guess := strings.ToLower(trimmed)
	word := strings.ToLower(strings.TrimSpace(room.CurrentWord))

	if guess != word {
		c.emitToRoom(room, EventChat, ChatPayload{PlayerID: id, Name: sender.Name, Message: text})
		if isCloseGuess(guess, word) {
			c.emitTo(id, EventCloseGuess, struct{}{})
		}
		return nil
	}

	room.Guessed[id] = struct{}{}

	position := len(room.Guessed)
	points := guessPointsBase - guessPointsStep*position
	if points < guessPointsFloor {
		points = guessPointsFloor
	}

	room.Scores[id] += points
	room.Scores[room.CurrentDrawer] += drawerBonus

	c.emitToRoom(room, EventCorrectGuess, CorrectGuessPayload{
		PlayerID:   id,
		PlayerName: sender.Name,
		Points:     points,
		Scores:     room.scoresCopy(),
	})

	log.Debug().Str("room", room.Code).Str("player", id).Int("points", points).Msg("correct guess")

	// everyone but the drawer guessed: the turn resolves immediately
	if len(room.Guessed) >= len(room.Members)-1 {
		c.cancelRoomTimer(room)
		c.endTurn(room)
	}

	return nil
}

// isCloseGuess reports whether a wrong guess deserves a private hint: the
// guess is a substring of the word, or contains the word's first three
// characters.
func isCloseGuess(guess, word string) bool {
	if guess == "" || word == "" {
		return false
	}
	if strings.Contains(word, guess) {
		return true
	}

	prefix := word
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.Contains(guess, prefix)
}
