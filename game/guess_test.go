package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// seats a six player game on the word "cat" and returns the drawer plus the
// guessers in join order.
func setupSixPlayerTurn(t *testing.T, coord *Coordinator, emitter *fakeEmitter) (string, []string) {
	t.Helper()

	ids := []string{"a", "b", "c", "d", "e", "f"}
	setupLobby(t, coord, emitter, ids...)

	require.NoError(t, coord.StartGame("a"))

	drawer := drawerOf(t, coord)
	require.NoError(t, coord.SelectWord(drawer, "cat"))

	var guessers []string
	for _, id := range ids {
		if id != drawer {
			guessers = append(guessers, id)
		}
	}
	return drawer, guessers
}

func TestGuessPointSchedule(t *testing.T) {
	coord, emitter, _ := newTestCoordinator()
	drawer, guessers := setupSixPlayerTurn(t, coord, emitter)

	want := []int{500, 400, 300, 200, 200}

	for i, id := range guessers {
		emitter.reset()
		require.NoError(t, coord.Guess(id, "cat"))

		correct := decode[CorrectGuessPayload](t, emitter.lastOfTypeFor(t, id, EventCorrectGuess))
		require.Equal(t, want[i], correct.Points, "guesser %d", i+1)
	}

	room := soleRoom(t, coord)
	require.Equal(t, 5*drawerBonus, room.Scores[drawer])
	for i, id := range guessers {
		require.Equal(t, want[i], room.Scores[id])
	}

	// everyone guessed, so the turn resolved
	require.Equal(t, PhaseIntermission, room.Phase)
}

func TestGuessDrawerCannotGuess(t *testing.T) {
	coord, emitter, _ := newTestCoordinator()
	drawer, _ := setupSixPlayerTurn(t, coord, emitter)

	require.ErrorIs(t, coord.Guess(drawer, "cat"), ErrNotYourTurn)

	room := soleRoom(t, coord)
	_, guessed := room.Guessed[drawer]
	require.False(t, guessed)
}

func TestGuessRepeatAfterCorrect(t *testing.T) {
	coord, emitter, _ := newTestCoordinator()
	_, guessers := setupSixPlayerTurn(t, coord, emitter)

	require.NoError(t, coord.Guess(guessers[0], "cat"))
	require.ErrorIs(t, coord.Guess(guessers[0], "anything"), ErrAlreadyGuessed)

	room := soleRoom(t, coord)
	require.Equal(t, 500, room.Scores[guessers[0]])
}

func TestGuessCorrectTextNeverEchoed(t *testing.T) {
	coord, emitter, _ := newTestCoordinator()
	_, guessers := setupSixPlayerTurn(t, coord, emitter)

	emitter.reset()
	require.NoError(t, coord.Guess(guessers[0], " CAT "))

	require.Empty(t, emitter.ofType(EventChat))
	require.Len(t, emitter.ofType(EventCorrectGuess), 6)
}

func TestGuessCloseIsPrivate(t *testing.T) {
	coord, emitter, _ := newTestCoordinator()
	_, guessers := setupSixPlayerTurn(t, coord, emitter)

	emitter.reset()
	require.NoError(t, coord.Guess(guessers[0], "ca"))

	// the attempt is public chat, the nudge is not
	require.Len(t, emitter.ofType(EventChat), 6)

	hints := emitter.ofType(EventCloseGuess)
	require.Len(t, hints, 1)
	require.Equal(t, guessers[0], hints[0].to)

	room := soleRoom(t, coord)
	require.Equal(t, 0, room.Scores[guessers[0]])
}

func TestGuessInLobbyRelaysAsChat(t *testing.T) {
	coord, emitter, _ := newTestCoordinator()
	setupLobby(t, coord, emitter, "a", "b")

	emitter.reset()
	require.NoError(t, coord.Guess("a", "hello there"))

	chats := emitter.ofType(EventChat)
	require.Len(t, chats, 2)

	payload := decode[ChatPayload](t, chats[0].evt)
	require.Equal(t, "a", payload.PlayerID)
	require.Equal(t, "hello there", payload.Message)
}

func TestGuessBlankIsDropped(t *testing.T) {
	coord, emitter, _ := newTestCoordinator()
	setupLobby(t, coord, emitter, "a", "b")

	emitter.reset()
	require.NoError(t, coord.Guess("a", "   "))
	require.Empty(t, emitter.events)
}

func TestGuessWithoutRoom(t *testing.T) {
	coord, _, _ := newTestCoordinator()
	require.ErrorIs(t, coord.Guess("ghost", "cat"), ErrRoomNotFound)
}

func TestIsCloseGuess(t *testing.T) {
	tests := []struct {
		guess string
		word  string
		close bool
	}{
		{"ca", "cat", true},       // substring of the word
		{"cats", "cat", true},     // contains the word's prefix
		{"catapult", "cat", true}, // ditto
		{"at", "cat", true},       // any substring counts
		{"c", "cat", true},
		{"dog", "cat", false},
		{"", "cat", false},
		{"tac", "cat", false}, // reversed shares no prefix
		{"elephant", "cattle", false},
	}

	for _, tc := range tests {
		require.Equal(t, tc.close, isCloseGuess(tc.guess, tc.word), "guess=%q word=%q", tc.guess, tc.word)
	}
}
