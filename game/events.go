package game

import "encoding/json"

// Event is the wire envelope for everything exchanged with clients.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound event types (client -> coordinator).
const (
	EventCreateRoom = "createRoom"
	EventJoinRoom   = "joinRoom"
	EventStartGame  = "startGame"
	EventSelectWord = "selectWord"
	EventGuess      = "guess"
)

// Outbound event types (coordinator -> clients). EventDraw and
// EventClearCanvas travel in both directions.
const (
	EventRoomCreated  = "roomCreated"
	EventRoomJoined   = "roomJoined"
	EventPlayerJoined = "playerJoined"
	EventPlayerLeft   = "playerLeft"
	EventGameStarted  = "gameStarted"
	EventNewTurn      = "newTurn"
	EventYourTurn     = "yourTurn"
	EventRoundStart   = "roundStart"
	EventDraw         = "draw"
	EventClearCanvas  = "clearCanvas"
	EventChat         = "chat"
	EventCorrectGuess = "correctGuess"
	EventCloseGuess   = "closeGuess"
	EventTurnEnd      = "turnEnd"
	EventGameEnd      = "gameEnd"
	EventError        = "error"
)

type ErrorPayload struct {
	Message string `json:"message"`
}

type RoomPayload struct {
	Code string    `json:"code"`
	Room *Snapshot `json:"room"`
}

type PlayerJoinedPayload struct {
	Player  Member   `json:"player"`
	Players []Member `json:"players"`
}

type PlayerLeftPayload struct {
	PlayerID string   `json:"playerId"`
	Players  []Member `json:"players"`
	NewHost  string   `json:"newHost"`
}

type GameStartedPayload struct {
	Room *Snapshot `json:"room"`
}

type NewTurnPayload struct {
	Drawer string `json:"drawer"`
	Round  int    `json:"round"`
}

type YourTurnPayload struct {
	Words []string `json:"words"`
}

type RoundStartPayload struct {
	Drawer string `json:"drawer"`
	Hint   string `json:"hint"`
	Time   int    `json:"time"`
}

type ChatPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

type CorrectGuessPayload struct {
	PlayerID   string         `json:"playerId"`
	PlayerName string         `json:"playerName"`
	Points     int            `json:"points"`
	Scores     map[string]int `json:"scores"`
}

type TurnEndPayload struct {
	Word   string         `json:"word"`
	Scores map[string]int `json:"scores"`
}

type Ranking struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar int    `json:"avatar"`
	Score  int    `json:"score"`
}

type GameEndPayload struct {
	Rankings []Ranking `json:"rankings"`
}

// Emitter delivers events to connected players. Implementations must not
// block; the coordinator calls them while holding its lock.
type Emitter interface {
	ToPlayer(id string, evt Event)
	ToPlayers(ids []string, evt Event)
}

func NewEvent(evtType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{Type: evtType, Payload: b}, nil
}

func NewErrorEvent(message string) (Event, error) {
	return NewEvent(EventError, ErrorPayload{Message: message})
}
