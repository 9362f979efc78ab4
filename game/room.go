package game

import (
	"encoding/json"
	"time"
)

type Phase string

const (
	PhaseLobby        Phase = "lobby"
	PhasePlaying      Phase = "playing"
	PhaseIntermission Phase = "intermission"
	PhaseEnded        Phase = "gameEnd"
)

const (
	DefaultMaxPlayers  = 8
	DefaultRounds      = 3
	DefaultDrawTime    = 80
	DefaultWordChoices = 3
)

// Settings are fixed once the game starts.
type Settings struct {
	MaxPlayers  int `json:"maxPlayers"`
	Rounds      int `json:"rounds"`
	DrawTime    int `json:"drawTime"`
	WordChoices int `json:"wordChoices"`
}

func (s Settings) withDefaults() Settings {
	if s.MaxPlayers <= 0 {
		s.MaxPlayers = DefaultMaxPlayers
	}
	if s.Rounds <= 0 {
		s.Rounds = DefaultRounds
	}
	if s.DrawTime <= 0 {
		s.DrawTime = DefaultDrawTime
	}
	if s.WordChoices <= 0 {
		s.WordChoices = DefaultWordChoices
	}
	return s
}

type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar int    `json:"avatar"`
}

// Room holds all state of one game instance. Every field is guarded by the
// coordinator's lock; nothing here synchronizes on its own.
type Room struct {
	Code     string
	HostID   string
	Members  []Member
	Settings Settings
	Phase    Phase

	Round         int
	TurnOrder     []string
	TurnIndex     int
	CurrentDrawer string
	CurrentWord   string
	WordHint      string
	WordChoices   []string
	Scores        map[string]int
	Guessed       map[string]struct{}
	TurnDeadline  time.Time
	DrawHistory   []json.RawMessage

	timer    Timer
	timerSeq uint64
}

func (r *Room) isMember(id string) bool {
	for _, m := range r.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (r *Room) member(id string) (Member, bool) {
	for _, m := range r.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

func (r *Room) removeMember(id string) bool {
	for i, m := range r.Members {
		if m.ID == id {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) memberIDs() []string {
	ids := make([]string, 0, len(r.Members))
	for _, m := range r.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

func (r *Room) memberIDsExcept(id string) []string {
	ids := make([]string, 0, len(r.Members))
	for _, m := range r.Members {
		if m.ID != id {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func (r *Room) scoresCopy() map[string]int {
	scores := make(map[string]int, len(r.Scores))
	for id, s := range r.Scores {
		scores[id] = s
	}
	return scores
}

// Snapshot is the client-visible view of a room. It never contains the
// cleartext word.
type Snapshot struct {
	Code          string         `json:"code"`
	Host          string         `json:"host"`
	Players       []Member       `json:"players"`
	Settings      Settings       `json:"settings"`
	State         Phase          `json:"state"`
	CurrentRound  int            `json:"currentRound"`
	CurrentDrawer string         `json:"currentDrawer,omitempty"`
	WordHint      string         `json:"wordHint,omitempty"`
	Scores        map[string]int `json:"scores"`
}

func (r *Room) snapshot() *Snapshot {
	players := make([]Member, len(r.Members))
	copy(players, r.Members)

	return &Snapshot{
		Code:          r.Code,
		Host:          r.HostID,
		Players:       players,
		Settings:      r.Settings,
		State:         r.Phase,
		CurrentRound:  r.Round,
		CurrentDrawer: r.CurrentDrawer,
		WordHint:      r.WordHint,
		Scores:        r.scoresCopy(),
	}
}
