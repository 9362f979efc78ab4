package game

import (
	"encoding/json"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	maxCodeAttempts = 100

	// Fixed pauses between transitions.
	turnEndDelay = 5 * time.Second
	gameEndDelay = 10 * time.Second

	// A drawer that never picks a word gets the first choice auto-selected
	// so a stalled drawer cannot freeze the room.
	wordSelectTimeout = 20 * time.Second
)

// WordProvider supplies randomized word choices and the masked hint for a
// chosen word.
type WordProvider interface {
	Random(n int) []string
	Mask(word string) string
}

// Coordinator owns every room and the identity -> room session table. A
// single mutex serializes all event handling, so room state mutations need
// no further synchronization. Timer callbacks re-acquire the lock and are
// validated against a per-room sequence number, so a deadline firing after
// the turn already ended through another path is a no-op.
type Coordinator struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	sessions map[string]string

	emitter Emitter
	words   WordProvider
	timers  TimerFactory
	rng     *rand.Rand
}

func NewCoordinator(emitter Emitter, words WordProvider, timers TimerFactory) *Coordinator {
	return &Coordinator{
		rooms:    make(map[string]*Room),
		sessions: make(map[string]string),
		emitter:  emitter,
		words:    words,
		timers:   timers,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom allocates a room with the caller as host. A caller already in
// a room leaves it first.
func (c *Coordinator) CreateRoom(id, name string, avatar int, settings Settings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	code, err := c.newRoomCode()
	if err != nil {
		return err
	}

	c.leaveLocked(id)

	room := &Room{
		Code:     code,
		HostID:   id,
		Settings: settings.withDefaults(),
		Phase:    PhaseLobby,
		Members:  []Member{{ID: id, Name: name, Avatar: avatar}},
		Scores:   map[string]int{id: 0},
		Guessed:  make(map[string]struct{}),
	}

	c.rooms[code] = room
	c.sessions[id] = code

	c.emitTo(id, EventRoomCreated, RoomPayload{Code: code, Room: room.snapshot()})

	log.Info().Str("room", code).Str("player", id).Msg("room created")
	return nil
}

// JoinRoom adds the caller to an existing lobby. Codes are matched
// case-insensitively. The target room is validated before the caller leaves
// its current one: a rejected join must leave the sender's membership
// untouched.
func (c *Coordinator) JoinRoom(id, name string, avatar int, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms[code]
	if !ok {
		return ErrRoomNotFound
	}
	if len(room.Members) >= room.Settings.MaxPlayers {
		return ErrRoomFull
	}
	if room.Phase != PhaseLobby {
		return ErrGameInProgress
	}

	c.leaveLocked(id)

	// leaving can empty and delete the target room itself when the caller
	// was its last member
	if c.rooms[code] != room {
		return ErrRoomNotFound
	}

	member := Member{ID: id, Name: name, Avatar: avatar}
	room.Members = append(room.Members, member)
	room.Scores[id] = 0
	c.sessions[id] = code

	c.emitTo(id, EventRoomJoined, RoomPayload{Code: code, Room: room.snapshot()})
	c.emitToRoom(room, EventPlayerJoined, PlayerJoinedPayload{Player: member, Players: room.Members})

	log.Info().Str("room", code).Str("player", id).Msg("player joined")
	return nil
}

// Leave removes the identity from its room, reassigning the host and ending
// the active turn if the drawer departed. Calling it for an identity with
// no room is a no-op.
func (c *Coordinator) Leave(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leaveLocked(id)
}

// StartGame shuffles the turn order and begins the first turn. Host only.
func (c *Coordinator) StartGame(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.roomOf(id)
	if room == nil {
		return ErrRoomNotFound
	}
	if room.HostID != id {
		return ErrNotHost
	}
	if room.Phase != PhaseLobby {
		return ErrGameInProgress
	}
	if len(room.Members) < 2 {
		return ErrInsufficientPlayers
	}

	room.Phase = PhasePlaying
	room.Round = 1
	room.TurnIndex = 0
	room.TurnOrder = room.memberIDs()
	c.rng.Shuffle(len(room.TurnOrder), func(i, j int) {
		room.TurnOrder[i], room.TurnOrder[j] = room.TurnOrder[j], room.TurnOrder[i]
	})

	c.emitToRoom(room, EventGameStarted, GameStartedPayload{Room: room.snapshot()})

	log.Info().Str("room", room.Code).Strs("order", room.TurnOrder).Msg("game started")

	c.startTurn(room)
	return nil
}

// SelectWord sets the secret word for the active turn. Drawer only, and the
// word must be one of the offered choices.
func (c *Coordinator) SelectWord(id, word string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.roomOf(id)
	if room == nil {
		return ErrRoomNotFound
	}
	if room.Phase != PhasePlaying || room.CurrentDrawer != id || room.CurrentWord != "" {
		return ErrNotYourTurn
	}
	if !lo.Contains(room.WordChoices, word) {
		return ErrInvalidWordChoice
	}

	c.cancelRoomTimer(room)
	c.applyWord(room, word)
	return nil
}

// Draw relays a stroke from the drawer to the rest of the room, verbatim.
func (c *Coordinator) Draw(id string, data json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.roomOf(id)
	if room == nil {
		return ErrRoomNotFound
	}
	if room.Phase != PhasePlaying || room.CurrentDrawer != id || room.CurrentWord == "" {
		return ErrNotYourTurn
	}

	room.DrawHistory = append(room.DrawHistory, data)
	c.emitter.ToPlayers(room.memberIDsExcept(id), Event{Type: EventDraw, Payload: data})
	return nil
}

// ClearCanvas wipes the draw history and tells the room. Drawer only.
func (c *Coordinator) ClearCanvas(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.roomOf(id)
	if room == nil {
		return ErrRoomNotFound
	}
	if room.Phase != PhasePlaying || room.CurrentDrawer != id || room.CurrentWord == "" {
		return ErrNotYourTurn
	}

	room.DrawHistory = nil
	c.emitToRoom(room, EventClearCanvas, struct{}{})
	return nil
}

// RoomInfo is the public occupancy view served over HTTP for pre-join
// checks.
type RoomInfo struct {
	Code       string `json:"code"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Joinable   bool   `json:"joinable"`
}

func (c *Coordinator) GetRoomInfo(code string) (RoomInfo, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms[code]
	if !ok {
		return RoomInfo{}, false
	}

	return RoomInfo{
		Code:       code,
		Players:    len(room.Members),
		MaxPlayers: room.Settings.MaxPlayers,
		Joinable:   room.Phase == PhaseLobby && len(room.Members) < room.Settings.MaxPlayers,
	}, true
}

func (c *Coordinator) roomOf(id string) *Room {
	code, ok := c.sessions[id]
	if !ok {
		return nil
	}
	return c.rooms[code]
}

func (c *Coordinator) newRoomCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[c.rng.Intn(len(codeAlphabet))]
		}

		code := string(b)
		if _, taken := c.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCollisionExhausted
}

func (c *Coordinator) leaveLocked(id string) {
	code, ok := c.sessions[id]
	if !ok {
		return
	}
	delete(c.sessions, id)

	room, ok := c.rooms[code]
	if !ok {
		return
	}
	if !room.removeMember(id) {
		return
	}
	delete(room.Scores, id)

	if len(room.Members) == 0 {
		c.cancelRoomTimer(room)
		delete(c.rooms, code)
		log.Info().Str("room", code).Msg("room deleted (empty)")
		return
	}

	if room.HostID == id {
		room.HostID = room.Members[0].ID
	}

	c.emitToRoom(room, EventPlayerLeft, PlayerLeftPayload{
		PlayerID: id,
		Players:  room.Members,
		NewHost:  room.HostID,
	})

	if room.Phase == PhasePlaying {
		if room.CurrentDrawer == id {
			c.cancelRoomTimer(room)
			c.endTurn(room)
		} else if room.CurrentWord != "" {
			// with the leaver gone, everyone still here may already have
			// guessed; resolve the turn instead of idling to the deadline
			delete(room.Guessed, id)
			if len(room.Guessed) >= len(room.Members)-1 {
				c.cancelRoomTimer(room)
				c.endTurn(room)
			}
		}
	}

	log.Info().Str("room", code).Str("player", id).Msg("player left")
}

// startTurn begins the next drawer's turn: word choices to the drawer, a
// turn notice to everyone. Skips turn slots whose player left during the
// break and ends the game early if fewer than 2 members remain.
func (c *Coordinator) startTurn(room *Room) {
	if len(room.Members) < 2 {
		c.endGame(room)
		return
	}

	for !room.isMember(room.TurnOrder[room.TurnIndex]) {
		if c.advanceTurn(room) {
			return
		}
	}

	drawer := room.TurnOrder[room.TurnIndex]

	room.Phase = PhasePlaying
	room.CurrentDrawer = drawer
	room.CurrentWord = ""
	room.WordHint = ""
	room.Guessed = make(map[string]struct{})
	room.DrawHistory = nil
	room.WordChoices = c.words.Random(room.Settings.WordChoices)

	c.emitTo(drawer, EventYourTurn, YourTurnPayload{Words: room.WordChoices})
	c.emitToRoom(room, EventNewTurn, NewTurnPayload{Drawer: drawer, Round: room.Round})

	c.scheduleRoomTimer(room, wordSelectTimeout, c.autoSelectWord)

	log.Debug().Str("room", room.Code).Str("drawer", drawer).Int("round", room.Round).Msg("turn started")
}

func (c *Coordinator) autoSelectWord(room *Room) {
	if room.Phase != PhasePlaying || room.CurrentWord != "" || len(room.WordChoices) == 0 {
		return
	}
	log.Debug().Str("room", room.Code).Str("drawer", room.CurrentDrawer).Msg("word auto-selected")
	c.applyWord(room, room.WordChoices[0])
}

func (c *Coordinator) applyWord(room *Room, word string) {
	room.CurrentWord = word
	room.WordHint = c.words.Mask(word)
	room.Guessed = make(map[string]struct{})
	room.DrawHistory = nil

	drawTime := time.Duration(room.Settings.DrawTime) * time.Second
	room.TurnDeadline = time.Now().Add(drawTime)

	c.emitToRoom(room, EventRoundStart, RoundStartPayload{
		Drawer: room.CurrentDrawer,
		Hint:   room.WordHint,
		Time:   room.Settings.DrawTime,
	})

	c.scheduleRoomTimer(room, drawTime, c.endTurn)
}

// endTurn reveals the word, then advances the pointer; the next turn starts
// after a fixed pause. Wrapping past the end of the order increments the
// round, and passing the final round ends the game.
func (c *Coordinator) endTurn(room *Room) {
	c.emitToRoom(room, EventTurnEnd, TurnEndPayload{Word: room.CurrentWord, Scores: room.scoresCopy()})

	room.Phase = PhaseIntermission
	room.CurrentDrawer = ""
	room.CurrentWord = ""
	room.WordHint = ""
	room.WordChoices = nil
	room.DrawHistory = nil
	room.TurnDeadline = time.Time{}

	if c.advanceTurn(room) {
		return
	}

	c.scheduleRoomTimer(room, turnEndDelay, c.startTurn)
}

// advanceTurn moves the turn pointer one slot, wrapping into the next
// round. Reports whether advancing ended the game.
func (c *Coordinator) advanceTurn(room *Room) bool {
	room.TurnIndex++
	if room.TurnIndex >= len(room.TurnOrder) {
		room.TurnIndex = 0
		room.Round++
		if room.Round > room.Settings.Rounds {
			c.endGame(room)
			return true
		}
	}
	return false
}

func (c *Coordinator) endGame(room *Room) {
	room.Phase = PhaseEnded
	room.CurrentDrawer = ""
	room.CurrentWord = ""
	room.WordHint = ""
	room.WordChoices = nil

	rankings := lo.Map(room.Members, func(m Member, _ int) Ranking {
		return Ranking{ID: m.ID, Name: m.Name, Avatar: m.Avatar, Score: room.Scores[m.ID]}
	})
	// stable sort keeps join order for equal scores
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})

	c.emitToRoom(room, EventGameEnd, GameEndPayload{Rankings: rankings})

	c.scheduleRoomTimer(room, gameEndDelay, c.resetToLobby)

	log.Info().Str("room", room.Code).Msg("game ended")
}

// resetToLobby returns the room to a fresh lobby, keeping membership and
// host.
func (c *Coordinator) resetToLobby(room *Room) {
	room.Phase = PhaseLobby
	room.Round = 0
	room.TurnOrder = nil
	room.TurnIndex = 0
	room.Guessed = make(map[string]struct{})
	for id := range room.Scores {
		room.Scores[id] = 0
	}
}

// scheduleRoomTimer arms the room's single timer slot. The callback runs
// under the coordinator lock and only if the room still exists and no other
// transition invalidated the schedule in the meantime.
func (c *Coordinator) scheduleRoomTimer(room *Room, d time.Duration, fn func(*Room)) {
	room.timerSeq++
	seq := room.timerSeq

	room.timer = c.timers.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.rooms[room.Code] != room || room.timerSeq != seq {
			return
		}
		fn(room)
	})
}

func (c *Coordinator) cancelRoomTimer(room *Room) {
	room.timerSeq++
	if room.timer != nil {
		room.timer.Stop()
		room.timer = nil
	}
}

func (c *Coordinator) emitTo(id string, evtType string, payload any) {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		log.Error().Err(err).Str("event", evtType).Msg("marshal outbound event")
		return
	}
	c.emitter.ToPlayer(id, evt)
}

func (c *Coordinator) emitToRoom(room *Room, evtType string, payload any) {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		log.Error().Err(err).Str("event", evtType).Msg("marshal outbound event")
		return
	}
	c.emitter.ToPlayers(room.memberIDs(), evt)
}
