package game

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sentEvent struct {
	to  string
	evt Event
}

// fakeEmitter records every delivery so tests can assert on who received
// what.
type fakeEmitter struct {
	mu     sync.Mutex
	events []sentEvent
}

func (f *fakeEmitter) ToPlayer(id string, evt Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, sentEvent{to: id, evt: evt})
}

func (f *fakeEmitter) ToPlayers(ids []string, evt Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.events = append(f.events, sentEvent{to: id, evt: evt})
	}
}

func (f *fakeEmitter) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

func (f *fakeEmitter) forPlayer(id string) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Event
	for _, e := range f.events {
		if e.to == id {
			out = append(out, e.evt)
		}
	}
	return out
}

func (f *fakeEmitter) ofType(evtType string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []sentEvent
	for _, e := range f.events {
		if e.evt.Type == evtType {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEmitter) lastOfTypeFor(t *testing.T, id, evtType string) Event {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].to == id && f.events[i].evt.Type == evtType {
			return f.events[i].evt
		}
	}

	t.Fatalf("no %q event delivered to %q", evtType, id)
	return Event{}
}

type manualTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.stopped = true
	return true
}

// manualTimers records scheduled callbacks so tests fire them
// synchronously instead of sleeping.
type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (m *manualTimers) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	timer := &manualTimer{d: d, fn: fn}
	m.timers = append(m.timers, timer)
	return timer
}

// fireNext runs the most recently armed timer that was neither stopped nor
// fired.
func (m *manualTimers) fireNext(t *testing.T) {
	t.Helper()

	m.mu.Lock()
	var pending *manualTimer
	for i := len(m.timers) - 1; i >= 0; i-- {
		if !m.timers[i].stopped && !m.timers[i].fired {
			pending = m.timers[i]
			break
		}
	}
	m.mu.Unlock()

	require.NotNil(t, pending, "no pending timer to fire")
	pending.fired = true
	pending.fn()
}

// last returns the most recently armed timer, stopped or not.
func (m *manualTimers) last(t *testing.T) *manualTimer {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	require.NotEmpty(t, m.timers)
	return m.timers[len(m.timers)-1]
}

// stubWords always offers the same words, in order.
type stubWords struct {
	offer []string
}

func (s stubWords) Random(n int) []string {
	if n > len(s.offer) {
		n = len(s.offer)
	}
	return append([]string(nil), s.offer[:n]...)
}

func (s stubWords) Mask(word string) string {
	return strings.Repeat("_", len(word))
}

func newTestCoordinator() (*Coordinator, *fakeEmitter, *manualTimers) {
	emitter := &fakeEmitter{}
	timers := &manualTimers{}
	coord := NewCoordinator(emitter, stubWords{offer: []string{"cat", "dog", "sun"}}, timers)
	return coord, emitter, timers
}

func decode[T any](t *testing.T, evt Event) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(evt.Payload, &v))
	return v
}

// soleRoom returns the coordinator's only room for white-box assertions.
func soleRoom(t *testing.T, c *Coordinator) *Room {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	require.Len(t, c.rooms, 1)
	for _, room := range c.rooms {
		return room
	}
	return nil
}

// roomByCode fetches one room for white-box assertions when several exist.
func roomByCode(t *testing.T, c *Coordinator, code string) *Room {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms[code]
	require.True(t, ok, "no room with code %q", code)
	return room
}

// setupLobby creates a room hosted by ids[0] and joins the rest.
func setupLobby(t *testing.T, c *Coordinator, emitter *fakeEmitter, ids ...string) string {
	t.Helper()

	require.NoError(t, c.CreateRoom(ids[0], "player-"+ids[0], 0, Settings{}))

	created := decode[RoomPayload](t, emitter.lastOfTypeFor(t, ids[0], EventRoomCreated))
	code := created.Code

	for _, id := range ids[1:] {
		require.NoError(t, c.JoinRoom(id, "player-"+id, 0, code))
	}

	return code
}

// drawerOf returns the active drawer of the coordinator's only room.
func drawerOf(t *testing.T, c *Coordinator) string {
	t.Helper()

	room := soleRoom(t, c)

	c.mu.Lock()
	defer c.mu.Unlock()

	require.NotEmpty(t, room.CurrentDrawer, "no active drawer")
	return room.CurrentDrawer
}
