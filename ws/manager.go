package ws

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/neonarcade/doodle-server/game"
	"github.com/neonarcade/doodle-server/http_utils"
	"github.com/neonarcade/doodle-server/token"
	"github.com/neonarcade/doodle-server/util"
)

type ClientList map[string]*Client

type wsQuery struct {
	Token string `form:"token" binding:"required"`
}

// Manager owns the connected clients and routes their events into the game
// coordinator. It is the coordinator's Emitter: deliveries go through each
// client's non-blocking egress queue.
type Manager struct {
	sync.RWMutex
	clients  ClientList
	handlers map[string]EventHandler

	tokenMaker token.Maker
	upgrader   websocket.Upgrader
	game       *game.Coordinator
}

func NewManager(tokenMaker token.Maker, allowedOrigins []string) *Manager {
	m := &Manager{
		clients:    make(ClientList),
		handlers:   make(map[string]EventHandler),
		tokenMaker: tokenMaker,
	}

	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || lo.Contains(allowedOrigins, origin)
		},
	}

	m.setupEventHandlers()

	return m
}

// BindCoordinator wires the game coordinator in after construction; the
// coordinator needs the manager as its emitter first.
func (m *Manager) BindCoordinator(coordinator *game.Coordinator) {
	m.game = coordinator
}

func (m *Manager) setupEventHandlers() {
	m.handlers[game.EventCreateRoom] = handleCreateRoom
	m.handlers[game.EventJoinRoom] = handleJoinRoom
	m.handlers[game.EventStartGame] = handleStartGame
	m.handlers[game.EventSelectWord] = handleSelectWord
	m.handlers[game.EventDraw] = handleDraw
	m.handlers[game.EventClearCanvas] = handleClearCanvas
	m.handlers[game.EventGuess] = handleGuess
}

func (m *Manager) routeEvent(evt game.Event, c *Client) error {
	handler, ok := m.handlers[evt.Type]
	if !ok {
		return errors.New("there is no such event type")
	}
	return handler(evt, c)
}

// ToPlayer implements game.Emitter.
func (m *Manager) ToPlayer(id string, evt game.Event) {
	m.RLock()
	client, ok := m.clients[id]
	m.RUnlock()

	if ok {
		client.Send(evt)
	}
}

// ToPlayers implements game.Emitter.
func (m *Manager) ToPlayers(ids []string, evt game.Event) {
	m.RLock()
	clients := make([]*Client, 0, len(ids))
	for _, id := range ids {
		if client, ok := m.clients[id]; ok {
			clients = append(clients, client)
		}
	}
	m.RUnlock()

	for _, client := range clients {
		client.Send(evt)
	}
}

// addClient registers a client, closing any previous connection that holds
// the same identity.
func (m *Manager) addClient(client *Client) {
	m.Lock()
	previous := m.clients[client.ID]
	m.clients[client.ID] = client
	m.Unlock()

	if previous != nil {
		previous.close()
	}
}

// removeClient drops a client and tells the coordinator its player is gone.
// A reconnect that already replaced this client keeps the registration, and
// the identity is re-checked before Leave so a replacement racing in between
// deregistration and Leave keeps the player's membership.
func (m *Manager) removeClient(client *Client) {
	m.Lock()
	registered := m.clients[client.ID] == client
	if registered {
		delete(m.clients, client.ID)
	}
	m.Unlock()

	if !registered || m.game == nil {
		return
	}

	m.RLock()
	_, replaced := m.clients[client.ID]
	m.RUnlock()

	if !replaced {
		m.game.Leave(client.ID)
	}
}

// ServeWS authenticates the upgrade request and starts the client's pumps.
func (m *Manager) ServeWS(c *gin.Context) {
	var query wsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, http_utils.NewErrorResponse("token not sent"))
		return
	}

	payload, err := m.tokenMaker.VerifyToken(query.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, http_utils.NewErrorResponse("unauthorized"))
		return
	}

	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(conn, m, payload.ID.String(), payload.Username)
	m.addClient(client)

	log.Info().Str("client", client.ID).Str("username", client.Username).Msg("client connected")

	go client.readMessages()
	go client.writeMessages()
}

// validatePayload runs struct validation and renders the failures as one
// client-facing message.
func validatePayload(v any) error {
	if err := util.Validate.Struct(v); err != nil {
		msgs := http_utils.ValidationErrors(err)
		if len(msgs) > 0 {
			return errors.New(msgs[0])
		}
		return err
	}
	return nil
}
