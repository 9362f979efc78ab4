package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/neonarcade/doodle-server/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 8192

	// events queued per client before the connection is considered stuck
	egressBuffer = 256
)

// Client is one websocket connection bound to an authenticated identity.
// Events for the client are queued on egress and drained by the write pump;
// a full queue marks the connection dead rather than blocking the sender.
type Client struct {
	ID       string
	Username string

	manager    *Manager
	connection *websocket.Conn
	egress     chan game.Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn, manager *Manager, id, username string) *Client {
	return &Client{
		ID:         id,
		Username:   username,
		manager:    manager,
		connection: conn,
		egress:     make(chan game.Event, egressBuffer),
		done:       make(chan struct{}),
	}
}

// Send queues an event for delivery. It never blocks; an unresponsive
// client is closed instead.
func (c *Client) Send(evt game.Event) {
	select {
	case c.egress <- evt:
	case <-c.done:
	default:
		log.Warn().Str("client", c.ID).Str("event", evt.Type).Msg("egress full, closing client")
		c.close()
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.connection != nil {
			c.connection.Close()
		}
	})
}

// readMessages drains inbound events and routes them until the connection
// errors or closes.
func (c *Client) readMessages() {
	defer func() {
		c.manager.removeClient(c)
		c.close()
	}()

	c.connection.SetReadLimit(maxMessageSize)
	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.connection.SetPongHandler(func(string) error {
		return c.connection.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("client", c.ID).Msg("read error")
			}
			return
		}

		var evt game.Event
		if err := json.Unmarshal(payload, &evt); err != nil {
			c.sendError("malformed event")
			continue
		}

		if err := c.manager.routeEvent(evt, c); err != nil {
			log.Debug().Err(err).Str("client", c.ID).Str("event", evt.Type).Msg("event rejected")
			c.sendError(err.Error())
		}
	}
}

// writeMessages delivers queued events and keeps the connection alive with
// pings.
func (c *Client) writeMessages() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case evt := <-c.egress:
			data, err := json.Marshal(evt)
			if err != nil {
				log.Error().Err(err).Str("event", evt.Type).Msg("marshal egress event")
				continue
			}

			c.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(message string) {
	evt, err := game.NewErrorEvent(message)
	if err != nil {
		return
	}
	c.Send(evt)
}
