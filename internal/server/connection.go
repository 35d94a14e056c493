package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024

	sendBuffer = 64
)

// Connection is one client playing one game. The round lives exactly as
// long as the connection.
type Connection struct {
	id        string
	conn      *websocket.Conn
	round     *game.Round
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newConnection(id string, conn *websocket.Conn, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan *Message, sendBuffer),
		logger: logger.WithPrefix("conn").With("session", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID returns the session id sent with every message
func (c *Connection) ID() string {
	return c.id
}

// Start begins handling the connection
func (c *Connection) Start() {
	c.sendState(c.round.Snapshot())
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close tears down the round, which cancels any pending dealer draws, and
// closes the socket.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.round.Close()
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// observe is registered with the round and forwards every change
func (c *Connection) observe(s game.Snapshot) {
	c.sendState(s)
}

func (c *Connection) sendState(s game.Snapshot) {
	msg, err := NewMessage(MessageTypeState, c.id, s)
	if err != nil {
		c.logger.Error("Failed to create state message", "error", err)
		return
	}
	c.enqueue(msg)
}

func (c *Connection) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, c.id, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	c.enqueue(msg)
}

func (c *Connection) enqueue(msg *Message) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		go func() { _ = c.Close() }()
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(data)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Failed to parse message")
		return
	}
	c.logger.Debug("Received message", "type", msg.Type)

	var action game.Action
	switch msg.Type {
	case MessageTypeDeal:
		action = game.ActionDeal
	case MessageTypeHit:
		action = game.ActionHit
	case MessageTypeStand:
		action = game.ActionStand
	default:
		c.sendError(ErrCodeUnknownType, "Unknown message type: "+msg.Type.String())
		return
	}

	// a successful action publishes its own state message via observe
	if err := c.round.Do(action); err != nil {
		if errors.Is(err, game.ErrActionNotAllowed) {
			c.sendError(ErrCodeActionNotAllowed, err.Error())
			return
		}
		c.logger.Error("Action failed", "action", action, "error", err)
		c.sendError(ErrCodeInternal, err.Error())
	}
}
