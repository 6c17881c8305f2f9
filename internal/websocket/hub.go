package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/BetterCallFirewall/ShopAudit/internal/ui"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// the UI may be served from another origin during development
		return true
	},
}

// Hub owns the live sessions. Each connection gets its own form controller, so
// audits in one tab never show up in another.
type Hub struct {
	ctx      context.Context
	auditor  ui.Auditor
	renderer *ui.Renderer
	logger   *zap.Logger

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// Client is one websocket session
type Client struct {
	id         string
	hub        *Hub
	conn       *websocket.Conn
	controller *ui.Controller
	send       chan []byte
	done       chan struct{}
}

// NewHub creates a hub. ctx bounds the hub and every audit it starts: an audit
// keeps running when its connection drops and stops only when ctx ends.
func NewHub(ctx context.Context, auditor ui.Auditor, renderer *ui.Renderer, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Hub{
		ctx:        ctx,
		auditor:    auditor,
		renderer:   renderer,
		logger:     logger,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes session registration until the hub context ends
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			n := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("websocket session opened", zap.String("session_id", client.id), zap.Int("sessions", n))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.done)
			}
			n := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("websocket session closed", zap.String("session_id", client.id), zap.Int("sessions", n))

		case <-h.ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.done)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Sessions returns the number of open sessions
func (h *Hub) Sessions() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and starts a session
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		id:         uuid.NewString(),
		hub:        h,
		conn:       conn,
		controller: ui.NewController(h.auditor),
		send:       make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
	}
	client.controller.OnChange(client.pushState)

	select {
	case h.register <- client:
	case <-h.ctx.Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read failed", zap.String("session_id", c.id), zap.Error(err))
			}
			return
		}

		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			c.sendError("malformed message")
			continue
		}
		c.handle(in)
	}
}

func (c *Client) handle(in Inbound) {
	switch in.Type {
	case MessageAudit:
		go func() {
			_, err := c.controller.Submit(c.hub.ctx, in.URL)
			if errors.Is(err, ui.ErrBusy) {
				c.sendError(err.Error())
			}
		}()
	default:
		c.sendError("unknown message type: " + in.Type)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("websocket write failed", zap.String("session_id", c.id), zap.Error(err))
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// pushState is the controller observer: every transition goes out in order
func (c *Client) pushState(s ui.State) {
	dto := StateDTO{
		Phase:  s.Phase,
		Input:  s.Input,
		Error:  s.Error,
		Result: s.Result,
	}

	if s.Phase == ui.PhaseSettled {
		var html bytes.Buffer
		if err := c.hub.renderer.RenderContent(&html, s); err != nil {
			c.hub.logger.Error("failed to render content", zap.String("session_id", c.id), zap.Error(err))
		} else {
			dto.HTML = html.String()
		}
	}

	c.enqueue(MessageState, dto)
}

func (c *Client) sendError(message string) {
	c.enqueue(MessageError, ErrorDTO{Message: message})
}

func (c *Client) enqueue(msgType string, data interface{}) {
	payload, err := json.Marshal(Message{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		c.hub.logger.Error("failed to marshal message", zap.String("type", msgType), zap.Error(err))
		return
	}

	select {
	case c.send <- payload:
	case <-c.done:
	}
}
