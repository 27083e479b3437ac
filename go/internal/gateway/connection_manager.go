package gateway

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionManager fans session events out to connected WebSocket
// clients. A single operator drives the draft, but several views
// (draft board, roster panel, a second screen) may watch it.
type ConnectionManager struct {
	mu       sync.RWMutex
	conns    map[*Connection]bool
	upgrader websocket.Upgrader
	config   ConnectionConfig
}

// Connection is one WebSocket client.
type Connection struct {
	conn    *websocket.Conn
	send    chan []byte
	manager *ConnectionManager
}

// ConnectionConfig holds WebSocket tuning knobs.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration
	SendBufferSize  int
	ReadBufferSize  int
	WriteBufferSize int
}

// DefaultConnectionConfig returns sensible local-tool defaults.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		PongTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		SendBufferSize:  256,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// NewConnectionManager creates a manager with the given config.
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		conns: make(map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			// local single-operator tool; the UI runs on another port
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		config: config,
	}
}

// HandleWS upgrades an HTTP request and starts the client pumps.
func (cm *ConnectionManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	c := &Connection{
		conn:    ws,
		send:    make(chan []byte, cm.config.SendBufferSize),
		manager: cm,
	}

	cm.mu.Lock()
	cm.conns[c] = true
	cm.mu.Unlock()
	log.Info().Str("remote", ws.RemoteAddr().String()).Msg("client connected")

	go c.writePump()
	go c.readPump()
}

// Broadcast sends an event envelope to every connected client. Slow
// clients with a full send buffer are disconnected rather than allowed
// to block the draft.
func (cm *ConnectionManager) Broadcast(eventType string, payload any) {
	data, err := json.Marshal(Envelope{Type: eventType, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("failed to marshal broadcast")
		return
	}

	cm.mu.RLock()
	conns := make([]*Connection, 0, len(cm.conns))
	for c := range cm.conns {
		conns = append(conns, c)
	}
	cm.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- data:
		default:
			log.Warn().Msg("dropping slow WebSocket client")
			cm.remove(c)
		}
	}
}

// ConnectionCount returns the number of connected clients.
func (cm *ConnectionManager) ConnectionCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.conns)
}

func (cm *ConnectionManager) remove(c *Connection) {
	cm.mu.Lock()
	if _, ok := cm.conns[c]; ok {
		delete(cm.conns, c)
		close(c.send)
	}
	cm.mu.Unlock()
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.manager.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.manager.remove(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.manager.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.manager.remove(c)
				return
			}
		}
	}
}

// readPump discards inbound messages; clients mutate state over HTTP.
func (c *Connection) readPump() {
	defer func() {
		c.manager.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(c.manager.config.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.manager.config.PongTimeout))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
