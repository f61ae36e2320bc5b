package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/dueljack/internal/game"
	"github.com/lox/dueljack/internal/session"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	player    game.PlayerRef
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	server    *Server
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		server: server,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player
func (c *Connection) SetPlayer(p game.PlayerRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = p
}

// GetPlayer returns the associated player
func (c *Connection) GetPlayer() game.PlayerRef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

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
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer().Name)

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeProposeDuel:
		var data ProposeDuelData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse propose duel data")
			return
		}
		c.handleProposeDuel(data)

	case MessageTypeJoinDuel, MessageTypeLeaveDuel, MessageTypeAssignDealer:
		var data DuelActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse duel action data")
			return
		}
		c.handleDuelAction(msg.Type, data)

	case MessageTypeStartDuel:
		var data DuelActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start duel data")
			return
		}
		c.handleStartDuel(data)

	case MessageTypeHit, MessageTypeStand:
		var data TableActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse table action data")
			return
		}
		c.handleTableAction(msg.Type, data)

	case MessageTypeListDuels:
		c.handleListDuels()

	case MessageTypeListTables:
		c.handleListTables()

	case MessageTypePlayerStats:
		var data PlayerStatsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse player stats data")
			return
		}
		c.handlePlayerStats(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// requirePlayer returns the authenticated player, sending an error reply
// when the connection has not authenticated yet.
func (c *Connection) requirePlayer() (game.PlayerRef, bool) {
	p := c.GetPlayer()
	if p.ID == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return game.PlayerRef{}, false
	}
	return p, true
}

func (c *Connection) handleAuth(data AuthData) {
	c.logger.Info("Auth request", "playerName", data.PlayerName)

	if data.PlayerName == "" {
		c.sendError("invalid_auth", "Player name required")
		return
	}

	// A missing id falls back to the name, which is enough for a single
	// community of named players.
	id := data.PlayerID
	if id == "" {
		id = data.PlayerName
	}
	c.SetPlayer(game.PlayerRef{ID: id, Name: data.PlayerName})

	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:  true,
		PlayerID: id,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleProposeDuel(data ProposeDuelData) {
	p, ok := c.requirePlayer()
	if !ok {
		return
	}
	c.logger.Info("Propose duel request", "player", p.Name, "stake", data.Stake)

	snap, err := c.server.manager.ProposeLobby(p, data.Stake)
	if err != nil {
		c.sendError("propose_failed", err.Error())
		return
	}
	c.server.BroadcastDuelState(snap)
}

func (c *Connection) handleDuelAction(mt MessageType, data DuelActionData) {
	p, ok := c.requirePlayer()
	if !ok {
		return
	}
	c.logger.Info("Duel action", "type", mt, "duelId", data.DuelID, "player", p.Name)

	var (
		snap *session.LobbySnapshot
		err  error
	)
	switch mt {
	case MessageTypeJoinDuel:
		snap, err = c.server.manager.JoinLobby(data.DuelID, p)
	case MessageTypeLeaveDuel:
		snap, err = c.server.manager.LeaveLobby(data.DuelID, p)
	case MessageTypeAssignDealer:
		snap, err = c.server.manager.AssignDealer(data.DuelID, p)
	}
	if err != nil {
		c.sendError("duel_action_failed", err.Error())
		return
	}
	c.server.BroadcastDuelState(snap)
}

func (c *Connection) handleStartDuel(data DuelActionData) {
	p, ok := c.requirePlayer()
	if !ok {
		return
	}
	c.logger.Info("Start duel request", "duelId", data.DuelID, "player", p.Name)

	update, err := c.server.manager.StartLobby(data.DuelID, p)
	if err != nil {
		c.sendError("start_failed", err.Error())
		return
	}
	c.server.BroadcastRoundUpdate(update)
}

func (c *Connection) handleTableAction(mt MessageType, data TableActionData) {
	p, ok := c.requirePlayer()
	if !ok {
		return
	}
	c.logger.Info("Table action", "type", mt, "tableId", data.TableID, "player", p.Name)

	var (
		update *session.RoundUpdate
		err    error
	)
	switch mt {
	case MessageTypeHit:
		update, err = c.server.manager.Hit(data.TableID, p)
	case MessageTypeStand:
		update, err = c.server.manager.Stand(data.TableID, p)
	}
	if err != nil {
		c.sendError("action_failed", err.Error())
		return
	}
	c.server.BroadcastRoundUpdate(update)
}

func (c *Connection) handleListDuels() {
	response, _ := NewMessage(MessageTypeDuelList, DuelListData{
		Duels: c.server.manager.Lobbies(),
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleListTables() {
	response, _ := NewMessage(MessageTypeTableList, TableListData{
		Tables: c.server.manager.Tables(),
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handlePlayerStats(data PlayerStatsData) {
	p, ok := c.requirePlayer()
	if !ok {
		return
	}

	id := data.PlayerID
	if id == "" {
		id = p.ID
	}
	ps, _ := c.server.manager.PlayerStats(id)

	response, _ := NewMessage(MessageTypeStatsReport, StatsReportData{
		PlayerID:      id,
		TotalWagered:  ps.TotalWagered,
		TotalReturned: ps.TotalReturned,
		Wins:          ps.Wins,
		Losses:        ps.Losses,
		Net:           ps.Net(),
		WinRate:       ps.WinRate(),
	})
	_ = c.SendMessage(response)
}
