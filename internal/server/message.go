package server

import (
	"encoding/json"
	"time"

	"github.com/lox/dueljack/internal/session"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type AuthData struct {
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName"`
}

type ProposeDuelData struct {
	Stake int `json:"stake"`
}

type DuelActionData struct {
	DuelID string `json:"duelId"`
}

type TableActionData struct {
	TableID string `json:"tableId"`
}

type PlayerStatsData struct {
	PlayerID string `json:"playerId,omitempty"`
}

// Server → Client Messages

type AuthResponseData struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DuelStateData struct {
	Duel *session.LobbySnapshot `json:"duel"`
}

type RoundUpdateData struct {
	Update *session.RoundUpdate `json:"update"`
}

type DuelListData struct {
	Duels []*session.LobbySnapshot `json:"duels"`
}

type TableListData struct {
	Tables []*session.TableSnapshot `json:"tables"`
}

type StatsReportData struct {
	PlayerID      string  `json:"playerId"`
	TotalWagered  int     `json:"totalWagered"`
	TotalReturned int     `json:"totalReturned"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Net           int     `json:"net"`
	WinRate       float64 `json:"winRate"`
}
