package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeAuth         MessageType = "auth"
	MessageTypeProposeDuel  MessageType = "propose_duel"
	MessageTypeJoinDuel     MessageType = "join_duel"
	MessageTypeLeaveDuel    MessageType = "leave_duel"
	MessageTypeAssignDealer MessageType = "assign_dealer"
	MessageTypeStartDuel    MessageType = "start_duel"
	MessageTypeHit          MessageType = "hit"
	MessageTypeStand        MessageType = "stand"
	MessageTypeListDuels    MessageType = "list_duels"
	MessageTypeListTables   MessageType = "list_tables"
	MessageTypePlayerStats  MessageType = "player_stats"

	// Server to client messages
	MessageTypeAuthResponse MessageType = "auth_response"
	MessageTypeError        MessageType = "error"
	MessageTypeDuelState    MessageType = "duel_state"
	MessageTypeRoundUpdate  MessageType = "round_update"
	MessageTypeDuelList     MessageType = "duel_list"
	MessageTypeTableList    MessageType = "table_list"
	MessageTypeStatsReport  MessageType = "stats_report"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
