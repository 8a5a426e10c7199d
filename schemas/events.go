package schemas

import (
	"encoding/json"

	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/harness"
)

const (
	RoomUpdated     = "room_updated"
	BattleStarting  = "battle_starting"
	BattleProgress  = "battle_progress"
	BattleCompleted = "battle_completed"
	RoomDeleted     = "room_deleted"
	BattleError     = "battle_error"
)

// Event is the envelope of every outbound notification, on websockets and
// on the redis channel alike.
type Event struct {
	Type    string          `json:"type"`
	RoomId  string          `json:"roomId"`
	Content json.RawMessage `json:"content"`
}

func RoomUpdatedEvent(room entities.RoomSnapshot) ([]byte, error) {
	return encode(RoomUpdated, room.Id, room)
}

func BattleStartingEvent(roomId, battleId string, players []string) ([]byte, error) {
	type BattleStartingContent struct {
		BattleId string   `json:"battleId"`
		Players  []string `json:"players"`
	}

	content := BattleStartingContent{
		BattleId: battleId,
		Players:  players,
	}

	return encode(BattleStarting, roomId, content)
}

func BattleProgressEvent(roomId, battleId, playerName string, position, total int, outcome harness.Outcome) ([]byte, error) {
	type BattleProgressContent struct {
		BattleId   string          `json:"battleId"`
		PlayerName string          `json:"playerName"`
		Position   int             `json:"position"`
		Total      int             `json:"total"`
		Outcome    harness.Outcome `json:"outcome"`
	}

	content := BattleProgressContent{
		BattleId:   battleId,
		PlayerName: playerName,
		Position:   position,
		Total:      total,
		Outcome:    outcome,
	}

	return encode(BattleProgress, roomId, content)
}

func BattleCompletedEvent(roomId, battleId string, results []entities.BattleResult) ([]byte, error) {
	return encode(BattleCompleted, roomId, NewResultsResponse(roomId, battleId, results))
}

func RoomDeletedEvent(roomId, reason string) ([]byte, error) {
	type RoomDeletedContent struct {
		Reason string `json:"reason"`
	}

	return encode(RoomDeleted, roomId, RoomDeletedContent{Reason: reason})
}

func BattleErrorEvent(roomId, battleId, message string) ([]byte, error) {
	type BattleErrorContent struct {
		BattleId string `json:"battleId"`
		Message  string `json:"message"`
	}

	content := BattleErrorContent{
		BattleId: battleId,
		Message:  message,
	}

	return encode(BattleError, roomId, content)
}

func encode(eventType, roomId string, content any) ([]byte, error) {
	message, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	event := Event{
		Type:    eventType,
		RoomId:  roomId,
		Content: message,
	}

	return json.Marshal(event)
}
