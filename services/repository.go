package services

import (
	"context"

	"github.com/AmirRezaM75/algobattle/entities"
)

// ResultRepository persists rooms, their players and battle results.
// Persistence is best effort: a failing repository never fails a room
// operation or a battle.
type ResultRepository interface {
	SaveRoom(ctx context.Context, room entities.RoomSnapshot) error
	DeleteRoom(ctx context.Context, roomId string) error
	SaveResults(ctx context.Context, roomId, battleId string, results []entities.BattleResult) error
	// ListResults returns the latest battle of a room, or an empty battle id
	// when there is none.
	ListResults(ctx context.Context, roomId string) (string, []entities.BattleResult, error)
}
