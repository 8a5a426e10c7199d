package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"github.com/AmirRezaM75/algobattle/schemas"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// RoomService holds the participant-facing operations. Each one validates
// and mutates a single room under that room's lock, then notifies and
// persists the new state.
type RoomService struct {
	hub           *entities.Hub
	registry      *algorithms.Registry
	battleService *BattleService
	notifier      Notifier
	repository    ResultRepository
	generator     *InputGenerator
	maxAge        time.Duration
	now           func() time.Time
}

func NewRoomService(
	hub *entities.Hub,
	registry *algorithms.Registry,
	battleService *BattleService,
	notifier Notifier,
	repository ResultRepository,
	generator *InputGenerator,
	maxAge time.Duration,
) RoomService {
	return RoomService{
		hub:           hub,
		registry:      registry,
		battleService: battleService,
		notifier:      notifier,
		repository:    repository,
		generator:     generator,
		maxAge:        maxAge,
		now:           time.Now,
	}
}

func (roomService RoomService) findRoom(roomId string) (*entities.Room, error) {
	room := roomService.hub.FindRoom(roomId)

	if room == nil {
		return nil, fmt.Errorf("%w: %s", entities.RoomNotFound, roomId)
	}

	return room, nil
}

func (roomService RoomService) CreateRoom(ctx context.Context, payload schemas.CreateRoomRequest) (entities.RoomSnapshot, error) {
	category, ok := algorithms.ParseCategory(payload.Category)

	if !ok {
		return entities.RoomSnapshot{}, fmt.Errorf("%w: unknown category %q", entities.InvalidConfiguration, payload.Category)
	}

	room, err := entities.NewRoom(
		bson.NewObjectID().Hex(),
		payload.Host,
		payload.Name,
		category,
		payload.InputSize,
		payload.MaxPlayers,
		roomService.now(),
	)

	if err != nil {
		return entities.RoomSnapshot{}, err
	}

	if err = roomService.hub.AddRoom(room); err != nil {
		return entities.RoomSnapshot{}, err
	}

	logx.Logger.Info(
		"room created",
		zap.String("roomId", room.Id),
		zap.String("host", payload.Host),
		zap.String("category", string(category)),
	)

	return roomService.changed(ctx, room), nil
}

func (roomService RoomService) GetRoom(roomId string) (entities.RoomSnapshot, error) {
	room, err := roomService.findRoom(roomId)

	if err != nil {
		return entities.RoomSnapshot{}, err
	}

	return room.Snapshot(), nil
}

// AvailableRooms lists the rooms that are waiting and have a free seat,
// oldest first.
func (roomService RoomService) AvailableRooms() []entities.RoomSnapshot {
	rooms := roomService.hub.AvailableRooms()
	snapshots := make([]entities.RoomSnapshot, 0, len(rooms))

	for _, room := range rooms {
		snapshots = append(snapshots, room.Snapshot())
	}

	return snapshots
}

func (roomService RoomService) JoinRoom(ctx context.Context, roomId, name string) (entities.RoomSnapshot, error) {
	room, err := roomService.findRoom(roomId)

	if err != nil {
		return entities.RoomSnapshot{}, err
	}

	if err = room.AddPlayer(name, roomService.now()); err != nil {
		return entities.RoomSnapshot{}, err
	}

	return roomService.changed(ctx, room), nil
}

// LeaveRoom removes a player. The room is torn down when it becomes empty.
func (roomService RoomService) LeaveRoom(ctx context.Context, roomId, name string) error {
	room, err := roomService.findRoom(roomId)

	if err != nil {
		return err
	}

	empty, err := room.RemovePlayer(name)

	if err != nil {
		return err
	}

	if empty {
		roomService.teardown(ctx, room.Id, "empty")
		return nil
	}

	roomService.changed(ctx, room)

	return nil
}

func (roomService RoomService) AssignAlgorithm(ctx context.Context, roomId, name, key string) (entities.RoomSnapshot, error) {
	room, err := roomService.findRoom(roomId)

	if err != nil {
		return entities.RoomSnapshot{}, err
	}

	descriptor, err := roomService.registry.Lookup(room.Category, key)

	if err != nil {
		return entities.RoomSnapshot{}, err
	}

	if err = room.AssignAlgorithm(name, descriptor); err != nil {
		return entities.RoomSnapshot{}, err
	}

	return roomService.changed(ctx, room), nil
}

func (roomService RoomService) SubmitInput(ctx context.Context, roomId, name string, payload schemas.SubmitInputRequest) (entities.RoomSnapshot, error) {
	room, err := roomService.findRoom(roomId)

	if err != nil {
		return entities.RoomSnapshot{}, err
	}

	input, target := payload.Input, payload.Target

	if payload.Random {
		input, target, err = roomService.generator.Generate(room.Category, room.InputSize)

		if err != nil {
			return entities.RoomSnapshot{}, err
		}
	}

	if err = room.SubmitInput(name, input, target); err != nil {
		return entities.RoomSnapshot{}, err
	}

	return roomService.changed(ctx, room), nil
}

// StartBattle moves the room into battle and runs it in the background. The
// battle outlives the request, so it runs on the hub context.
func (roomService RoomService) StartBattle(ctx context.Context, roomId, requester string) (entities.RoomSnapshot, error) {
	room, err := roomService.findRoom(roomId)

	if err != nil {
		return entities.RoomSnapshot{}, err
	}

	if err = room.StartBattle(requester); err != nil {
		return entities.RoomSnapshot{}, err
	}

	snapshot := roomService.changed(ctx, room)

	roomService.battleService.Start(roomService.hub.Context, room)

	return snapshot, nil
}

// DeleteRoom tears the room down on the host's request.
func (roomService RoomService) DeleteRoom(ctx context.Context, roomId, requester string) error {
	room, err := roomService.findRoom(roomId)

	if err != nil {
		return err
	}

	if err = room.Delete(requester); err != nil {
		return err
	}

	roomService.teardown(ctx, room.Id, "deleted")

	return nil
}

// Results returns the ranked results of the room's battle. Rooms that are
// gone from memory are looked up in the repository.
func (roomService RoomService) Results(ctx context.Context, roomId string) (schemas.ResultsResponse, error) {
	if room := roomService.hub.FindRoom(roomId); room != nil && room.Status() == entities.Completed {
		battleId, results := room.Results()
		return schemas.NewResultsResponse(roomId, battleId, results), nil
	}

	if roomService.repository != nil {
		battleId, results, err := roomService.repository.ListResults(ctx, roomId)

		if err != nil {
			return schemas.ResultsResponse{}, err
		}

		if battleId != "" {
			return schemas.NewResultsResponse(roomId, battleId, results), nil
		}
	}

	if roomService.hub.FindRoom(roomId) == nil {
		return schemas.ResultsResponse{}, fmt.Errorf("%w: %s", entities.RoomNotFound, roomId)
	}

	return schemas.NewResultsResponse(roomId, "", nil), nil
}

// Sweep removes rooms older than the maximum age that are not battling and
// returns how many were removed.
func (roomService RoomService) Sweep(ctx context.Context, now time.Time) int {
	if roomService.maxAge <= 0 {
		return 0
	}

	removed := 0

	for _, room := range roomService.hub.AllRooms() {
		if !room.Expire(now, roomService.maxAge) {
			continue
		}

		roomService.teardown(ctx, room.Id, "expired")
		removed++
	}

	if removed > 0 {
		logx.Logger.Info("swept expired rooms", zap.Int("count", removed))
	}

	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (roomService RoomService) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			roomService.Sweep(ctx, now)
		}
	}
}

// changed persists and broadcasts the current state of room.
func (roomService RoomService) changed(ctx context.Context, room *entities.Room) entities.RoomSnapshot {
	snapshot := room.Snapshot()

	if roomService.repository != nil {
		if err := roomService.repository.SaveRoom(ctx, snapshot); err != nil {
			logx.Logger.Error(
				err.Error(),
				zap.String("desc", "could not persist room"),
				zap.String("roomId", room.Id),
			)
		}
	}

	body, err := schemas.RoomUpdatedEvent(snapshot)
	notify(roomService.notifier, room.Id, false, body, err)

	return snapshot
}

func (roomService RoomService) teardown(ctx context.Context, roomId, reason string) {
	if roomService.hub.RemoveRoom(roomId) == nil {
		return
	}

	if roomService.repository != nil {
		if err := roomService.repository.DeleteRoom(ctx, roomId); err != nil {
			logx.Logger.Error(
				err.Error(),
				zap.String("desc", "could not delete persisted room"),
				zap.String("roomId", roomId),
			)
		}
	}

	logx.Logger.Info("room removed", zap.String("roomId", roomId), zap.String("reason", reason))

	body, err := schemas.RoomDeletedEvent(roomId, reason)
	notify(roomService.notifier, roomId, true, body, err)
}
