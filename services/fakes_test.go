package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/schemas"
)

type recordedEvent struct {
	roomId  string
	event   schemas.Event
	closing bool
}

type recordingNotifier struct {
	mutex  sync.Mutex
	events []recordedEvent
}

func (notifier *recordingNotifier) Notify(roomId string, body []byte, closing bool) {
	var event schemas.Event
	if err := json.Unmarshal(body, &event); err != nil {
		panic(err)
	}

	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	notifier.events = append(notifier.events, recordedEvent{roomId: roomId, event: event, closing: closing})
}

func (notifier *recordingNotifier) types() []string {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()

	types := make([]string, 0, len(notifier.events))
	for _, recorded := range notifier.events {
		types = append(types, recorded.event.Type)
	}
	return types
}

func (notifier *recordingNotifier) last() recordedEvent {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	return notifier.events[len(notifier.events)-1]
}

type memoryRepository struct {
	mutex    sync.Mutex
	rooms    map[string]entities.RoomSnapshot
	battles  map[string]string
	results  map[string][]entities.BattleResult
	failWith error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		rooms:   map[string]entities.RoomSnapshot{},
		battles: map[string]string{},
		results: map[string][]entities.BattleResult{},
	}
}

func (repository *memoryRepository) SaveRoom(ctx context.Context, room entities.RoomSnapshot) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if repository.failWith != nil {
		return repository.failWith
	}
	repository.rooms[room.Id] = room
	return nil
}

func (repository *memoryRepository) DeleteRoom(ctx context.Context, roomId string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if repository.failWith != nil {
		return repository.failWith
	}
	delete(repository.rooms, roomId)
	return nil
}

func (repository *memoryRepository) SaveResults(ctx context.Context, roomId, battleId string, results []entities.BattleResult) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if repository.failWith != nil {
		return repository.failWith
	}
	repository.battles[roomId] = battleId
	repository.results[roomId] = results
	return nil
}

func (repository *memoryRepository) ListResults(ctx context.Context, roomId string) (string, []entities.BattleResult, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if repository.failWith != nil {
		return "", nil, repository.failWith
	}
	return repository.battles[roomId], repository.results[roomId], nil
}

var storageDown = errors.New("storage is down")
