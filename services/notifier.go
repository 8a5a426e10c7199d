package services

import (
	"context"
	"time"

	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"go.uber.org/zap"
)

// Notifier receives every outbound event of a room. Closing marks the last
// event a room will ever emit.
type Notifier interface {
	Notify(roomId string, body []byte, closing bool)
}

const publishTimeout = 2 * time.Second

// EventBus delivers events to the room's websocket listeners and, when a
// publisher is configured, to redis.
type EventBus struct {
	hub       *entities.Hub
	publisher *PublisherService
}

func NewEventBus(hub *entities.Hub, publisher *PublisherService) EventBus {
	return EventBus{hub: hub, publisher: publisher}
}

func (eventBus EventBus) Notify(roomId string, body []byte, closing bool) {
	eventBus.hub.Broadcast(roomId, body, closing)

	if eventBus.publisher != nil {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(eventBus.hub.Context), publishTimeout)
		defer cancel()

		// Publish logs its own failures.
		_ = eventBus.publisher.Publish(ctx, body)
	}
}

// notify sends an encoded event, logging encoding failures instead of
// failing the operation that produced the event.
func notify(notifier Notifier, roomId string, closing bool, body []byte, err error) {
	if err != nil {
		logx.Logger.Error(
			err.Error(),
			zap.String("desc", "could not encode event"),
			zap.String("roomId", roomId),
		)
		return
	}

	if notifier != nil {
		notifier.Notify(roomId, body, closing)
	}
}
