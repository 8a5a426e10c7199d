package services

import (
	"context"
	"fmt"

	"github.com/AmirRezaM75/algobattle/pkg/logx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PublisherService forwards outbound events to a redis pub/sub channel so
// other services can follow battles without holding a websocket.
type PublisherService struct {
	broker  *redis.Client
	channel string
}

func NewPublisherService(host, port, password, channel string) PublisherService {
	broker := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})
	return PublisherService{broker: broker, channel: channel}
}

func (publisherService PublisherService) Publish(ctx context.Context, message []byte) error {
	if len(message) == 0 {
		return nil
	}

	err := publisherService.broker.Publish(ctx, publisherService.channel, message).Err()

	if err != nil {
		logx.Logger.Error(
			err.Error(),
			zap.String("desc", "could not publish message"),
			zap.String("channel", publisherService.channel),
			zap.ByteString("message", message),
		)

		return err
	}

	return nil
}

func (publisherService PublisherService) Close() error {
	return publisherService.broker.Close()
}
