package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Redis transport over Redis pub/sub: every snapshot is published on one channel as a JSON envelope
type Redis struct {
	client  redis.UniversalClient
	channel string
	logger  Logger
}

// NewRedis создает транспорт для канала channel
func NewRedis(client redis.UniversalClient, channel string, logger Logger) *Redis {
	return &Redis{client: client, channel: channel, logger: logger}
}

func (r *Redis) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrEncode, snapshot.Key, err)
	}

	if err := r.client.Publish(ctx, r.channel, raw).Err(); err != nil {
		return fmt.Errorf("%w: publish key=%s: %v", ErrTransport, snapshot.Key, err)
	}
	return nil
}

// Subscribe подписывается на канал и запускает цикл чтения сообщений
// Цикл завершается при закрытии подписки или отмене ctx
func (r *Redis) Subscribe(ctx context.Context, handler func(domain.Snapshot)) (io.Closer, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)

	// Дожидаемся подтверждения подписки, чтобы не потерять первые сообщения
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: subscribe channel=%s: %v", ErrTransport, r.channel, err)
	}

	sub := &redisSubscription{pubsub: pubsub, done: make(chan struct{})}
	go r.receiveLoop(ctx, sub, handler)

	r.logger.Info("Subscribe: listening on channel=%s", r.channel)
	return sub, nil
}

func (r *Redis) receiveLoop(ctx context.Context, sub *redisSubscription, handler func(domain.Snapshot)) {
	defer close(sub.done)

	messages := sub.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			snapshot, err := Decode([]byte(msg.Payload))
			if err != nil {
				r.logger.Warn("receiveLoop: skipping malformed message on channel=%s: %v", r.channel, err)
				continue
			}
			handler(snapshot)
		}
	}
}

// Decode разбирает конверт снимка
func Decode(raw []byte) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if snapshot.Key == "" {
		return domain.Snapshot{}, fmt.Errorf("%w: empty key", ErrEncode)
	}
	return snapshot, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
	err    error
}

func (s *redisSubscription) Close() error {
	s.once.Do(func() {
		s.err = s.pubsub.Close()
		<-s.done
	})
	return s.err
}
