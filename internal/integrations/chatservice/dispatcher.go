package chatservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const defaultOpenTimeout = 10 * time.Second

// Open создает диалог и отправляет в него первое сообщение
func Open(ctx context.Context, svc Service, req domain.ConversationRequest) (string, error) {
	conversationID, err := svc.CreateConversation(ctx, req.DriverID, req.ListingID, req.RequestID)
	if err != nil {
		return "", fmt.Errorf("create conversation for request=%s: %w", req.RequestID, err)
	}

	if err := svc.SendInitialMessage(ctx, conversationID, req.Text, req.AuthorID); err != nil {
		return conversationID, fmt.Errorf("send initial message to conversation=%s: %w", conversationID, err)
	}

	return conversationID, nil
}

// AsyncDispatcher открывает диалоги в фоновых горутинах
type AsyncDispatcher struct {
	svc     Service
	log     Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncDispatcher создает диспетчер поверх чат-сервиса
func NewAsyncDispatcher(svc Service, log Logger) *AsyncDispatcher {
	return &AsyncDispatcher{svc: svc, log: log, timeout: defaultOpenTimeout}
}

// Dispatch запускает открытие диалога и сразу возвращает управление
func (d *AsyncDispatcher) Dispatch(_ context.Context, req domain.ConversationRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// Контекст вызывающего не используется: HTTP запрос может завершиться раньше
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		conversationID, err := Open(ctx, d.svc, req)
		if err != nil {
			d.log.Error("Dispatch: %v", err)
			return
		}
		d.log.Info("Dispatch: conversation=%s opened for request=%s", conversationID, req.RequestID)
	}()

	return nil
}

// Close перестаёт принимать задачи и дожидается запущенных
func (d *AsyncDispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
}
