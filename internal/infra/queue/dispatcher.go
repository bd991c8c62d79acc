package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ChatDispatcher ставит открытие чата в очередь asynq
type ChatDispatcher struct {
	client Enqueuer
	logger Logger
}

// NewChatDispatcher создает диспетчер поверх клиента asynq
func NewChatDispatcher(client Enqueuer, logger Logger) *ChatDispatcher {
	return &ChatDispatcher{client: client, logger: logger}
}

// Dispatch ставит задачу в очередь; повторная постановка той же заявки игнорируется
func (d *ChatDispatcher) Dispatch(ctx context.Context, req domain.ConversationRequest) error {
	task, opts, err := NewOpenConversationTask(req)
	if err != nil {
		return err
	}

	info, err := d.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			d.logger.Info("Dispatch: conversation task for request=%s already queued", req.RequestID)
			return nil
		}
		return fmt.Errorf("%w: request=%s: %v", ErrEnqueue, req.RequestID, err)
	}

	d.logger.Info("Dispatch: enqueued task id=%s, queue=%s, request=%s", info.ID, info.Queue, req.RequestID)
	return nil
}
