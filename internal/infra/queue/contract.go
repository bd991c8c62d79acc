package queue

import (
	"context"

	"github.com/hibiken/asynq"
)

// Enqueuer интерфейс постановки задач (*asynq.Client)
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ChatService интерфейс чат-сервиса
type ChatService interface {
	CreateConversation(ctx context.Context, driverID, listingID, requestID string) (string, error)
	SendInitialMessage(ctx context.Context, conversationID, text, authorRef string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
