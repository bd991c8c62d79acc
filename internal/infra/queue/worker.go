package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

const defaultConcurrency = 4

// Worker обработчик задач открытия чата
type Worker struct {
	server *asynq.Server
	chat   ChatService
	logger Logger
}

// NewWorker создает обработчик, подключенный к Redis
func NewWorker(redisOpt asynq.RedisConnOpt, concurrency int, chat ChatService, logger Logger) *Worker {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	return &Worker{server: server, chat: chat, logger: logger}
}

// Mux возвращает маршрутизатор задач
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOpenConversation, w.HandleOpenConversation)
	return mux
}

// Start запускает обработку в фоне
func (w *Worker) Start() error {
	if err := w.server.Start(w.Mux()); err != nil {
		return fmt.Errorf("start asynq worker: %w", err)
	}
	w.logger.Info("Worker: started")
	return nil
}

// Shutdown дожидается активных задач и останавливает обработку
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	w.logger.Info("Worker: stopped")
}

// HandleOpenConversation создает диалог и отправляет первое сообщение
// Некорректное тело задачи не повторяется
func (w *Worker) HandleOpenConversation(ctx context.Context, task *asynq.Task) error {
	req, err := ParseOpenConversationTask(task)
	if err != nil {
		w.logger.Error("HandleOpenConversation: %v", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	conversationID, err := w.chat.CreateConversation(ctx, req.DriverID, req.ListingID, req.RequestID)
	if err != nil {
		w.logger.Warn("HandleOpenConversation: create conversation for request=%s: %v", req.RequestID, err)
		return err
	}

	if err := w.chat.SendInitialMessage(ctx, conversationID, req.Text, req.AuthorID); err != nil {
		w.logger.Warn("HandleOpenConversation: send initial message to conversation=%s: %v", conversationID, err)
		return err
	}

	w.logger.Info("HandleOpenConversation: conversation=%s opened for request=%s", conversationID, req.RequestID)
	return nil
}
