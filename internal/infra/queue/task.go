package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// TypeOpenConversation тип задачи открытия чата после принятия заявки
const TypeOpenConversation = "chat:open_conversation"

const (
	taskMaxRetry = 5
	taskTimeout  = 30 * time.Second
)

// NewOpenConversationTask создает задачу открытия чата
// TaskID совпадает с ID заявки, поэтому повторная постановка не создаёт второй диалог
func NewOpenConversationTask(req domain.ConversationRequest) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	task := asynq.NewTask(TypeOpenConversation, b)
	opts := []asynq.Option{
		asynq.TaskID("conversation:" + req.RequestID),
		asynq.MaxRetry(taskMaxRetry),
		asynq.Timeout(taskTimeout),
	}
	return task, opts, nil
}

// ParseOpenConversationTask разбирает тело задачи
func ParseOpenConversationTask(task *asynq.Task) (domain.ConversationRequest, error) {
	var req domain.ConversationRequest
	if err := json.Unmarshal(task.Payload(), &req); err != nil {
		return domain.ConversationRequest{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if req.RequestID == "" || req.DriverID == "" {
		return domain.ConversationRequest{}, fmt.Errorf("%w: request and driver ids are required", ErrInvalidPayload)
	}
	return req, nil
}
