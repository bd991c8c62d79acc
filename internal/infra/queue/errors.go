package queue

import "errors"

var (
	// ErrInvalidPayload возвращается при некорректном теле задачи
	ErrInvalidPayload = errors.New("queue: invalid task payload")

	// ErrEnqueue возвращается, когда задачу не удалось поставить в очередь
	ErrEnqueue = errors.New("queue: failed to enqueue task")
)
