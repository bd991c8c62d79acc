package chatservice

import "context"

// Service интерфейс чат-сервиса
type Service interface {
	CreateConversation(ctx context.Context, driverID, listingID, requestID string) (string, error)
	SendInitialMessage(ctx context.Context, conversationID, text, authorRef string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
