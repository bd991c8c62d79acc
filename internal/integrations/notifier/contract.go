package notifier

import "context"

// Publisher интерфейс издателя сообщений брокера
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
