// Package notifier delivers fire-and-forget host notifications.
package notifier

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Log пишет уведомления в лог
type Log struct {
	log Logger
}

// NewLog создает уведомитель поверх логгера
func NewLog(log Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(_ context.Context, n domain.Notification) error {
	l.log.Info("Notify: [%s] %s: %s", n.Kind, n.Title, n.Message)
	return nil
}
