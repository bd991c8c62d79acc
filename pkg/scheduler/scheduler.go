// Package scheduler runs recurring jobs and hands back a ticket that cancels them.
package scheduler

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInterval возвращается при неположительном интервале
	ErrInvalidInterval = errors.New("scheduler: interval must be positive")

	// ErrStopped возвращается при попытке запланировать задачу в остановленном планировщике
	ErrStopped = errors.New("scheduler: stopped")
)

// Ticket handle of a scheduled job. Cancel is idempotent.
type Ticket interface {
	Cancel()
}

// Scheduler runs task every interval until its ticket is cancelled.
type Scheduler interface {
	Every(interval time.Duration, task func()) (Ticket, error)
}
