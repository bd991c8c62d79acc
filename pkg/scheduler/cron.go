package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Cron планировщик на базе robfig/cron
// Интервалы округляются до секунды (ограничение cron.Every)
type Cron struct {
	mu      sync.Mutex
	c       *cron.Cron
	stopped bool
}

// NewCron создает и запускает планировщик
// Перекрывающиеся запуски одной задачи пропускаются
func NewCron() *Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Start()
	return &Cron{c: c}
}

// Every планирует задачу с фиксированным интервалом
func (s *Cron) Every(interval time.Duration, task func()) (Ticket, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, ErrStopped
	}

	id := s.c.Schedule(cron.Every(interval), cron.FuncJob(task))
	return &cronTicket{c: s.c, id: id}, nil
}

// Stop останавливает планировщик и ждёт завершения выполняющихся задач
func (s *Cron) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	<-s.c.Stop().Done()
}

type cronTicket struct {
	once sync.Once
	c    *cron.Cron
	id   cron.EntryID
}

func (t *cronTicket) Cancel() {
	t.once.Do(func() {
		t.c.Remove(t.id)
	})
}
