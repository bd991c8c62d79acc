package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual планировщик с ручным продвижением времени (для тестов)
// Задачи выполняются синхронно внутри Advance
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	jobs   map[int]*manualJob
}

type manualJob struct {
	id       int
	interval time.Duration
	next     time.Duration
	task     func()
}

// NewManual создает планировщик с нулевым внутренним временем
func NewManual() *Manual {
	return &Manual{jobs: make(map[int]*manualJob)}
}

func (m *Manual) Every(interval time.Duration, task func()) (Ticket, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	job := &manualJob{id: m.nextID, interval: interval, next: m.now + interval, task: task}
	m.jobs[job.id] = job

	return &manualTicket{m: m, id: job.id}, nil
}

// Advance продвигает время и выполняет все задачи, срок которых наступил
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		job := m.nextDueLocked(target)
		if job == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = job.next
		job.next += job.interval
		task := job.task
		m.mu.Unlock()

		task()
	}
}

// Pending возвращает количество активных задач
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

func (m *Manual) nextDueLocked(target time.Duration) *manualJob {
	due := make([]*manualJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		if job.next <= target {
			due = append(due, job)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next == due[j].next {
			return due[i].id < due[j].id
		}
		return due[i].next < due[j].next
	})
	return due[0]
}

type manualTicket struct {
	m  *Manual
	id int
}

func (t *manualTicket) Cancel() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	delete(t.m.jobs, t.id)
}
