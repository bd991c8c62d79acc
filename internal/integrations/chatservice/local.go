package chatservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const conversationIDSize = 12

// Local чат-сервис в памяти процесса
type Local struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	log           Logger
}

// NewLocal создает пустой чат-сервис
func NewLocal(log Logger) *Local {
	return &Local{conversations: make(map[string]*Conversation), log: log}
}

func (l *Local) CreateConversation(_ context.Context, driverID, listingID, requestID string) (string, error) {
	id, err := gonanoid.New(conversationIDSize)
	if err != nil {
		return "", fmt.Errorf("%w: generate conversation id: %v", ErrInternal, err)
	}

	l.mu.Lock()
	l.conversations[id] = &Conversation{
		ID:        id,
		DriverID:  driverID,
		ListingID: listingID,
		RequestID: requestID,
		CreatedAt: time.Now(),
	}
	l.mu.Unlock()

	l.log.Info("CreateConversation: id=%s, driver=%s, request=%s", id, driverID, requestID)
	return id, nil
}

func (l *Local) SendInitialMessage(_ context.Context, conversationID, text, authorRef string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	conv, ok := l.conversations[conversationID]
	if !ok {
		return ErrConversationNotFound
	}
	conv.Messages = append(conv.Messages, Message{Text: text, Author: authorRef, SentAt: time.Now()})
	return nil
}

// Conversations возвращает копии всех диалогов
func (l *Local) Conversations() []Conversation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Conversation, 0, len(l.conversations))
	for _, conv := range l.conversations {
		c := *conv
		c.Messages = append([]Message(nil), conv.Messages...)
		out = append(out, c)
	}
	return out
}
