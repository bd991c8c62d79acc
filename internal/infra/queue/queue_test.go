package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/chatservice"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default"}, nil
}

func conversation() domain.ConversationRequest {
	return domain.ConversationRequest{
		RequestID: "req-1",
		ListingID: "garage-1",
		DriverID:  "A",
		AuthorID:  "host",
		Text:      "Здравствуйте!",
	}
}

func TestChatDispatcher_EnqueuesTask(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	dispatcher := NewChatDispatcher(enqueuer, logger.NewNop())

	require.NoError(t, dispatcher.Dispatch(context.Background(), conversation()))

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, TypeOpenConversation, enqueuer.tasks[0].Type())

	req, err := ParseOpenConversationTask(enqueuer.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, conversation(), req)
}

func TestChatDispatcher_Errors(t *testing.T) {
	dup := NewChatDispatcher(&fakeEnqueuer{err: asynq.ErrTaskIDConflict}, logger.NewNop())
	assert.NoError(t, dup.Dispatch(context.Background(), conversation()))

	broken := NewChatDispatcher(&fakeEnqueuer{err: errors.New("redis down")}, logger.NewNop())
	assert.ErrorIs(t, broken.Dispatch(context.Background(), conversation()), ErrEnqueue)
}

func TestWorker_HandleOpenConversation(t *testing.T) {
	chat := chatservice.NewLocal(logger.NewNop())
	worker := &Worker{chat: chat, logger: logger.NewNop()}

	task, _, err := NewOpenConversationTask(conversation())
	require.NoError(t, err)

	require.NoError(t, worker.HandleOpenConversation(context.Background(), task))

	conversations := chat.Conversations()
	require.Len(t, conversations, 1)
	assert.Equal(t, "req-1", conversations[0].RequestID)
	require.Len(t, conversations[0].Messages, 1)
	assert.Equal(t, "Здравствуйте!", conversations[0].Messages[0].Text)
}

func TestWorker_InvalidPayloadSkipsRetry(t *testing.T) {
	worker := &Worker{chat: chatservice.NewLocal(logger.NewNop()), logger: logger.NewNop()}

	err := worker.HandleOpenConversation(context.Background(), asynq.NewTask(TypeOpenConversation, []byte("{}")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
