package chatservice

import "errors"

var (
	// ErrConversationNotFound возвращается, когда диалог не найден
	ErrConversationNotFound = errors.New("chatservice: conversation not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("chatservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("chatservice client: invalid response")

	// ErrDispatcherClosed возвращается при отправке задачи в закрытый диспетчер
	ErrDispatcherClosed = errors.New("chatservice: dispatcher closed")
)
