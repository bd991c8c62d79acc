package replication

import "errors"

var (
	// ErrAlreadyStarted возвращается при повторном запуске синхронизатора
	ErrAlreadyStarted = errors.New("replication: already started")

	// ErrSubscribe возвращается, когда не удалось подписаться на транспорт
	ErrSubscribe = errors.New("replication: failed to subscribe")

	// ErrPublish возвращается, когда снимок не удалось отправить
	ErrPublish = errors.New("replication: failed to publish snapshot")
)
