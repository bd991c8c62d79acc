package requests

import "errors"

var (
	// ErrDisposed возвращается при запуске остановленного движка
	ErrDisposed = errors.New("requests: engine is disposed")

	// ErrAlreadyStarted возвращается при повторном запуске таймеров
	ErrAlreadyStarted = errors.New("requests: engine already started")

	// ErrInvalidConfig возвращается при некорректной конфигурации движка
	ErrInvalidConfig = errors.New("requests: invalid config")
)
