package broadcast

import "errors"

var (
	// ErrClosed возвращается при публикации в закрытый транспорт
	ErrClosed = errors.New("broadcast: closed")

	// ErrEncode возвращается, когда снимок не удалось сериализовать
	ErrEncode = errors.New("broadcast: failed to encode snapshot")

	// ErrTransport возвращается при ошибке Redis
	ErrTransport = errors.New("broadcast: transport error")
)
