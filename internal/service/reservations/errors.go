package reservations

import "errors"

var (
	// ErrInvalidRange возвращается, когда диапазон не покрывает ни одного слота или не выровнен по каталогу
	ErrInvalidRange = errors.New("reservations: invalid slot range")

	// ErrInvalidDuration возвращается при неположительном продлении
	ErrInvalidDuration = errors.New("reservations: extension must be positive")

	// ErrReserve возвращается, когда реестр доступности отказал в блокировке слотов
	ErrReserve = errors.New("reservations: failed to reserve slots")
)
