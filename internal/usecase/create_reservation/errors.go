package create_reservation

import "errors"

var (
	// ErrListingNotFound возвращается, когда парковка не найдена
	ErrListingNotFound = errors.New("create_reservation: listing not found")

	// ErrListingInactive возвращается, когда парковка снята с публикации
	ErrListingInactive = errors.New("create_reservation: listing is not active")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidTimeRange возвращается, когда диапазон не выровнен по слотам или пуст
	ErrInvalidTimeRange = errors.New("create_reservation: invalid time range")

	// ErrSlotNotAvailable возвращается, когда часть диапазона уже заблокирована
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrNoFreeSpaces возвращается, когда на парковке не осталось свободных мест
	ErrNoFreeSpaces = errors.New("create_reservation: no free spaces")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
