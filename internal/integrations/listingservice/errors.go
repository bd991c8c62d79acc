package listingservice

import "errors"

var (
	// ErrListingNotFound возвращается, когда парковка не найдена
	ErrListingNotFound = errors.New("listingservice: listing not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("listingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("listingservice client: invalid response")

	// ErrServiceDegraded возвращается, когда сервис недоступен и использован последний известный список
	ErrServiceDegraded = errors.New("listingservice unavailable: graceful degradation applied")
)
