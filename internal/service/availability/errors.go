package availability

import "errors"

// ErrListingNotFound возвращается, когда для парковки нет записи в реестре
var ErrListingNotFound = errors.New("availability: listing not found")
