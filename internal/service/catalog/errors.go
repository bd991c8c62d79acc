package catalog

import "errors"

var (
	// ErrInvalidRange возвращается, когда границы диапазона не совпадают с границами слотов или end < start
	ErrInvalidRange = errors.New("catalog: invalid range")

	// ErrInvalidConfig возвращается при некорректных параметрах каталога
	ErrInvalidConfig = errors.New("catalog: invalid config")
)
