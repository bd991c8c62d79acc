package earnings

import "errors"

var (
	// ErrInvalidAmount возвращается при неположительной сумме выплаты
	ErrInvalidAmount = errors.New("earnings: amount must be positive")

	// ErrInsufficientBalance возвращается, когда сумма выплаты превышает баланс
	ErrInsufficientBalance = errors.New("earnings: insufficient balance")

	// ErrInvalidRequest возвращается, когда заявка не может дать начисление
	ErrInvalidRequest = errors.New("earnings: request is not billable")
)
