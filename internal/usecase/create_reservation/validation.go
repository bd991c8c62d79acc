package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ListingID) == "" {
		return fmt.Errorf("%w: listingID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.EndTime.IsAfter(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidTimeRange)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date time.Time, now time.Time) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// findBlocked возвращает слоты диапазона, которые уже заблокированы
func findBlocked(entry domain.LedgerEntry, keys []domain.SlotKey) []domain.SlotKey {
	blocked := make([]domain.SlotKey, 0)
	for _, key := range keys {
		if entry.IsReserved(key) {
			blocked = append(blocked, key)
		}
	}
	return blocked
}
