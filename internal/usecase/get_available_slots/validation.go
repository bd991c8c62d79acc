package get_available_slots

import (
	"fmt"
	"strings"
	"time"
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

	return nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// isDateInPast проверяет, что дата раньше сегодняшней
func isDateInPast(date time.Time, now time.Time) bool {
	return startOfDay(date, now.Location()).Before(startOfDay(now, now.Location()))
}

// isToday проверяет, что дата совпадает с сегодняшней
func isToday(date time.Time, now time.Time) bool {
	return startOfDay(date, now.Location()).Equal(startOfDay(now, now.Location()))
}
