package listingservice

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Listing модель парковки из ListingService
type Listing struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	PricePerHour  float64 `json:"price_per_hour"`
	CapacityTotal int     `json:"capacity_total"`
	IsActive      bool    `json:"is_active"`
}

// Driver модель водителя из ListingService
type Driver struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToDomain конвертирует в доменную модель
func (l Listing) ToDomain() domain.Listing {
	return domain.Listing{
		ID:            l.ID,
		Name:          l.Name,
		Address:       l.Address,
		PricePerHour:  l.PricePerHour,
		CapacityTotal: l.CapacityTotal,
		IsActive:      l.IsActive,
	}
}

// ToDomain конвертирует в доменную модель
func (d Driver) ToDomain() domain.Driver {
	return domain.Driver{ID: d.ID, Name: d.Name}
}
