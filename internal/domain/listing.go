package domain

// Listing represents a parking space offered by a host
type Listing struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address,omitempty"`
	PricePerHour  float64 `json:"pricePerHour"`
	CapacityTotal int     `json:"capacityTotal"`
	IsActive      bool    `json:"isActive"`
}

// Driver represents a driver who can send booking requests to a host
type Driver struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
