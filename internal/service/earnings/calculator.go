package earnings

import (
	"math"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// DailyStats aggregates of the requests whose start falls on the current day
type DailyStats struct {
	RequestsToday  int     `json:"requestsToday"`
	AcceptedToday  int     `json:"acceptedToday"`
	EarningsToday  float64 `json:"earningsToday"`
	AcceptanceRate int     `json:"acceptanceRate"`
}

// Commission returns the platform commission for a gross amount, rounded to cents.
func Commission(gross float64) float64 {
	return domain.RoundMoney(domain.CommissionRate * gross)
}

// NetAmount returns what the host keeps from a gross amount.
func NetAmount(gross float64) float64 {
	return domain.RoundMoney(gross - Commission(gross))
}

// NewEarning builds the earning transaction of an accepted request.
func NewEarning(id string, req domain.HostRequest, at time.Time) domain.Transaction {
	gross := domain.RoundMoney(req.GrossPrice)
	commission := Commission(gross)

	return domain.Transaction{
		ID:          id,
		Kind:        domain.TransactionEarning,
		GrossAmount: ptr.Ptr(gross),
		Commission:  ptr.Ptr(commission),
		NetAmount:   domain.RoundMoney(gross - commission),
		Timestamp:   at,
		ListingID:   ptr.Ptr(req.ListingID),
		RequestID:   ptr.Ptr(req.ID),
	}
}

// NewPayout builds a payout transaction; the net amount is negative.
func NewPayout(id string, amount float64, at time.Time) domain.Transaction {
	return domain.Transaction{
		ID:        id,
		Kind:      domain.TransactionPayout,
		NetAmount: -domain.RoundMoney(amount),
		Timestamp: at,
	}
}

// Balance sums the net amounts of the ledger.
func Balance(transactions []domain.Transaction) float64 {
	var sum float64
	for _, tx := range transactions {
		sum += tx.NetAmount
	}
	return domain.RoundMoney(sum)
}

// ComputeDailyStats derives today's stats from the live queue and the history.
func ComputeDailyStats(requests []domain.HostRequest, now time.Time) DailyStats {
	var stats DailyStats

	y, m, d := now.Date()
	for _, req := range requests {
		start := req.StartTime.In(now.Location())
		sy, sm, sd := start.Date()
		if sy != y || sm != m || sd != d {
			continue
		}

		stats.RequestsToday++
		if req.IsAccepted() {
			stats.AcceptedToday++
			stats.EarningsToday += NetAmount(req.GrossPrice)
		}
	}

	stats.EarningsToday = domain.RoundMoney(stats.EarningsToday)
	if stats.RequestsToday > 0 {
		stats.AcceptanceRate = int(math.Round(float64(stats.AcceptedToday) / float64(stats.RequestsToday) * 100))
	}

	return stats
}
