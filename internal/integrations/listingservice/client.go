package listingservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Client клиент для работы с ListingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	mu       sync.RWMutex
	lastKnown []domain.Listing
}

// NewClient создает новый экземпляр клиента ListingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListListings получает все парковки хоста
// При недоступности сервиса возвращает последний успешно полученный список (graceful degradation)
func (c *Client) ListListings(ctx context.Context) ([]domain.Listing, error) {
	var listings []Listing
	err := c.getJSON(ctx, c.baseURL+"/internal/listings", &listings)
	if err != nil {
		c.mu.RLock()
		cached := c.lastKnown
		c.mu.RUnlock()

		if cached != nil {
			c.log.Error("ListingService unavailable, using %d cached listings: %v", len(cached), err)
			return cloneListings(cached), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ToDomain())
	}

	c.mu.Lock()
	c.lastKnown = cloneListings(out)
	c.mu.Unlock()

	return out, nil
}

// GetListing получает парковку по ID
func (c *Client) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var listing Listing
	if err := c.getJSON(ctx, c.baseURL+"/internal/listings/"+url.PathEscape(id), &listing); err != nil {
		return nil, err
	}

	out := listing.ToDomain()
	return &out, nil
}

// Drivers получает водителей, от имени которых приходят заявки
func (c *Client) Drivers(ctx context.Context) ([]domain.Driver, error) {
	var drivers []Driver
	if err := c.getJSON(ctx, c.baseURL+"/internal/drivers", &drivers); err != nil {
		return nil, err
	}

	out := make([]domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, d.ToDomain())
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrListingNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func cloneListings(in []domain.Listing) []domain.Listing {
	out := make([]domain.Listing, len(in))
	copy(out, in)
	return out
}
