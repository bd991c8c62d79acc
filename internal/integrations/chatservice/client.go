package chatservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с ChatService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ChatService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateConversation создает диалог по принятой заявке
func (c *Client) CreateConversation(ctx context.Context, driverID, listingID, requestID string) (string, error) {
	body := createConversationRequest{DriverID: driverID, ListingID: listingID, RequestID: requestID}

	var resp createConversationResponse
	if err := c.postJSON(ctx, c.baseURL+"/internal/conversations", body, http.StatusCreated, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: empty conversation id", ErrInvalidResponse)
	}

	c.log.Info("CreateConversation: id=%s, request=%s", resp.ID, requestID)
	return resp.ID, nil
}

// SendInitialMessage отправляет первое сообщение в диалог
func (c *Client) SendInitialMessage(ctx context.Context, conversationID, text, authorRef string) error {
	endpoint := fmt.Sprintf("%s/internal/conversations/%s/messages", c.baseURL, url.PathEscape(conversationID))
	return c.postJSON(ctx, endpoint, sendMessageRequest{Text: text, Author: authorRef}, http.StatusCreated, nil)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body interface{}, expected int, dst interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case expected, http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrConversationNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
