package chatservice

import "time"

// createConversationRequest тело запроса создания диалога
type createConversationRequest struct {
	DriverID  string `json:"driver_id"`
	ListingID string `json:"listing_id"`
	RequestID string `json:"request_id"`
}

// createConversationResponse ответ на создание диалога
type createConversationResponse struct {
	ID string `json:"id"`
}

// sendMessageRequest тело запроса отправки сообщения
type sendMessageRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Conversation диалог водителя и хоста
type Conversation struct {
	ID        string
	DriverID  string
	ListingID string
	RequestID string
	Messages  []Message
	CreatedAt time.Time
}

// Message сообщение в диалоге
type Message struct {
	Text   string
	Author string
	SentAt time.Time
}
