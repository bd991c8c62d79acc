package domain

// NotificationKind represents the visual kind of a host notification
type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
)

// Notification fire-and-forget message for the host
type Notification struct {
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Kind    NotificationKind `json:"kind"`
}

// ConversationRequest asks the chat collaborator to open a conversation for an accepted request
type ConversationRequest struct {
	RequestID   string `json:"requestId"`
	ListingID   string `json:"listingId"`
	ListingName string `json:"listingName,omitempty"`
	DriverID    string `json:"driverId"`
	DriverName  string `json:"driverName,omitempty"`
	AuthorID    string `json:"authorId"`
	AuthorName  string `json:"authorName,omitempty"`
	Text        string `json:"text"`
}
