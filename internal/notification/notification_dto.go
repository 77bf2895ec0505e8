package notification

type CreateNotificationRequest struct {
	RecipientID  string `json:"recipient_id" binding:"required"`
	Type         string `json:"type" binding:"required,max=50"`
	Title        string `json:"title" binding:"required,max=200"`
	Message      string `json:"message" binding:"max=2000"`
	ResourceType string `json:"resource_type" binding:"max=50"`
	ResourceID   string `json:"resource_id" binding:"max=64"`
}

type ListFilter struct {
	UnreadOnly bool
	Type       string
	Page       int
	PageSize   int
}

type NotificationResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	ResourceType string  `json:"resource_type,omitempty"`
	ResourceID   string  `json:"resource_id,omitempty"`
	Read         bool    `json:"read"`
	ReadAt       *string `json:"read_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
