package models

import "time"

// ChainKind names one of the three per-user feed collections.
type ChainKind string

const (
	ChainMessage         ChainKind = "message"
	ChainNotification    ChainKind = "notification"
	ChainActivityHistory ChainKind = "activity_history"
)

// MessageItem is one entry in a user's message feed.
type MessageItem struct {
	ID      string    `bson:"id" json:"id"`
	Sender  string    `bson:"sender" json:"sender"`
	Subject string    `bson:"subject" json:"subject"`
	Content string    `bson:"content" json:"content"`
	SentAt  time.Time `bson:"sent_at" json:"sent_at"`
	Read    bool      `bson:"read" json:"read"`
}

// NotificationItem is one entry in a user's notification feed.
type NotificationItem struct {
	ID        string    `bson:"id" json:"id"`
	Type      string    `bson:"type" json:"type"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Read      bool      `bson:"read" json:"read"`
}

// ActivityItem is one entry in a user's activity history.
type ActivityItem struct {
	ID         string    `bson:"id" json:"id"`
	Action     string    `bson:"action" json:"action"`
	Details    string    `bson:"details" json:"details"`
	OccurredAt time.Time `bson:"occurred_at" json:"occurred_at"`
}

// MessageChain is the per-user message feed document, keyed by
// user_email (at most one per email).
type MessageChain struct {
	ID          string        `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail   string        `bson:"user_email" json:"user_email"`
	TotalCount  int           `bson:"total_count" json:"total_count"`
	UnreadCount int           `bson:"unread_count" json:"unread_count"`
	Items       []MessageItem `bson:"items" json:"items"`
}

// NotificationChain is the per-user notification feed document.
type NotificationChain struct {
	ID          string             `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail   string             `bson:"user_email" json:"user_email"`
	TotalCount  int                `bson:"total_count" json:"total_count"`
	UnreadCount int                `bson:"unread_count" json:"unread_count"`
	Items       []NotificationItem `bson:"items" json:"items"`
}

// ActivityHistoryChain is the per-user activity log document. Activity
// entries have no read state, so there is no unread counter.
type ActivityHistoryChain struct {
	ID         string         `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail  string         `bson:"user_email" json:"user_email"`
	TotalCount int            `bson:"total_count" json:"total_count"`
	Items      []ActivityItem `bson:"items" json:"items"`
}

// NewMessageChain returns the empty message feed written for a freshly
// provisioned account.
func NewMessageChain(email string) *MessageChain {
	return &MessageChain{UserEmail: email, Items: []MessageItem{}}
}

func NewNotificationChain(email string) *NotificationChain {
	return &NotificationChain{UserEmail: email, Items: []NotificationItem{}}
}

func NewActivityHistoryChain(email string) *ActivityHistoryChain {
	return &ActivityHistoryChain{UserEmail: email, Items: []ActivityItem{}}
}
