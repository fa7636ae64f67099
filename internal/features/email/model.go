package email

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusQueued Status = "queued"
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Message is one send attempt as journaled in the history collection.
type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    int64              `json:"userId" bson:"user_id"`
	From      string             `json:"from" bson:"from"`
	To        []string           `json:"to" bson:"to"`
	Subject   string             `json:"subject" bson:"subject"`
	Body      string             `json:"body" bson:"body"`
	Status    Status             `json:"status" bson:"status"`
	Error     string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	SentAt    *time.Time         `json:"sentAt,omitempty" bson:"sent_at,omitempty"`
}
