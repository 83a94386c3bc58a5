package model

import "time"

// Sender values
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single chat turn, either from the user or the bot
type Message struct {
	ID        int64     `json:"id" bson:"_id"`
	UserID    int64     `json:"user_id" bson:"userId"`
	Sender    string    `json:"sender" bson:"sender"` // "user" or "bot"
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// MessageWithAnalysis pairs a message with its sentiment record, if any
type MessageWithAnalysis struct {
	Message  *Message         `json:"message"`
	Analysis *SentimentRecord `json:"analysis"`
}
