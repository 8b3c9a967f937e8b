package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is the pairwise thread between two users. UnreadCounts is
// keyed by participant hex id; the sender's send bumps the recipient's
// count, reading the thread zeroes the reader's.
type Conversation struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Participants  []primitive.ObjectID `bson:"participants" json:"participants"`
	LastMessage   string               `bson:"lastMessage" json:"lastMessage"`
	LastMessageAt time.Time            `bson:"lastMessageAt" json:"lastMessageAt"`
	UnreadCounts  map[string]int       `bson:"unreadCounts" json:"unreadCounts"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	SenderID       primitive.ObjectID `bson:"senderId" json:"senderId"`
	Body           string             `bson:"body" json:"body"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
