package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageType is the closed set of message kinds. Text messages carry Content,
// audio and file messages carry FileURL.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageAudio MessageType = "audio"
	MessageFile  MessageType = "file"
)

// ValidMessageType reports whether s names a known message type.
func ValidMessageType(s string) bool {
	switch MessageType(s) {
	case MessageText, MessageAudio, MessageFile:
		return true
	}
	return false
}

type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID      primitive.ObjectID `bson:"chatId" json:"chatId"`
	SenderID    primitive.ObjectID `bson:"senderId" json:"senderId"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	MessageType MessageType        `bson:"messageType" json:"messageType"`
	FileURL     string             `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// MessageView is a message with the sender's username resolved.
type MessageView struct {
	Message
	SenderName string `json:"senderName"`
}
