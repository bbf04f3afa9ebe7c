package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatType is the closed set of chat kinds.
type ChatType string

const (
	ChatUserUser   ChatType = "user-user"
	ChatUserDoctor ChatType = "user-doctor"
	ChatGroup      ChatType = "group"
)

// ValidChatType reports whether s names a known chat type.
func ValidChatType(s string) bool {
	switch ChatType(s) {
	case ChatUserUser, ChatUserDoctor, ChatGroup:
		return true
	}
	return false
}

type Chat struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ChatType     ChatType             `bson:"chatType" json:"chatType"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	Messages     []primitive.ObjectID `bson:"messages" json:"messages"`
	GroupName    string               `bson:"groupName,omitempty" json:"groupName,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasParticipant reports whether userID belongs to the chat.
func (c *Chat) HasParticipant(userID primitive.ObjectID) bool {
	return containsID(c.Participants, userID)
}

// ChatParticipant is the resolved identity of a chat member.
type ChatParticipant struct {
	ID          primitive.ObjectID `json:"id"`
	Username    string             `json:"username"`
	AccountType Role               `json:"accountType"`
}

// ChatView is a chat with participant identities resolved for listings.
type ChatView struct {
	Chat
	ParticipantDetails []ChatParticipant `json:"participantDetails"`
}
