package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaticFavourite is a favourites entry keyed by a caller-supplied identifier
// instead of a post document reference.
type StaticFavourite struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Name   string             `bson:"name" json:"name"`
	PostID string             `bson:"postId" json:"postId"`
}

type User struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username              string               `bson:"username" json:"username"`
	Email                 string               `bson:"email" json:"email"`
	PhoneNumber           string               `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Password              string               `bson:"password" json:"-"` // Hide from JSON responses
	AccountType           Role                 `bson:"accountType" json:"accountType"`
	EmailVerificationCode string               `bson:"emailVerificationCode,omitempty" json:"-"`
	EmailVerified         bool                 `bson:"emailVerified" json:"emailVerified"`
	FavouriteList         []primitive.ObjectID `bson:"favouriteList" json:"favouriteList"`
	StaticFavouriteList   []StaticFavourite    `bson:"staticFavouriteList" json:"staticFavouriteList"`
	FriendsList           []primitive.ObjectID `bson:"friendsList" json:"friendsList"`
	GroupsList            []primitive.ObjectID `bson:"groupsList" json:"groupsList"`
	DoctorsList           []primitive.ObjectID `bson:"doctorsList" json:"doctorsList"`
	ScheduleList          []time.Time          `bson:"scheduleList" json:"scheduleList"`
	PreferredLanguage     string               `bson:"preferredLanguage" json:"preferredLanguage"` // "EN" or "AR"
	Banned                bool                 `bson:"banned" json:"banned"`
	BannedBy              *primitive.ObjectID  `bson:"bannedBy,omitempty" json:"-"`
	RoleChangedBy         *primitive.ObjectID  `bson:"roleChangedBy,omitempty" json:"-"`
	RoleChangedAt         *time.Time           `bson:"roleChangedAt,omitempty" json:"-"`
	ResetPasswordCode     string               `bson:"resetPasswordCode,omitempty" json:"-"`
	ResetPasswordExpiry   *time.Time           `bson:"resetPasswordExpiry,omitempty" json:"-"`
	CreatedAt             time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasFavourite reports whether postID is already in the favourite list.
func (u *User) HasFavourite(postID primitive.ObjectID) bool {
	return containsID(u.FavouriteList, postID)
}

// HasFriend reports whether friendID is already in the friends list.
func (u *User) HasFriend(friendID primitive.ObjectID) bool {
	return containsID(u.FriendsList, friendID)
}

// HasGroup reports whether groupID is already in the groups list.
func (u *User) HasGroup(groupID primitive.ObjectID) bool {
	return containsID(u.GroupsList, groupID)
}

// HasStaticFavourite reports whether the caller-supplied key is already used.
func (u *User) HasStaticFavourite(postID string) bool {
	for _, item := range u.StaticFavouriteList {
		if item.PostID == postID {
			return true
		}
	}
	return false
}

func containsID(list []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}

// RemoveID filters id out of list. Removing an absent id is a no-op.
func RemoveID(list []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(list))
	for _, item := range list {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}
