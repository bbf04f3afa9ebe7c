package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of post categories. Research and Courses are
// restricted to elevated roles.
type Category string

const (
	CategoryCommunity Category = "Community"
	CategoryResearch  Category = "Research"
	CategoryCourses   Category = "Courses"
)

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryCommunity, CategoryResearch, CategoryCourses:
		return true
	}
	return false
}

// Restricted reports whether publishing to c requires an elevated role.
func (c Category) Restricted() bool {
	return c == CategoryResearch || c == CategoryCourses
}

type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	Title       string               `bson:"title" json:"title"`
	Content     string               `bson:"content" json:"content"`
	Category    Category             `bson:"category" json:"category"`
	SubCategory string               `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Image       string               `bson:"image,omitempty" json:"image,omitempty"`
	URL         string               `bson:"url,omitempty" json:"url,omitempty"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"` // doubles as favourite count
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// OwnedBy reports whether the post belongs to userID.
func (p *Post) OwnedBy(userID primitive.ObjectID) bool {
	return p.UserID == userID
}
