package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
)

// Relationship lists live on the user document. Adding an existing member is
// a conflict, removing an absent one is a silent no-op, and listings resolve
// the referenced entities.

type PostIDRequest struct {
	PostID string `json:"postId" binding:"required"`
}

// AddToFavouriteList puts a post on the principal's favourite list. The
// like-count mirror on the post itself is handled by the posts favourites
// endpoint; this one only tracks the list membership.
func (h *Handler) AddToFavouriteList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req PostIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Posts.FindByID(ctx, postID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if user.HasFavourite(postID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post already in favourite list"})
		return
	}

	user.FavouriteList = append(user.FavouriteList, postID)
	if err := h.Users.Save(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favourite list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Post added to favourite list",
		"favouriteList": user.FavouriteList,
	})
}

// RemoveFromFavouriteList filters a post out of the favourite list; removing
// an absent id never errors.
func (h *Handler) RemoveFromFavouriteList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req PostIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	user.FavouriteList = models.RemoveID(user.FavouriteList, postID)
	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favourite list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Post removed from favourite list",
		"favouriteList": user.FavouriteList,
	})
}

// GetFavouriteList resolves the favourite post ids into posts.
func (h *Handler) GetFavouriteList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	posts, err := h.Posts.FindByIDs(c.Request.Context(), user.FavouriteList)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favourites"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

type StaticFavouriteRequest struct {
	Name   string `json:"name" binding:"required"`
	PostID string `json:"postId" binding:"required"`
}

// AddToStaticFavouriteList stores a labelled entry keyed by the
// caller-supplied identifier; duplicates on that key are rejected.
func (h *Handler) AddToStaticFavouriteList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req StaticFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if user.HasStaticFavourite(req.PostID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID already exists in static favourite list"})
		return
	}

	user.StaticFavouriteList = append(user.StaticFavouriteList, models.StaticFavourite{
		UserID: user.ID,
		Name:   req.Name,
		PostID: req.PostID,
	})
	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update static favourite list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Added to static favourite list",
		"staticFavouriteList": user.StaticFavouriteList,
	})
}

type StaticFavouriteRemoveRequest struct {
	PostID string `json:"postId" binding:"required"`
}

// RemoveFromStaticFavouriteList filters by the caller-supplied key.
func (h *Handler) RemoveFromStaticFavouriteList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req StaticFavouriteRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	filtered := make([]models.StaticFavourite, 0, len(user.StaticFavouriteList))
	for _, item := range user.StaticFavouriteList {
		if item.PostID != req.PostID {
			filtered = append(filtered, item)
		}
	}
	user.StaticFavouriteList = filtered

	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update static favourite list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Removed from static favourite list",
		"staticFavouriteList": user.StaticFavouriteList,
	})
}

// GetStaticFavouriteList returns the stored entries as-is; there is nothing
// to resolve since the key is caller-supplied.
func (h *Handler) GetStaticFavouriteList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user.StaticFavouriteList)
}

type FriendIDRequest struct {
	FriendID string `json:"friendId" binding:"required"`
}

// AddFriend adds another account to the principal's friends list.
func (h *Handler) AddFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req FriendIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	friendID, err := primitive.ObjectIDFromHex(req.FriendID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friend ID"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Users.FindByID(ctx, friendID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.HasFriend(friendID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already in friends list"})
		return
	}

	user.FriendsList = append(user.FriendsList, friendID)
	if err := h.Users.Save(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friends list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "User added to friends list",
		"friendsList": user.FriendsList,
	})
}

// RemoveFriend filters an account out of the friends list.
func (h *Handler) RemoveFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req FriendIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	friendID, err := primitive.ObjectIDFromHex(req.FriendID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friend ID"})
		return
	}

	user.FriendsList = models.RemoveID(user.FriendsList, friendID)
	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friends list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "User removed from friends list",
		"friendsList": user.FriendsList,
	})
}

// GetFriendsList resolves the friends list into user identities.
func (h *Handler) GetFriendsList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	friends, err := h.Users.FindByIDs(c.Request.Context(), user.FriendsList)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve friends"})
		return
	}

	response := make([]gin.H, 0, len(friends))
	for _, friend := range friends {
		response = append(response, gin.H{
			"id":       friend.ID,
			"username": friend.Username,
			"email":    friend.Email,
		})
	}
	c.JSON(http.StatusOK, response)
}

type GroupIDRequest struct {
	GroupID string `json:"groupId" binding:"required"`
}

// AddGroup joins the principal to a group.
func (h *Handler) AddGroup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req GroupIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Groups.FindByID(ctx, groupID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if user.HasGroup(groupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already a member of the group"})
		return
	}

	user.GroupsList = append(user.GroupsList, groupID)
	if err := h.Users.Save(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update groups list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to group", "groupsList": user.GroupsList})
}

// RemoveGroup leaves a group.
func (h *Handler) RemoveGroup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req GroupIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	user.GroupsList = models.RemoveID(user.GroupsList, groupID)
	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update groups list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from group", "groupsList": user.GroupsList})
}

// GetGroupsList resolves the groups list into group documents.
func (h *Handler) GetGroupsList(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	groups, err := h.Groups.FindByIDs(c.Request.Context(), user.GroupsList)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}
	c.JSON(http.StatusOK, groups)
}
