package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
)

type CreatePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Category    string `json:"category" binding:"required"`
	SubCategory string `json:"subCategory"`
	Image       string `json:"image"`
	URL         string `json:"url" binding:"omitempty,url"`
}

// CreatePost publishes a post, enforcing the role-to-category whitelist:
// plain users get Community only, admin and moderator may also publish to
// Research and Courses.
func (h *Handler) CreatePost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	category := models.Category(req.Category)
	if !user.AccountType.MayPublish(category) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to post in this category."})
		return
	}

	post := models.Post{
		UserID:      user.ID,
		Title:       req.Title,
		Content:     req.Content,
		Category:    category,
		SubCategory: req.SubCategory,
		Image:       req.Image,
		URL:         req.URL,
	}

	if err := h.Posts.Create(c.Request.Context(), &post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

type EditPostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Image       string `json:"image"`
	URL         string `json:"url" binding:"omitempty,url"`
}

// EditPost mutates a post for its owner or an elevated role. The category
// whitelist applies to edits the same as to creation.
func (h *Handler) EditPost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	post, err := h.Posts.FindByID(ctx, postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !post.OwnedBy(user.ID) && !user.AccountType.Elevated() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to edit this post."})
		return
	}

	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		category := models.Category(req.Category)
		if !user.AccountType.MayPublish(category) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to post in this category."})
			return
		}
		post.Category = category
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.SubCategory != "" {
		post.SubCategory = req.SubCategory
	}
	if req.Image != "" {
		post.Image = req.Image
	}
	if req.URL != "" {
		post.URL = req.URL
	}

	if err := h.Posts.Save(ctx, post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post for its owner or an elevated role.
func (h *Handler) DeletePost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx := c.Request.Context()
	post, err := h.Posts.FindByID(ctx, postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !post.OwnedBy(user.ID) && !user.AccountType.Elevated() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this post."})
		return
	}

	if err := h.Posts.Delete(ctx, postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// GetPosts lists posts newest first with optional category filter and
// pagination, owner usernames resolved.
func (h *Handler) GetPosts(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	filter := repository.PostFilter{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}

	ctx := c.Request.Context()
	posts, err := h.Posts.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, h.resolvePostOwners(c, posts))
}

// GetGroupedPosts groups a restricted category's posts by subcategory.
func (h *Handler) GetGroupedPosts(c *gin.Context) {
	categoryParam := c.Query("category")
	if !models.ValidCategory(categoryParam) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	category := models.Category(categoryParam)
	if !category.Restricted() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grouping is only available for Research and Courses"})
		return
	}

	grouped, err := h.Posts.GroupBySubCategory(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, grouped)
}

// GetPostByID returns a single post with its owner's username resolved.
func (h *Handler) GetPostByID(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx := c.Request.Context()
	post, err := h.Posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetMyPosts lists the principal's own posts, newest first.
func (h *Handler) GetMyPosts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	posts, err := h.Posts.FindByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// AddToFavourites mirrors the post into the user's favourite list and the
// user into the post's likes, both inside one repository transaction.
func (h *Handler) AddToFavourites(c *gin.Context) {
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

	if err := h.Posts.AddFavourite(ctx, user.ID, postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to favourites"})
		return
	}

	user.FavouriteList = append(user.FavouriteList, postID)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Post added to favourites",
		"favouriteList": user.FavouriteList,
	})
}

// RemoveFromFavourites undoes AddToFavourites on both documents.
func (h *Handler) RemoveFromFavourites(c *gin.Context) {
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

	if err := h.Posts.RemoveFavourite(ctx, user.ID, postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from favourites"})
		return
	}

	user.FavouriteList = models.RemoveID(user.FavouriteList, postID)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Post removed from favourites",
		"favouriteList": user.FavouriteList,
	})
}

// resolvePostOwners decorates posts with their owners' usernames.
func (h *Handler) resolvePostOwners(c *gin.Context, posts []models.Post) []gin.H {
	ownerIDs := make([]primitive.ObjectID, 0, len(posts))
	seen := make(map[primitive.ObjectID]bool)
	for _, post := range posts {
		if !seen[post.UserID] {
			seen[post.UserID] = true
			ownerIDs = append(ownerIDs, post.UserID)
		}
	}

	names := make(map[primitive.ObjectID]string)
	if owners, err := h.Users.FindByIDs(c.Request.Context(), ownerIDs); err == nil {
		for _, owner := range owners {
			names[owner.ID] = owner.Username
		}
	}

	out := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		out = append(out, gin.H{
			"id":          post.ID,
			"userId":      post.UserID,
			"username":    names[post.UserID],
			"title":       post.Title,
			"content":     post.Content,
			"category":    post.Category,
			"subCategory": post.SubCategory,
			"image":       post.Image,
			"url":         post.URL,
			"likes":       post.Likes,
			"createdAt":   post.CreatedAt,
		})
	}
	return out
}
