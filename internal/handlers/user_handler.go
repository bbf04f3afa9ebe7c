package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/utils"
)

// GetProfile returns the authenticated user's own document.
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

type ProfileUpdateRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email" binding:"omitempty,email"`
	PhoneNumber       string `json:"phoneNumber"`
	PreferredLanguage string `json:"preferredLanguage" binding:"omitempty,oneof=EN AR"`
}

// UpdateProfile updates the principal's own profile. Changing the email
// re-triggers verification and returns a fresh token so the client is not
// left holding claims for the old address.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var token string

	if req.Email != "" && req.Email != user.Email {
		if _, err := h.Users.FindByEmail(ctx, req.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use."})
			return
		}

		verificationCode := utils.GenerateCode()
		h.sendMail(req.Email, "Email Verification", "Your verification code is: "+verificationCode)

		user.Email = req.Email
		user.EmailVerificationCode = verificationCode
		user.EmailVerified = false

		var err error
		token, err = utils.GenerateJWT(user.ID.Hex(), user.AccountType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.PreferredLanguage != "" {
		user.PreferredLanguage = req.PreferredLanguage
	}

	if err := h.Users.Save(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if token != "" {
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "token": token})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

type VerifyEmailRequest struct {
	VerificationCode string `json:"verificationCode" binding:"required"`
}

// VerifyEmail marks the account that holds the code as verified and consumes
// the code.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.FindByVerificationCode(ctx, req.VerificationCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification code."})
		return
	}

	user.EmailVerified = true
	user.EmailVerificationCode = ""

	if err := h.Users.Save(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully."})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword swaps the password after verifying the old one and returns a
// fresh token.
func (h *Handler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.Password = hashedPassword

	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.AccountType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully", "token": token})
}

type ChangeRoleRequest struct {
	UserID  string `json:"userId" binding:"required"`
	NewRole string `json:"newRole" binding:"required"`
}

// ChangeRole assigns a new role to another account. Admins cannot change
// their own role.
func (h *Handler) ChangeRole(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(req.NewRole) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role specified."})
		return
	}

	if actor.ID.Hex() == req.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change your own role."})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	target, err := h.Users.FindByID(ctx, targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}

	now := time.Now()
	target.AccountType = models.Role(req.NewRole)
	target.RoleChangedBy = &actor.ID
	target.RoleChangedAt = &now

	if err := h.Users.Save(ctx, target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User role updated successfully.",
		"userId":  target.ID,
		"newRole": target.AccountType,
	})
}

// GetAllUsers lists every account. Admin only.
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.Users.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// BanUser flags an account as banned; the auth gate rejects it from then on.
func (h *Handler) BanUser(c *gin.Context) {
	h.setBanned(c, true)
}

// UnbanUser lifts a ban.
func (h *Handler) UnbanUser(c *gin.Context) {
	h.setBanned(c, false)
}

func (h *Handler) setBanned(c *gin.Context, banned bool) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	target, err := h.Users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	target.Banned = banned
	if banned {
		target.BannedBy = &actor.ID
	} else {
		target.BannedBy = nil
	}

	if err := h.Users.Save(ctx, target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	if banned {
		c.JSON(http.StatusOK, gin.H{"message": "User banned successfully"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "User unbanned successfully"})
	}
}

// GetDoctors lists all accounts with the doctor role.
func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.Users.FindByRole(c.Request.Context(), models.RoleDoctor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctors"})
		return
	}

	response := make([]gin.H, 0, len(doctors))
	for _, doctor := range doctors {
		response = append(response, gin.H{
			"id":    doctor.ID,
			"name":  doctor.Username,
			"email": doctor.Email,
		})
	}
	c.JSON(http.StatusOK, response)
}
