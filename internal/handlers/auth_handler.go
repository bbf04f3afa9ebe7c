package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/utils"
)

// resetCodeLifetime bounds how long a password-reset code stays valid.
const resetCodeLifetime = 10 * time.Minute

type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
}

// Register creates an account, emails a verification code, and relies on the
// unique email index to reject duplicates racing past the lookup.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Users.FindByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use."})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	verificationCode := utils.GenerateCode()
	user := models.User{
		Username:              req.Username,
		Email:                 req.Email,
		PhoneNumber:           req.PhoneNumber,
		Password:              hashedPassword,
		AccountType:           models.RoleUser,
		EmailVerificationCode: verificationCode,
		EmailVerified:         false,
		FavouriteList:         []primitive.ObjectID{},
		StaticFavouriteList:   []models.StaticFavourite{},
		FriendsList:           []primitive.ObjectID{},
		GroupsList:            []primitive.ObjectID{},
		DoctorsList:           []primitive.ObjectID{},
		ScheduleList:          []time.Time{},
		PreferredLanguage:     "EN",
	}

	if err := h.Users.Create(ctx, &user); err != nil {
		if repository.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.sendMail(req.Email, "Email Verification", "Your verification code is: "+verificationCode)

	c.JSON(http.StatusCreated, gin.H{"message": "User registered. Verification email sent."})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, rejects banned accounts before issuing
// anything, and returns a signed session token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}

	if user.Banned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is banned."})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.AccountType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"accountType": user.AccountType,
		},
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword issues a time-boxed numeric reset code. The response does
// not reveal whether the address exists.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent."})
		return
	}

	code := utils.GenerateCode()
	expiry := time.Now().Add(resetCodeLifetime)
	user.ResetPasswordCode = code
	user.ResetPasswordExpiry = &expiry

	if err := h.Users.Save(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reset code"})
		return
	}

	h.sendMail(user.Email, "Password Reset", "Your password reset code is: "+code)

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent."})
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	ResetCode   string `json:"resetCode" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword consumes a valid reset code exactly once: the code and its
// expiry are cleared in the same save that stores the new hash.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset code."})
		return
	}

	if user.ResetPasswordCode == "" ||
		user.ResetPasswordCode != req.ResetCode ||
		user.ResetPasswordExpiry == nil ||
		time.Now().After(*user.ResetPasswordExpiry) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset code."})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user.Password = hashedPassword
	user.ResetPasswordCode = ""
	user.ResetPasswordExpiry = nil

	if err := h.Users.Save(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully."})
}
