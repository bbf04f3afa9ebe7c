package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
)

// messageHistoryLimit caps how many messages a retrieval returns.
const messageHistoryLimit = 100

type InitiateChatRequest struct {
	ParticipantIDs []string `json:"participantIds" binding:"required,min=1"`
	ChatType       string   `json:"chatType" binding:"required"`
	GroupName      string   `json:"groupName"`
}

// InitiateChat creates a chat between the principal and the given
// participants. Group chats need a name and are persisted like any other
// chat.
func (h *Handler) InitiateChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req InitiateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidChatType(req.ChatType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat type"})
		return
	}
	chatType := models.ChatType(req.ChatType)

	if chatType == models.ChatGroup && req.GroupName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group chats require a group name"})
		return
	}
	if chatType != models.ChatGroup && req.GroupName != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only group chats carry a group name"})
		return
	}

	participants := []primitive.ObjectID{user.ID}
	for _, idHex := range req.ParticipantIDs {
		id, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid participant ID"})
			return
		}
		if id != user.ID {
			participants = append(participants, id)
		}
	}

	chat := models.Chat{
		ChatType:     chatType,
		Participants: participants,
		GroupName:    req.GroupName,
	}

	if err := h.Chats.Create(c.Request.Context(), &chat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}

	c.JSON(http.StatusCreated, chat)
}

// GetChats lists the principal's chats, most recently updated first, with
// participant identities resolved.
func (h *Handler) GetChats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	chats, err := h.Chats.FindByParticipant(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chats"})
		return
	}

	ids := make([]primitive.ObjectID, 0)
	seen := make(map[primitive.ObjectID]bool)
	for _, chat := range chats {
		for _, participant := range chat.Participants {
			if !seen[participant] {
				seen[participant] = true
				ids = append(ids, participant)
			}
		}
	}

	identities := make(map[primitive.ObjectID]models.ChatParticipant)
	if users, err := h.Users.FindByIDs(ctx, ids); err == nil {
		for _, participant := range users {
			identities[participant.ID] = models.ChatParticipant{
				ID:          participant.ID,
				Username:    participant.Username,
				AccountType: participant.AccountType,
			}
		}
	}

	views := make([]models.ChatView, 0, len(chats))
	for _, chat := range chats {
		view := models.ChatView{Chat: chat}
		view.ParticipantDetails = make([]models.ChatParticipant, 0, len(chat.Participants))
		for _, participant := range chat.Participants {
			if identity, found := identities[participant]; found {
				view.ParticipantDetails = append(view.ParticipantDetails, identity)
			}
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}

type SendMessageRequest struct {
	ChatID      string `json:"chatId" binding:"required"`
	Content     string `json:"content"`
	MessageType string `json:"messageType" binding:"required"`
	FileURL     string `json:"fileUrl" binding:"omitempty,url"`
}

// SendMessage appends a message to a chat the principal belongs to. Text
// messages need content, audio and file messages need a file URL.
func (h *Handler) SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidMessageType(req.MessageType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}
	messageType := models.MessageType(req.MessageType)

	if messageType == models.MessageText && req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text messages require content"})
		return
	}
	if messageType != models.MessageText && req.FileURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio and file messages require a file URL"})
		return
	}

	chatID, err := primitive.ObjectIDFromHex(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	ctx := c.Request.Context()
	chat, err := h.Chats.FindByID(ctx, chatID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}

	if !chat.HasParticipant(user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant in this chat"})
		return
	}

	message := models.Message{
		ChatID:      chatID,
		SenderID:    user.ID,
		Content:     req.Content,
		MessageType: messageType,
		FileURL:     req.FileURL,
	}

	if err := h.Messages.Create(ctx, &message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	if err := h.Chats.AppendMessage(ctx, chatID, message.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update chat"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages returns the chat's most recent messages, newest first, with
// sender usernames resolved. Participants only.
func (h *Handler) GetMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	ctx := c.Request.Context()
	chat, err := h.Chats.FindByID(ctx, chatID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}

	if !chat.HasParticipant(user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant in this chat"})
		return
	}

	messages, err := h.Messages.FindByChat(ctx, chatID, messageHistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	senderIDs := make([]primitive.ObjectID, 0)
	seen := make(map[primitive.ObjectID]bool)
	for _, message := range messages {
		if !seen[message.SenderID] {
			seen[message.SenderID] = true
			senderIDs = append(senderIDs, message.SenderID)
		}
	}

	names := make(map[primitive.ObjectID]string)
	if senders, err := h.Users.FindByIDs(ctx, senderIDs); err == nil {
		for _, sender := range senders {
			names[sender.ID] = sender.Username
		}
	}

	views := make([]models.MessageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, models.MessageView{
			Message:    message,
			SenderName: names[message.SenderID],
		})
	}

	c.JSON(http.StatusOK, views)
}

// DeleteMessage removes a message. Admin and moderator only; the message id
// is detached from its chat before the record goes away.
func (h *Handler) DeleteMessage(c *gin.Context) {
	messageID, err := primitive.ObjectIDFromHex(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	ctx := c.Request.Context()
	message, err := h.Messages.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load message"})
		return
	}

	if err := h.Chats.DetachMessage(ctx, message.ChatID, messageID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update chat"})
		return
	}

	if err := h.Messages.Delete(ctx, messageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
