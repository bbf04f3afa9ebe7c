package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
)

func TestInitiateChat(t *testing.T) {
	peer := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectCreate   bool
		checkChat      func(*testing.T, *models.Chat)
	}{
		{
			name: "direct chat created with principal prepended",
			body: map[string]interface{}{
				"participantIds": []string{peer.Hex()},
				"chatType":       "user-user",
			},
			expectedStatus: http.StatusCreated,
			expectCreate:   true,
			checkChat: func(t *testing.T, chat *models.Chat) {
				assert.Len(t, chat.Participants, 2)
				assert.Equal(t, peer, chat.Participants[1])
			},
		},
		{
			name: "group chat requires a name",
			body: map[string]interface{}{
				"participantIds": []string{peer.Hex()},
				"chatType":       "group",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "group chat with name created",
			body: map[string]interface{}{
				"participantIds": []string{peer.Hex()},
				"chatType":       "group",
				"groupName":      "Study Group",
			},
			expectedStatus: http.StatusCreated,
			expectCreate:   true,
			checkChat: func(t *testing.T, chat *models.Chat) {
				assert.Equal(t, "Study Group", chat.GroupName)
			},
		},
		{
			name: "direct chat must not carry a group name",
			body: map[string]interface{}{
				"participantIds": []string{peer.Hex()},
				"chatType":       "user-doctor",
				"groupName":      "sneaky",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown chat type rejected",
			body: map[string]interface{}{
				"participantIds": []string{peer.Hex()},
				"chatType":       "broadcast",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "principal listed as participant is deduplicated",
			body: map[string]interface{}{
				"participantIds": []string{peer.Hex()},
				"chatType":       "user-user",
			},
			expectedStatus: http.StatusCreated,
			expectCreate:   true,
			checkChat: func(t *testing.T, chat *models.Chat) {
				seen := make(map[primitive.ObjectID]int)
				for _, p := range chat.Participants {
					seen[p]++
				}
				for _, count := range seen {
					assert.Equal(t, 1, count)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := setupHandler()
			user := testUser(models.RoleUser)

			var created *models.Chat
			if tt.expectCreate {
				m.chats.On("Create", mock.Anything, mock.AnythingOfType("*models.Chat")).
					Run(func(args mock.Arguments) {
						created = args.Get(1).(*models.Chat)
					}).Return(nil)
			}

			router := setupRouter()
			router.POST("/chats", asUser(user), h.InitiateChat)

			recorder := performRequest(t, router, http.MethodPost, "/chats", tt.body)
			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if tt.expectCreate {
				assert.NotNil(t, created)
				assert.Equal(t, user.ID, created.Participants[0])
				if tt.checkChat != nil {
					tt.checkChat(t, created)
				}
			} else {
				m.chats.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
			m.chats.AssertExpectations(t)
		})
	}
}

func TestSendMessage(t *testing.T) {
	chatID := primitive.NewObjectID()

	tests := []struct {
		name           string
		participant    bool
		body           map[string]interface{}
		expectedStatus int
		expectCreate   bool
	}{
		{
			name:        "participant sends text",
			participant: true,
			body: map[string]interface{}{
				"chatId":      chatID.Hex(),
				"content":     "hello",
				"messageType": "text",
			},
			expectedStatus: http.StatusCreated,
			expectCreate:   true,
		},
		{
			name: "non-participant is rejected",
			body: map[string]interface{}{
				"chatId":      chatID.Hex(),
				"content":     "hello",
				"messageType": "text",
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:        "text without content rejected",
			participant: true,
			body: map[string]interface{}{
				"chatId":      chatID.Hex(),
				"messageType": "text",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "audio without file URL rejected",
			participant: true,
			body: map[string]interface{}{
				"chatId":      chatID.Hex(),
				"messageType": "audio",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "file message with URL accepted",
			participant: true,
			body: map[string]interface{}{
				"chatId":      chatID.Hex(),
				"messageType": "file",
				"fileUrl":     "https://files.example.com/report.pdf",
			},
			expectedStatus: http.StatusCreated,
			expectCreate:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := setupHandler()
			user := testUser(models.RoleUser)

			chat := &models.Chat{
				ID:           chatID,
				ChatType:     models.ChatUserUser,
				Participants: []primitive.ObjectID{primitive.NewObjectID()},
			}
			if tt.participant {
				chat.Participants = append(chat.Participants, user.ID)
			}
			m.chats.On("FindByID", mock.Anything, chatID).Return(chat, nil).Maybe()

			if tt.expectCreate {
				messageID := primitive.NewObjectID()
				m.messages.On("Create", mock.Anything, mock.MatchedBy(func(msg *models.Message) bool {
					return msg.ChatID == chatID && msg.SenderID == user.ID
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Message).ID = messageID
				}).Return(nil)
				m.chats.On("AppendMessage", mock.Anything, chatID, messageID).Return(nil)
			}

			router := setupRouter()
			router.POST("/messages", asUser(user), h.SendMessage)

			recorder := performRequest(t, router, http.MethodPost, "/messages", tt.body)
			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if !tt.expectCreate {
				m.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				m.chats.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything)
			}
			m.messages.AssertExpectations(t)
			m.chats.AssertExpectations(t)
		})
	}
}

func TestGetMessagesParticipantOnly(t *testing.T) {
	chatID := primitive.NewObjectID()

	t.Run("participant reads history", func(t *testing.T) {
		h, m := setupHandler()
		user := testUser(models.RoleUser)
		sender := testUser(models.RoleDoctor)
		sender.Username = "drsmith"

		chat := &models.Chat{
			ID:           chatID,
			ChatType:     models.ChatUserDoctor,
			Participants: []primitive.ObjectID{user.ID, sender.ID},
		}
		messages := []models.Message{{
			ID:          primitive.NewObjectID(),
			ChatID:      chatID,
			SenderID:    sender.ID,
			Content:     "take two of these",
			MessageType: models.MessageText,
		}}
		m.chats.On("FindByID", mock.Anything, chatID).Return(chat, nil)
		m.messages.On("FindByChat", mock.Anything, chatID, int64(100)).Return(messages, nil)
		m.users.On("FindByIDs", mock.Anything, []primitive.ObjectID{sender.ID}).Return([]models.User{*sender}, nil)

		router := setupRouter()
		router.GET("/chats/:chatId/messages", asUser(user), h.GetMessages)

		recorder := performRequest(t, router, http.MethodGet, "/chats/"+chatID.Hex()+"/messages", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"senderName":"drsmith"`)
		m.messages.AssertExpectations(t)
	})

	t.Run("outsider is rejected", func(t *testing.T) {
		h, m := setupHandler()
		user := testUser(models.RoleUser)

		chat := &models.Chat{
			ID:           chatID,
			ChatType:     models.ChatUserUser,
			Participants: []primitive.ObjectID{primitive.NewObjectID()},
		}
		m.chats.On("FindByID", mock.Anything, chatID).Return(chat, nil)

		router := setupRouter()
		router.GET("/chats/:chatId/messages", asUser(user), h.GetMessages)

		recorder := performRequest(t, router, http.MethodGet, "/chats/"+chatID.Hex()+"/messages", nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		m.messages.AssertNotCalled(t, "FindByChat", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteMessage(t *testing.T) {
	t.Run("detaches then deletes", func(t *testing.T) {
		h, m := setupHandler()
		chatID := primitive.NewObjectID()
		message := &models.Message{
			ID:       primitive.NewObjectID(),
			ChatID:   chatID,
			SenderID: primitive.NewObjectID(),
		}

		m.messages.On("FindByID", mock.Anything, message.ID).Return(message, nil)
		m.chats.On("DetachMessage", mock.Anything, chatID, message.ID).Return(nil)
		m.messages.On("Delete", mock.Anything, message.ID).Return(nil)

		router := setupRouter()
		router.DELETE("/messages/:messageId", asUser(testUser(models.RoleModerator)), h.DeleteMessage)

		recorder := performRequest(t, router, http.MethodDelete, "/messages/"+message.ID.Hex(), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		m.chats.AssertExpectations(t)
		m.messages.AssertExpectations(t)
	})

	t.Run("unknown message", func(t *testing.T) {
		h, m := setupHandler()
		messageID := primitive.NewObjectID()
		m.messages.On("FindByID", mock.Anything, messageID).Return(nil, repository.ErrNotFound)

		router := setupRouter()
		router.DELETE("/messages/:messageId", asUser(testUser(models.RoleAdmin)), h.DeleteMessage)

		recorder := performRequest(t, router, http.MethodDelete, "/messages/"+messageID.Hex(), nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		m.messages.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestGetChatsResolvesParticipants(t *testing.T) {
	h, m := setupHandler()
	user := testUser(models.RoleUser)
	peer := testUser(models.RoleDoctor)
	peer.Username = "drsmith"

	chats := []models.Chat{{
		ID:           primitive.NewObjectID(),
		ChatType:     models.ChatUserDoctor,
		Participants: []primitive.ObjectID{user.ID, peer.ID},
	}}
	m.chats.On("FindByParticipant", mock.Anything, user.ID).Return(chats, nil)
	m.users.On("FindByIDs", mock.Anything, []primitive.ObjectID{user.ID, peer.ID}).
		Return([]models.User{*user, *peer}, nil)

	router := setupRouter()
	router.GET("/chats", asUser(user), h.GetChats)

	recorder := performRequest(t, router, http.MethodGet, "/chats", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"username":"drsmith"`)
	m.chats.AssertExpectations(t)
	m.users.AssertExpectations(t)
}
