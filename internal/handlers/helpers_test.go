package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/middleware"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
)

type testMocks struct {
	users        *MockUserRepository
	posts        *MockPostRepository
	appointments *MockAppointmentRepository
	chats        *MockChatRepository
	messages     *MockMessageRepository
	groups       *MockGroupRepository
	mailer       *MockMailer
}

func setupHandler() (*Handler, *testMocks) {
	m := &testMocks{
		users:        new(MockUserRepository),
		posts:        new(MockPostRepository),
		appointments: new(MockAppointmentRepository),
		chats:        new(MockChatRepository),
		messages:     new(MockMessageRepository),
		groups:       new(MockGroupRepository),
		mailer:       new(MockMailer),
	}
	h := NewHandler(m.users, m.posts, m.appointments, m.chats, m.messages, m.groups, m.mailer)
	return h, m
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser injects a principal the way AuthMiddleware would.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Set(middleware.ContextUserID, user.ID.Hex())
		c.Set(middleware.ContextRole, user.AccountType)
		c.Next()
	}
}

func testUser(role models.Role) *models.User {
	return &models.User{
		ID:                  primitive.NewObjectID(),
		Username:            "jane",
		Email:               "jane@example.com",
		AccountType:         role,
		FavouriteList:       []primitive.ObjectID{},
		StaticFavouriteList: []models.StaticFavourite{},
		FriendsList:         []primitive.ObjectID{},
		GroupsList:          []primitive.ObjectID{},
	}
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

// duplicateKeyErr mimics a unique-index violation from the driver.
func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key error"}},
	}
}
