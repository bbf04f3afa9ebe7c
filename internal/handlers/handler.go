package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/middleware"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/services"
)

// Handler carries the injected collaborators every route handler needs.
type Handler struct {
	Users        repository.UserRepository
	Posts        repository.PostRepository
	Appointments repository.AppointmentRepository
	Chats        repository.ChatRepository
	Messages     repository.MessageRepository
	Groups       repository.GroupRepository
	Mailer       services.Mailer
}

func NewHandler(
	users repository.UserRepository,
	posts repository.PostRepository,
	appointments repository.AppointmentRepository,
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	groups repository.GroupRepository,
	mailer services.Mailer,
) *Handler {
	return &Handler{
		Users:        users,
		Posts:        posts,
		Appointments: appointments,
		Chats:        chats,
		Messages:     messages,
		Groups:       groups,
		Mailer:       mailer,
	}
}

// currentUser fetches the principal set by the auth middleware. Protected
// routes always have one; a missing principal means the route was wired
// without AuthMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
		return nil, false
	}
	return user, true
}

// sendMail delivers mail off the request path so a slow SMTP server cannot
// stall registration or reset flows.
func (h *Handler) sendMail(to, subject, body string) {
	go func() {
		if err := h.Mailer.Send(to, subject, body); err != nil {
			log.Printf("Failed to send email to %s: %v", to, err)
		}
	}()
}
