package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/handlers"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/middleware"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(os.Getenv("MONGO_DATABASE"))
	log.Println("Successfully connected to MongoDB!")

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	mailer := services.NewSMTPMailer(services.LoadMailConfig())
	hub := services.NewHub()

	h := handlers.NewHandler(userRepo, postRepo, appointmentRepo, chatRepo, messageRepo, groupRepo, mailer)

	// --- Gin Router ---
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery("error.log"))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	protect := middleware.AuthMiddleware(userRepo)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	elevated := middleware.RequireRoles(models.RoleAdmin, models.RoleModerator)
	doctorOnly := middleware.RequireRoles(models.RoleDoctor)
	userOnly := middleware.RequireRoles(models.RoleUser)

	// --- Routes ---
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	users := router.Group("/api/users")
	{
		users.POST("/verify-email", h.VerifyEmail)

		users.GET("/profile", protect, h.GetProfile)
		users.PUT("/profile", protect, h.UpdateProfile)
		users.PUT("/change-password", protect, h.ChangePassword)
		users.PUT("/change-role", protect, adminOnly, h.ChangeRole)
		users.GET("", protect, adminOnly, h.GetAllUsers)
		users.PUT("/ban/:id", protect, adminOnly, h.BanUser)
		users.PUT("/unban/:id", protect, adminOnly, h.UnbanUser)

		users.GET("/favourites", protect, h.GetFavouriteList)
		users.POST("/favourites/add", protect, h.AddToFavouriteList)
		users.POST("/favourites/remove", protect, h.RemoveFromFavouriteList)

		users.GET("/static-favourites", protect, h.GetStaticFavouriteList)
		users.POST("/static-favourites/add", protect, h.AddToStaticFavouriteList)
		users.POST("/static-favourites/remove", protect, h.RemoveFromStaticFavouriteList)

		users.GET("/friends", protect, h.GetFriendsList)
		users.POST("/friends/add", protect, h.AddFriend)
		users.POST("/friends/remove", protect, h.RemoveFriend)

		users.GET("/groups", protect, h.GetGroupsList)
		users.POST("/groups/add", protect, h.AddGroup)
		users.POST("/groups/remove", protect, h.RemoveGroup)

		users.GET("/doctors", protect, h.GetDoctors)
	}

	posts := router.Group("/api/posts")
	{
		posts.GET("", h.GetPosts)
		posts.GET("/grouped", h.GetGroupedPosts)
		posts.POST("", protect, h.CreatePost)
		posts.GET("/my-posts", protect, h.GetMyPosts)
		posts.GET("/:id", h.GetPostByID)
		posts.PUT("/:id", protect, h.EditPost)
		posts.DELETE("/:id", protect, h.DeletePost)
		posts.POST("/favourites/add", protect, h.AddToFavourites)
		posts.POST("/favourites/remove", protect, h.RemoveFromFavourites)
	}

	chats := router.Group("/api/chats")
	chats.Use(protect)
	{
		chats.POST("/initiate", h.InitiateChat)
		chats.GET("", h.GetChats)
		chats.POST("/message", h.SendMessage)
		chats.GET("/messages/:chatId", h.GetMessages)
		chats.DELETE("/messages/:messageId", elevated, h.DeleteMessage)
	}

	appointments := router.Group("/api/appointments")
	appointments.Use(protect)
	{
		appointments.POST("/schedule", doctorOnly, h.SetSchedule)
		appointments.GET("/schedule", doctorOnly, h.GetSchedule)
		appointments.POST("/reserve", userOnly, h.MakeReservation)
		appointments.GET("/reservations", userOnly, h.GetReservations)
		appointments.GET("/doctor-reservations", doctorOnly, h.GetDoctorReservations)
	}

	router.GET("/ws", hub.HandleConnection)

	// --- Server with graceful shutdown ---
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("%s signal received: closing application gracefully.", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped.")
}
