package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/campuslink/backend/internal/cache"
	"github.com/campuslink/backend/internal/handlers"
	"github.com/campuslink/backend/internal/middleware"
	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/realtime"
	"github.com/campuslink/backend/internal/repositories"
	"github.com/campuslink/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mdb *mongo.Database, firebaseAuthClient *auth.Client, hub *realtime.Hub) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.PostLike{},
		&models.CommentLike{},
		&models.Follow{},
		&models.GroupMember{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	profileRepo := repositories.NewMongoProfileRepository(mdb)
	postRepo := repositories.NewMongoPostRepository(mdb)
	commentRepo := repositories.NewMongoCommentRepository(mdb)
	groupRepo := repositories.NewMongoGroupRepository(mdb)
	directMessageRepo := repositories.NewMongoDirectMessageRepository(mdb)
	groupMessageRepo := repositories.NewMongoGroupMessageRepository(mdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mdb)
	postLikeRepo := repositories.NewPostgresPostLikeRepository(pgdb)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	groupMemberRepo := repositories.NewPostgresGroupMemberRepository(pgdb)

	// --- Initialize Services ---
	profileCache := cache.NewProfileCache(cache.DefaultProfileTTL, nil)
	profileService := services.NewProfileService(profileRepo, profileCache)
	notifier := services.NewNotifier(notificationRepo, profileService)
	postService := services.NewPostService(postRepo, postLikeRepo, profileService, notifier)
	commentService := services.NewCommentService(commentRepo, commentLikeRepo, postRepo, profileService, notifier)
	followService := services.NewFollowService(followRepo, profileService, notifier)
	groupService := services.NewGroupService(groupRepo, groupMemberRepo, profileService)
	messageService := services.NewMessageService(directMessageRepo, groupMessageRepo, profileService, notifier)
	conversationService := services.NewConversationService(directMessageRepo, groupMessageRepo, groupRepo, groupMemberRepo, profileService)
	notificationService := services.NewNotificationService(notificationRepo)
	suggestionService := services.NewSuggestionService(profileRepo, followRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(profileService, suggestionService)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(postService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Group routes
	groupHandler := handlers.NewGroupHandler(groupService)
	groupHandler.RegisterGroupRoutes(api)
	log.Println("Group routes configured.")

	// Message routes
	messageHandler := handlers.NewMessageHandler(messageService, conversationService, groupService)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Live updates over WebSocket
	wsHandler := realtime.NewWebSocketHandler(hub)
	wsHandler.RegisterRoutes(api)
	log.Println("WebSocket routes configured.")

	log.Println("All routes configured.")
}
