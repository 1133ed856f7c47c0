package route

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "agrotrade/docs"
	"agrotrade/internal/config"
	httpHandler "agrotrade/internal/delivery/http/handler"
	"agrotrade/internal/delivery/http/middleware"
	csvrepo "agrotrade/internal/repository/csv"
	"agrotrade/internal/repository/memory"
	"agrotrade/internal/repository/userdir"
	service "agrotrade/internal/service"
)

// Stores groups the loaded in-memory collections the engine runs on.
type Stores struct {
	Records       *memory.RecordStore
	History       *memory.HistoryLog
	Notifications *memory.NotificationLog
	Visibility    *memory.VisibilityFilter
}

func SetupRoute(app *gin.Engine, cfg config.Config, stores Stores, users userdir.UserDirectory, store csvrepo.Store) {
	// --- SERVICES ---
	negotiationService := service.NewNegotiationService(
		stores.Records, stores.History, stores.Notifications, stores.Visibility,
		users, store,
	)
	authService := service.NewAuthService(users, cfg.JWT)

	// --- HANDLERS ---
	authHandler := httpHandler.NewAuthHandler(authService)
	offerHandler := httpHandler.NewOfferHandler(negotiationService)
	counterHandler := httpHandler.NewCounterHandler(negotiationService)
	notificationHandler := httpHandler.NewNotificationHandler(negotiationService)

	api := app.Group("/api")

	// --- SWAGGER/OPENAPI DOCUMENTATION ROUTE ---
	app.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(0),
	))

	// --- Authentication & Profile ---
	auth := api.Group("/auth")
	auth.POST("/login", middleware.RateLimit(rate.Limit(5), 10), authHandler.Login)
	auth.GET("/profile", middleware.AuthRequired(cfg.JWT), authHandler.Profile)

	// --- Offers (Producer publishes, Buyer responds) ---
	offers := api.Group("/offers", middleware.AuthRequired(cfg.JWT))
	offers.POST("", middleware.RoleAllowed("producer"), offerHandler.CreateOffer)
	offers.GET("/my", middleware.RoleAllowed("producer"), offerHandler.MyOffers)
	offers.GET("/feed", middleware.RoleAllowed("buyer"), offerHandler.Feed)
	offers.GET("/deals", middleware.RoleAllowed("buyer"), offerHandler.Deals)
	offers.GET("/:id/history", offerHandler.History)
	offers.POST("/:id/accept", middleware.RoleAllowed("buyer"), offerHandler.AcceptOffer)
	offers.POST("/:id/reject", middleware.RoleAllowed("buyer"), offerHandler.RejectOffer)
	offers.POST("/:id/interest", middleware.RoleAllowed("buyer"), offerHandler.MarkInterest)
	offers.POST("/:id/revise", middleware.RoleAllowed("producer"), offerHandler.ReviseOffer)
	offers.POST("/:id/counters", middleware.RoleAllowed("buyer"), counterHandler.CreateCounter)
	offers.DELETE("/:id", middleware.RoleAllowed("producer"), offerHandler.DeleteOffer)

	// --- Counters (Producer responds, Buyer manages own) ---
	counters := api.Group("/counters", middleware.AuthRequired(cfg.JWT))
	counters.GET("/inbox", middleware.RoleAllowed("producer"), counterHandler.Inbox)
	counters.GET("/my", middleware.RoleAllowed("buyer"), counterHandler.MyCounters)
	counters.POST("/:id/accept", middleware.RoleAllowed("producer"), counterHandler.AcceptCounter)
	counters.POST("/:id/reject", middleware.RoleAllowed("producer"), counterHandler.RejectCounter)
	counters.DELETE("/:id", middleware.RoleAllowed("buyer"), counterHandler.DeleteCounter)

	// --- Notifications ---
	api.GET("/notifications", middleware.AuthRequired(cfg.JWT), notificationHandler.List)
}
