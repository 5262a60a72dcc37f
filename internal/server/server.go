package server

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/config"
	"github.com/mdzoubir/eventconnect-backend/internal/clock"
	"github.com/mdzoubir/eventconnect-backend/internal/handlers"
	"github.com/mdzoubir/eventconnect-backend/internal/middleware"
	"github.com/mdzoubir/eventconnect-backend/internal/repository"
	"github.com/mdzoubir/eventconnect-backend/internal/services"
)

func Start(log *zerolog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	store := repository.NewStore(db)
	clk := clock.NewSystem()

	registration := services.NewRegistrationService(store, log)
	events := services.NewEventService(store, clk, log)
	inventory := services.NewInventoryService(store, clk, log)
	stats := services.NewStatsService(store, log)

	r := gin.Default()
	r.Use(cors.Default())

	setupRoutes(r, routeDeps{
		auth:          handlers.NewAuthHandler(registration, store),
		users:         handlers.NewUserHandler(registration, store),
		events:        handlers.NewEventHandler(events, inventory, stats, store, clk, log),
		tickets:       handlers.NewTicketHandler(store),
		rsvps:         handlers.NewRSVPHandler(inventory, store, clk),
		waitlists:     handlers.NewWaitlistHandler(inventory, store),
		reviews:       handlers.NewReviewHandler(store),
		notifications: handlers.NewNotificationHandler(store),
		contacts:      handlers.NewContactHandler(store),
		messages:      handlers.NewMessageHandler(store),
		payments:      handlers.NewPaymentHandler(inventory),
		db:            middleware.DatabaseMiddleware(db),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("starting server")
	return r.Run(":" + port)
}

type routeDeps struct {
	auth          *handlers.AuthHandler
	users         *handlers.UserHandler
	events        *handlers.EventHandler
	tickets       *handlers.TicketHandler
	rsvps         *handlers.RSVPHandler
	waitlists     *handlers.WaitlistHandler
	reviews       *handlers.ReviewHandler
	notifications *handlers.NotificationHandler
	contacts      *handlers.ContactHandler
	messages      *handlers.MessageHandler
	payments      *handlers.PaymentHandler
	db            gin.HandlerFunc
}

func setupRoutes(r *gin.Engine, d routeDeps) {
	r.Use(d.db)

	public := r.Group("/v1")
	{
		public.POST("/register", d.auth.Register)
		public.POST("/login", d.auth.Login)

		public.POST("/contacts", d.contacts.CreateContact)
		public.POST("/subscribers", d.contacts.Subscribe)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", d.events.ListEvents)
			eventPublic.GET("/:id", d.events.GetEvent)
			eventPublic.GET("/:id/tickets", d.tickets.ListEventTickets)
			eventPublic.GET("/:id/reviews", d.reviews.EventReviews)
		}
		public.GET("/tickets/:id", d.tickets.GetTicket)
		public.GET("/categories", d.events.ListCategories)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/users/me", d.users.Me)
		protected.PUT("/users/:id", d.users.UpdateUser)
		protected.DELETE("/users/:id", d.users.DeleteUser)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", d.events.CreateEvent)
			eventProtected.GET("/mine", d.events.MyEvents)
			eventProtected.PUT("/:id", d.events.UpdateEvent)
			eventProtected.DELETE("/:id", d.events.DeleteEvent)
			eventProtected.GET("/:id/statistics", d.events.EventStatistics)
			eventProtected.POST("/:id/images", d.events.UploadEventImage)
			eventProtected.PUT("/:id/images/:imageId/primary", d.events.SetPrimaryImage)

			eventProtected.GET("/:id/rsvps", d.rsvps.EventRSVPs)
			eventProtected.POST("/:id/waitlist", d.waitlists.Join)
			eventProtected.GET("/:id/waitlist", d.waitlists.EventWaitlist)
		}
		protected.GET("/matched-events", d.events.MatchedEvents)

		protected.POST("/tickets", d.tickets.CreateTicket)
		protected.PUT("/tickets/:id", d.tickets.UpdateTicket)
		protected.DELETE("/tickets/:id", d.tickets.DeleteTicket)

		protected.POST("/reviews", d.reviews.CreateReview)

		rsvpGroup := protected.Group("/rsvps")
		{
			rsvpGroup.POST("", d.rsvps.CreateRSVP)
			rsvpGroup.GET("", d.rsvps.MyRSVPs)
			rsvpGroup.GET("/:id/qr", d.rsvps.QRCode)
			rsvpGroup.POST("/check-in", d.rsvps.CheckIn)
		}

		protected.GET("/transactions", d.users.MyTransactions)
		protected.POST("/payments/:id/complete", d.payments.CompletePayment)
		protected.POST("/payments/:id/refund", d.payments.RefundPayment)

		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", d.notifications.List)
			notificationGroup.PUT("/:id/read", d.notifications.MarkRead)
			notificationGroup.PUT("/read-all", d.notifications.MarkAllRead)
		}

		messageGroup := protected.Group("/messages")
		{
			messageGroup.POST("", d.messages.SendMessage)
			messageGroup.GET("", d.messages.MyMessages)
		}

		protected.GET("/contacts", d.contacts.ListContacts)
		protected.GET("/subscribers", d.contacts.ListSubscribers)
	}
}
