package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/FieldFinderOrganization/fieldfinder/internal/assistant"
	"github.com/FieldFinderOrganization/fieldfinder/internal/auth"
	"github.com/FieldFinderOrganization/fieldfinder/internal/booking"
	"github.com/FieldFinderOrganization/fieldfinder/internal/cart"
	"github.com/FieldFinderOrganization/fieldfinder/internal/catalog"
	"github.com/FieldFinderOrganization/fieldfinder/internal/config"
	"github.com/FieldFinderOrganization/fieldfinder/internal/discount"
	"github.com/FieldFinderOrganization/fieldfinder/internal/email"
	"github.com/FieldFinderOrganization/fieldfinder/internal/payment"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pitch"
	"github.com/FieldFinderOrganization/fieldfinder/internal/review"
	"github.com/FieldFinderOrganization/fieldfinder/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, emailService *email.Service, aiClient assistant.Client) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	pitchRepo := pitch.NewRepository(db)
	userRepo := user.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	discountRepo := discount.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	reviewRepo := review.NewRepository(db)

	discountSvc := discount.NewService(discountRepo)
	pitchSvc := pitch.NewService(pitchRepo)
	bookingSvc := booking.NewService(bookingRepo, pitchRepo, discountSvc, userRepo, emailService)
	catalogSvc := catalog.NewService(catalogRepo)
	cartSvc := cart.NewService(rdb, catalogRepo)
	paymentSvc := payment.NewService(
		paymentRepo, cartSvc, catalogRepo, discountSvc, userRepo,
		payment.NewStubProvider(), emailService,
	)
	assistantSvc := assistant.NewService(aiClient, pitchRepo, catalogRepo)

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	pitchHandler := pitch.NewHandler(pitchSvc)
	bookingHandler := booking.NewHandler(bookingSvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	cartHandler := cart.NewHandler(cartSvc)
	discountHandler := discount.NewHandler(discountSvc)
	paymentHandler := payment.NewHandler(paymentSvc)
	reviewHandler := review.NewHandler(reviewRepo, pitchRepo)
	assistantHandler := assistant.NewHandler(assistantSvc)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	router.GET("/pitches", pitchHandler.List)
	router.GET("/pitches/:pitchID", pitchHandler.Get)
	router.GET("/pitches/:pitchID/reviews", reviewHandler.ListByPitch)
	router.GET("/products", catalogHandler.ListProducts)
	router.GET("/products/categories", catalogHandler.ListCategories)
	router.GET("/products/navigate", catalogHandler.Navigate)
	router.GET("/products/:productID", catalogHandler.GetProduct)
	router.GET("/discounts", discountHandler.ListValid)
	router.GET("/bookings/slots/:pitchID", bookingHandler.GetBookedSlots)
	router.GET("/bookings/available-pitches", bookingHandler.AvailablePitches)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.POST("/bookings", bookingHandler.Book)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
		protected.GET("/bookings", bookingHandler.ListMyBookings)

		protected.POST("/pitches/:pitchID/reviews", reviewHandler.Create)

		protected.GET("/cart", cartHandler.Get)
		protected.POST("/cart/items", cartHandler.Add)
		protected.PUT("/cart/items/:itemID", cartHandler.Update)
		protected.DELETE("/cart/items/:itemID", cartHandler.Remove)
		protected.DELETE("/cart", cartHandler.Clear)

		protected.POST("/payments/create", paymentHandler.Create)
		protected.GET("/payments", paymentHandler.List)

		protected.POST("/ai/chat", assistantHandler.Chat)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.POST("/pitches", pitchHandler.Create)
		admin.PUT("/pitches/:pitchID", pitchHandler.Update)
		admin.DELETE("/pitches/:pitchID", pitchHandler.Delete)
		admin.GET("/pitches/:pitchID/bookings", bookingHandler.ListBookingsByPitch)
		admin.GET("/analytics/bookings", bookingHandler.GetBookingAnalytics)

		admin.POST("/products", catalogHandler.CreateProduct)

		admin.GET("/discounts", discountHandler.List)
		admin.POST("/discounts", discountHandler.Create)
		admin.PUT("/discounts/:discountID", discountHandler.Update)
		admin.DELETE("/discounts/:discountID", discountHandler.Delete)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Idempotency-Key, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
