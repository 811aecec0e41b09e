package server

import (
	"context"
	"net/http"
	"time"

	"github.com/XCypherusX/tbs-api/internal/auth"
	"github.com/XCypherusX/tbs-api/internal/config"
	"github.com/XCypherusX/tbs-api/internal/ground"
	"github.com/XCypherusX/tbs-api/internal/query"
	"github.com/XCypherusX/tbs-api/internal/reservation"
	"github.com/XCypherusX/tbs-api/internal/timeslot"
	"github.com/XCypherusX/tbs-api/internal/user"
	"github.com/XCypherusX/tbs-api/internal/wishlist"

	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Users        *user.Handler
	Grounds      *ground.Handler
	TimeSlots    *timeslot.Handler
	Reservations *reservation.Handler
	Wishlist     *wishlist.Handler
	Queries      *query.Handler
}

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(cfg *config.Config, h Handlers, checks ...HealthCheck) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	router.GET("/health", Health(checks...))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	public := router.Group("/auth")
	{
		public.POST("/register", h.Users.Register)
		public.POST("/login", h.Users.Login)
		public.POST("/refresh", h.Users.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", h.Users.GetMe)
		protected.GET("/grounds", h.Grounds.ListGrounds)
		protected.GET("/grounds/:groundID", h.Grounds.GetGround)
		protected.GET("/grounds/:groundID/availability", h.Queries.GroundAvailability)
		protected.GET("/timeslots", h.TimeSlots.ListTimeSlots)
		protected.POST("/reservations", h.Reservations.CreateReservation)
		protected.GET("/reservations", h.Queries.ListMyReservations)
		protected.GET("/reservations/:id", h.Reservations.GetReservation)
		protected.POST("/reservations/:id/cancel", h.Reservations.CancelReservation)
		protected.POST("/wishlist", h.Wishlist.CreateEntry)
		protected.GET("/wishlist", h.Queries.ListMyWishlist)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/grounds", h.Grounds.CreateGround)
		admin.PUT("/grounds/:groundID", h.Grounds.UpdateGround)
		admin.DELETE("/grounds/:groundID", h.Grounds.DeleteGround)
		admin.GET("/grounds/:groundID/reservations", h.Queries.ListGroundReservations)
		admin.POST("/timeslots", h.TimeSlots.CreateTimeSlot)
		admin.PUT("/timeslots/:slotID", h.TimeSlots.UpdateTimeSlot)
		admin.DELETE("/timeslots/:slotID", h.TimeSlots.DeleteTimeSlot)
		admin.PUT("/reservations/:id", h.Reservations.UpdateReservation)
		admin.GET("/users/:userID/reservations", h.Queries.ListUserReservations)
		admin.POST("/wishlist/reservations/:id/sync", h.Wishlist.SyncReservation)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
