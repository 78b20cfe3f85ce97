package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Public   *PublicHandler
	Bookings *BookingHandler
	Catalog  *CatalogHandler
	Insights *InsightsHandler
}

// NewRouter builds the gin engine with logging, metrics and CORS wired in.
func NewRouter(h Handlers, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), observeRequests())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, shopIDHeader)
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/shop", h.Bookings.Shop)

	public := v1.Group("/public/:slug")
	public.GET("", h.Public.Profile)
	public.GET("/availability", h.Public.Availability)
	public.POST("/appointments", h.Public.Book)

	appointments := v1.Group("/appointments")
	appointments.POST("", h.Bookings.Create)
	appointments.GET("", h.Bookings.List)
	appointments.GET("/:id", h.Bookings.Get)
	appointments.PATCH("/:id", h.Bookings.Reschedule)
	appointments.POST("/:id/status", h.Bookings.ChangeStatus)

	v1.GET("/availability", h.Bookings.Availability)

	professionals := v1.Group("/professionals")
	professionals.POST("", h.Catalog.CreateProfessional)
	professionals.GET("", h.Catalog.ListProfessionals)
	professionals.GET("/:id", h.Catalog.GetProfessional)
	professionals.PUT("/:id", h.Catalog.UpdateProfessional)

	services := v1.Group("/services")
	services.POST("", h.Catalog.CreateService)
	services.GET("", h.Catalog.ListServices)
	services.GET("/:id", h.Catalog.GetService)
	services.PUT("/:id", h.Catalog.UpdateService)
	services.GET("/:id/professionals", h.Catalog.QualifiedProfessionals)

	clients := v1.Group("/clients")
	clients.POST("", h.Catalog.CreateClient)
	clients.GET("", h.Catalog.ListClients)
	clients.GET("/:id", h.Catalog.GetClient)

	insights := v1.Group("/insights")
	insights.POST("/rules", h.Insights.UpsertRule)
	insights.GET("/rules", h.Insights.ListRules)
	insights.GET("/return-suggestions", h.Insights.ReturnSuggestions)

	return router
}
