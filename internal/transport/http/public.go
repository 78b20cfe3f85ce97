package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agendly/internal/domain"
	"agendly/internal/metrics"
	"agendly/internal/service/booking"
)

type publicBooker interface {
	PublicProfile(ctx context.Context, slug string) (booking.ShopProfile, error)
	PublicAvailability(ctx context.Context, slug string, professionalID, serviceID uuid.UUID, date time.Time) ([]time.Time, error)
	PublicBook(ctx context.Context, in booking.PublicBookInput) (domain.Appointment, error)
}

// PublicHandler serves a shop's public booking page: the catalog, the free
// slots and the booking itself, all addressed by the shop's booking slug.
type PublicHandler struct {
	bookings publicBooker
	loc      *time.Location
	log      *slog.Logger
}

func NewPublicHandler(bookings publicBooker, loc *time.Location, log *slog.Logger) *PublicHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &PublicHandler{bookings: bookings, loc: loc, log: log.With(slog.String("handler", "public"))}
}

func (h *PublicHandler) Profile(c *gin.Context) {
	profile, err := h.bookings.PublicProfile(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *PublicHandler) Availability(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": "professional_id must be a uuid"})
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": "service_id must be a uuid"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": "date must be YYYY-MM-DD"})
		return
	}

	metrics.AvailabilityRequests.Inc()
	slots, err := h.bookings.PublicAvailability(c.Request.Context(), c.Param("slug"), professionalID, serviceID, date)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	metrics.AvailabilitySlots.Observe(float64(len(slots)))

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": formatSlots(slots, h.loc),
	})
}

type publicBookRequest struct {
	ClientName     string    `json:"client_name" binding:"required"`
	ClientPhone    string    `json:"client_phone" binding:"required"`
	ClientEmail    string    `json:"client_email"`
	ServiceID      uuid.UUID `json:"service_id" binding:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	StartTime      time.Time `json:"start_time" binding:"required"`
}

func (h *PublicHandler) Book(c *gin.Context) {
	var req publicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	appt, err := h.bookings.PublicBook(c.Request.Context(), booking.PublicBookInput{
		Slug:           c.Param("slug"),
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		StartTime:      req.StartTime,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	metrics.BookingsCreated.Inc()

	c.JSON(http.StatusCreated, toAppointmentResponse(appt))
}
