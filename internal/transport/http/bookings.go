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

type bookingService interface {
	Book(ctx context.Context, in booking.BookInput) (domain.Appointment, error)
	Reschedule(ctx context.Context, in booking.RescheduleInput) (domain.Appointment, error)
	ChangeStatus(ctx context.Context, shopID, appointmentID uuid.UUID, next domain.AppointmentStatus) (domain.Appointment, error)
	Get(ctx context.Context, shopID, appointmentID uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, shopID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error)
	Availability(ctx context.Context, in booking.AvailabilityInput) ([]time.Time, error)
	Shop(ctx context.Context, shopID uuid.UUID) (domain.Shop, error)
}

// BookingHandler exposes the admin appointment endpoints, tenant-scoped by
// the X-Shop-ID header.
type BookingHandler struct {
	bookings bookingService
	loc      *time.Location
	log      *slog.Logger
}

func NewBookingHandler(bookings bookingService, loc *time.Location, log *slog.Logger) *BookingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingHandler{bookings: bookings, loc: loc, log: log.With(slog.String("handler", "bookings"))}
}

func (h *BookingHandler) Shop(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}

	shop, err := h.bookings.Shop(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           shop.ID,
		"name":         shop.Name,
		"booking_slug": shop.BookingSlug,
		"active":       shop.Active,
	})
}

type bookRequest struct {
	ClientID       uuid.UUID `json:"client_id" binding:"required"`
	ServiceID      uuid.UUID `json:"service_id" binding:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	StartTime      time.Time `json:"start_time" binding:"required"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	appt, err := h.bookings.Book(c.Request.Context(), booking.BookInput{
		ShopID:         shopID,
		ClientID:       req.ClientID,
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

func (h *BookingHandler) Get(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	appt, err := h.bookings.Get(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toAppointmentResponse(appt))
}

// List returns the shop's appointments inside [from, to). Both bounds are
// optional; the default window is the coming week.
func (h *BookingHandler) List(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}

	now := time.Now().In(h.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	to := from.AddDate(0, 0, 7)
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": "to must be YYYY-MM-DD"})
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	apps, err := h.bookings.List(c.Request.Context(), shopID, from, to)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": toAppointmentResponses(apps)})
}

type rescheduleRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	ServiceID uuid.UUID `json:"service_id"`
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	appt, err := h.bookings.Reschedule(c.Request.Context(), booking.RescheduleInput{
		ShopID:        shopID,
		AppointmentID: id,
		StartTime:     req.StartTime,
		ServiceID:     req.ServiceID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toAppointmentResponse(appt))
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	appt, err := h.bookings.ChangeStatus(c.Request.Context(), shopID, id, domain.AppointmentStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toAppointmentResponse(appt))
}

func (h *BookingHandler) Availability(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
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
	slots, err := h.bookings.Availability(c.Request.Context(), booking.AvailabilityInput{
		ShopID:         shopID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
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
