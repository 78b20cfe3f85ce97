package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agendly/internal/metrics"
	"agendly/internal/service/booking"
	"agendly/internal/service/catalog"
	"agendly/internal/service/insights"
	"agendly/internal/store"
)

// respondError maps service errors onto HTTP statuses: validation to 400,
// missing or cross-tenant references to 404, slot conflicts to 409,
// everything else to an opaque 500.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	var conflictErr *booking.ConflictError
	if errors.As(err, &conflictErr) {
		metrics.BookingConflicts.Inc()
		log.Info("booking conflict",
			slog.String("professional_id", conflictErr.ProfessionalID.String()),
			slog.Time("start", conflictErr.Start),
			slog.Time("end", conflictErr.End),
		)
		c.JSON(http.StatusConflict, gin.H{
			"error":             "conflict",
			"message":           conflictErr.Error(),
			"professional_id":   conflictErr.ProfessionalID,
			"professional_name": conflictErr.ProfessionalName,
			"start_time":        conflictErr.Start.Format(time.RFC3339),
			"end_time":          conflictErr.End.Format(time.RFC3339),
		})
		return
	}

	if isValidation(err) {
		log.Warn("invalid request", slog.Any("err", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	log.Error("request failed", slog.Any("err", err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func isValidation(err error) bool {
	var bookingErr *booking.ValidationError
	var catalogErr *catalog.ValidationError
	var insightsErr *insights.ValidationError
	return errors.As(err, &bookingErr) || errors.As(err, &catalogErr) || errors.As(err, &insightsErr)
}
