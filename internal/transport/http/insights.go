package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agendly/internal/domain"
	"agendly/internal/service/insights"
)

type insightsService interface {
	UpsertRule(ctx context.Context, shopID uuid.UUID, in insights.RuleInput) (domain.FrequencyRule, error)
	ListRules(ctx context.Context, shopID uuid.UUID) ([]domain.FrequencyRule, error)
	ReturnSuggestions(ctx context.Context, shopID uuid.UUID) ([]insights.Suggestion, error)
}

// InsightsHandler exposes frequency rules and the return suggestion feed.
type InsightsHandler struct {
	insights insightsService
	log      *slog.Logger
}

func NewInsightsHandler(svc insightsService, log *slog.Logger) *InsightsHandler {
	return &InsightsHandler{insights: svc, log: log.With(slog.String("handler", "insights"))}
}

type ruleRequest struct {
	ServiceID                 uuid.UUID `json:"service_id" binding:"required"`
	IdealReturnDays           int       `json:"ideal_return_days" binding:"required"`
	AnticipationToleranceDays int       `json:"anticipation_tolerance_days"`
}

func (h *InsightsHandler) UpsertRule(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	rule, err := h.insights.UpsertRule(c.Request.Context(), shopID, insights.RuleInput{
		ServiceID:                 req.ServiceID,
		IdealReturnDays:           req.IdealReturnDays,
		AnticipationToleranceDays: req.AnticipationToleranceDays,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toRuleResponse(rule))
}

func (h *InsightsHandler) ListRules(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}

	rules, err := h.insights.ListRules(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]ruleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toRuleResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"rules": out})
}

func (h *InsightsHandler) ReturnSuggestions(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}

	suggestions, err := h.insights.ReturnSuggestions(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
