package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agendly/internal/domain"
	"agendly/internal/service/catalog"
)

type catalogService interface {
	CreateProfessional(ctx context.Context, shopID uuid.UUID, in catalog.ProfessionalInput) (domain.Professional, error)
	UpdateProfessional(ctx context.Context, shopID, professionalID uuid.UUID, in catalog.ProfessionalInput) (domain.Professional, error)
	GetProfessional(ctx context.Context, shopID, professionalID uuid.UUID) (domain.Professional, error)
	ListProfessionals(ctx context.Context, shopID uuid.UUID) ([]domain.Professional, error)

	CreateService(ctx context.Context, shopID uuid.UUID, in catalog.ServiceInput) (domain.Service, error)
	UpdateService(ctx context.Context, shopID, serviceID uuid.UUID, in catalog.ServiceInput) (domain.Service, error)
	GetService(ctx context.Context, shopID, serviceID uuid.UUID) (domain.Service, error)
	ListServices(ctx context.Context, shopID uuid.UUID) ([]domain.Service, error)
	QualifiedProfessionals(ctx context.Context, shopID, serviceID uuid.UUID) ([]domain.Professional, error)

	CreateClient(ctx context.Context, shopID uuid.UUID, in catalog.ClientInput) (domain.Client, error)
	GetClient(ctx context.Context, shopID, clientID uuid.UUID) (domain.Client, error)
	ListClients(ctx context.Context, shopID uuid.UUID) ([]domain.Client, error)
}

// CatalogHandler exposes the admin catalog endpoints for professionals,
// services and clients.
type CatalogHandler struct {
	catalog catalogService
	log     *slog.Logger
}

func NewCatalogHandler(svc catalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: svc, log: log.With(slog.String("handler", "catalog"))}
}

type professionalRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
}

func (r professionalRequest) input() catalog.ProfessionalInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return catalog.ProfessionalInput{Name: r.Name, Phone: r.Phone, Active: active}
}

func (h *CatalogHandler) CreateProfessional(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	var req professionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	pro, err := h.catalog.CreateProfessional(c.Request.Context(), shopID, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toProfessionalResponse(pro))
}

func (h *CatalogHandler) UpdateProfessional(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req professionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	pro, err := h.catalog.UpdateProfessional(c.Request.Context(), shopID, id, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfessionalResponse(pro))
}

func (h *CatalogHandler) GetProfessional(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	pro, err := h.catalog.GetProfessional(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfessionalResponse(pro))
}

func (h *CatalogHandler) ListProfessionals(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}

	pros, err := h.catalog.ListProfessionals(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": toProfessionalResponses(pros)})
}

type serviceRequest struct {
	Name            string      `json:"name" binding:"required"`
	DurationMinutes int         `json:"duration_minutes" binding:"required"`
	PriceCents      int64       `json:"price_cents"`
	ProfessionalIDs []uuid.UUID `json:"professional_ids"`
}

func (r serviceRequest) input() catalog.ServiceInput {
	return catalog.ServiceInput{
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		PriceCents:      r.PriceCents,
		ProfessionalIDs: r.ProfessionalIDs,
	}
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	svc, err := h.catalog.CreateService(c.Request.Context(), shopID, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toServiceResponse(svc))
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	svc, err := h.catalog.UpdateService(c.Request.Context(), shopID, id, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toServiceResponse(svc))
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	svc, err := h.catalog.GetService(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toServiceResponse(svc))
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListServices(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"services": out})
}

func (h *CatalogHandler) QualifiedProfessionals(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	pros, err := h.catalog.QualifiedProfessionals(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": toProfessionalResponses(pros)})
}

type clientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

func (h *CatalogHandler) CreateClient(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	client, err := h.catalog.CreateClient(c.Request.Context(), shopID, catalog.ClientInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(client))
}

func (h *CatalogHandler) GetClient(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.catalog.GetClient(c.Request.Context(), shopID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *CatalogHandler) ListClients(c *gin.Context) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		return
	}

	clients, err := h.catalog.ListClients(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]clientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResponse(cl))
	}
	c.JSON(http.StatusOK, gin.H{"clients": out})
}
