package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// shopIDHeader carries the tenant on admin routes. Authentication in front
// of this API is expected to set it; the handlers only scope queries with it.
const shopIDHeader = "X-Shop-ID"

func shopIDFrom(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(shopIDHeader)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": "X-Shop-ID header is required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": "X-Shop-ID must be a uuid"})
		return uuid.Nil, false
	}
	return id, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": name + " must be a uuid"})
		return uuid.Nil, false
	}
	return id, true
}
