package handlers

import (
	"net/http"

	"cmsadmin/internal/services"

	"github.com/gin-gonic/gin"
)

type Reference struct {
	Cache *services.ReferenceCache
}

// GET /api/reference
func (h Reference) List(c *gin.Context) {
	if err := h.Cache.Ensure(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Cache.Get())
}
