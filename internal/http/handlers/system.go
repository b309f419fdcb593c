package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// System serves liveness and readiness probes.
type System struct {
	DB      *sql.DB
	Version string
}

func (s System) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.Version})
}

// DBCheck pings the operator database.
func (s System) DBCheck(c *gin.Context) {
	if s.DB == nil {
		RespondError(c, http.StatusServiceUnavailable, "database is not configured", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database is unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database ok"})
}

// Routes lists the registered endpoints.
type Routes struct {
	Engine *gin.Engine
}

func (r Routes) List(c *gin.Context) {
	type route struct {
		Method string `json:"method"`
		Path   string `json:"path"`
	}
	infos := r.Engine.Routes()
	out := make([]route, 0, len(infos))
	for _, ri := range infos {
		out = append(out, route{Method: ri.Method, Path: ri.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
