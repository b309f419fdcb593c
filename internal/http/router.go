package api

import (
	stdhttp "net/http"

	h "cmsadmin/internal/http/handlers"
	"cmsadmin/internal/http/middleware"
	"cmsadmin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps holds everything the HTTP layer serves from.
type Deps struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	System         h.System
	Auth           services.AuthService
	Catalog        *services.Catalog
	Screens        *services.Screens
	References     *services.ReferenceCache
	Uploader       services.MeteredUploader
}

func NewRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log), middleware.CORS(d.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := h.Auth{Service: d.Auth}
	screens := h.Screens{Registry: d.Screens, Catalog: d.Catalog}
	export := h.Export{Registry: d.Screens}
	reference := h.Reference{Cache: d.References}
	uploads := h.Uploads{Uploader: d.Uploader}
	routes := h.Routes{Engine: r}

	api := r.Group("/api")
	{
		api.GET("/health", d.System.Health)
		api.GET("/db-check", d.System.DBCheck)

		api.POST("/auth/login", auth.Login)

		protected := api.Group("", middleware.Auth(d.Auth))
		protected.GET("/routes", middleware.RequireRoles("admin"), routes.List)
		protected.POST("/auth/register", middleware.RequireRoles("admin"), auth.Register)
		protected.GET("/auth/me", auth.Me)

		protected.GET("/entities", screens.Entities)
		protected.GET("/reference", reference.List)
		protected.POST("/uploads/*route", uploads.Upload)

		// Screens
		protected.POST("/screens", screens.Open)
		sc := protected.Group("/screens/:id")
		sc.GET("", screens.View)
		sc.DELETE("", screens.Close)
		sc.GET("/export.pdf", export.PDF)
		sc.POST("/sort", screens.Sort)
		sc.POST("/page", screens.Page)
		sc.POST("/rows-per-page", screens.RowsPerPage)
		sc.POST("/dense", screens.Dense)
		sc.POST("/filter", screens.Filter)
		sc.POST("/select", screens.Select)
		sc.POST("/select-all", screens.SelectAll)
		sc.POST("/items", screens.Create)
		sc.PUT("/items/:itemID", screens.Update)
		sc.DELETE("/items/:itemID", middleware.RequireRoles("admin"), screens.Delete)
		sc.POST("/bulk-delete", middleware.RequireRoles("admin"), screens.BulkDelete)
	}

	return r
}
