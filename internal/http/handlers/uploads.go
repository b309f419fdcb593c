package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/http/middleware"
	"cmsadmin/internal/upload"
	"cmsadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

// Uploads forwards files to the CMS upload service and answers with
// absolute URLs.
type Uploads struct {
	Uploader upload.Uploader
}

// POST /api/uploads/*route
func (h Uploads) Upload(c *gin.Context) {
	route := strings.Trim(c.Param("route"), "/")
	if route == "" {
		RespondDomainError(c, domain.ValidationError{Field: "route", Msg: "upload route is required"})
		return
	}
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "invalid multipart form", Err: err})
		return
	}
	files, err := readFiles(c.Request.MultipartForm)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	reqID := middleware.GetRequestID(c)
	if many := files[upload.FieldMulti]; len(many) > 0 {
		assets, err := h.Uploader.UploadMany(c.Request.Context(), route, many)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		utils.LogEvent(reqID, "uploads", "upload_many", fmt.Sprintf("route=%s files=%d", route, len(many)))
		c.JSON(http.StatusCreated, gin.H{"assets": assets})
		return
	}
	single := files[upload.FieldSingle]
	if len(single) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: upload.FieldSingle, Msg: "no file uploaded"})
		return
	}
	asset, err := h.Uploader.Upload(c.Request.Context(), route, single[0])
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID, "uploads", "upload", fmt.Sprintf("route=%s", route))
	c.JSON(http.StatusCreated, asset)
}
