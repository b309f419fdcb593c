package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
	"cmsadmin/internal/http/middleware"
	"cmsadmin/internal/services"
	"cmsadmin/internal/upload"
	"cmsadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxMultipartMemory bounds form parsing before spilling to disk.
const maxMultipartMemory = 32 << 20

// Screens exposes open list/edit screens to the browser.
type Screens struct {
	Registry *services.Screens
	Catalog  *services.Catalog
}

// GET /api/entities
func (h Screens) Entities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entities": h.Catalog.Infos()})
}

type openRequest struct {
	Entity string `json:"entity"`
	Key    string `json:"key"`
	Detail bool   `json:"detail"`
}

// POST /api/screens
func (h Screens) Open(c *gin.Context) {
	var req openRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	screen, err := h.Registry.Open(req.Entity, services.OpenOptions{
		Key:    req.Key,
		Detail: req.Detail,
		Owner:  middleware.UserID(c),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "screens", "open", fmt.Sprintf("entity=%s screen=%s", screen.Entity(), screen.ID()))
	h.respondView(c, http.StatusCreated, screen)
}

func (h Screens) screen(c *gin.Context) (services.ScreenHandle, bool) {
	screen, err := h.Registry.Get(c.Param("id"), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	return screen, true
}

func (h Screens) respondView(c *gin.Context, status int, screen services.ScreenHandle) {
	v, err := screen.View()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(status, v)
}

// GET /api/screens/:id
func (h Screens) View(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	h.respondView(c, http.StatusOK, screen)
}

// DELETE /api/screens/:id
func (h Screens) Close(c *gin.Context) {
	if err := h.Registry.Close(c.Param("id"), middleware.UserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// stateChange runs one view-state handler and answers with the new view.
func (h Screens) stateChange(c *gin.Context, apply func(s services.ScreenHandle) error) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	if err := apply(screen); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, screen)
}

// sortRequest toggles Field, sets Field and Order when Order is given, or
// applies a blog feed preset (latest, oldest, popular).
type sortRequest struct {
	Field string `json:"field"`
	Order string `json:"order"`
	Feed  string `json:"feed"`
}

// POST /api/screens/:id/sort
func (h Screens) Sort(c *gin.Context) {
	var req sortRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.stateChange(c, func(s services.ScreenHandle) error {
		switch {
		case req.Feed != "":
			field, order := models.FeedOrder(models.PostFeedSort(req.Feed))
			return s.SortBy(field, order)
		case req.Order != "":
			return s.SortBy(req.Field, domain.Order(req.Order))
		default:
			return s.Sort(req.Field)
		}
	})
}

type pageRequest struct {
	Page int `json:"page"`
}

// POST /api/screens/:id/page
func (h Screens) Page(c *gin.Context) {
	var req pageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.stateChange(c, func(s services.ScreenHandle) error { return s.ChangePage(req.Page) })
}

type rowsPerPageRequest struct {
	RowsPerPage int `json:"rowsPerPage"`
}

// POST /api/screens/:id/rows-per-page
func (h Screens) RowsPerPage(c *gin.Context) {
	var req rowsPerPageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.stateChange(c, func(s services.ScreenHandle) error { return s.ChangeRowsPerPage(req.RowsPerPage) })
}

// POST /api/screens/:id/dense
func (h Screens) Dense(c *gin.Context) {
	h.stateChange(c, func(s services.ScreenHandle) error { return s.ToggleDense() })
}

type filterRequest struct {
	Text string `json:"text"`
}

// POST /api/screens/:id/filter
func (h Screens) Filter(c *gin.Context) {
	var req filterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.stateChange(c, func(s services.ScreenHandle) error { return s.SetFilter(req.Text) })
}

type selectRequest struct {
	ID string `json:"id"`
}

// POST /api/screens/:id/select
func (h Screens) Select(c *gin.Context) {
	var req selectRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.stateChange(c, func(s services.ScreenHandle) error { return s.SelectRow(req.ID) })
}

type selectAllRequest struct {
	Checked bool `json:"checked"`
}

// POST /api/screens/:id/select-all
func (h Screens) SelectAll(c *gin.Context) {
	var req selectAllRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.stateChange(c, func(s services.ScreenHandle) error { return s.SelectAllRows(req.Checked) })
}

// POST /api/screens/:id/items
func (h Screens) Create(c *gin.Context) {
	h.submit(c, "")
}

// PUT /api/screens/:id/items/:itemID
func (h Screens) Update(c *gin.Context) {
	itemID := strings.TrimSpace(c.Param("itemID"))
	if itemID == "" {
		RespondDomainError(c, domain.ValidationError{Field: "itemID", Msg: "item id is required"})
		return
	}
	h.submit(c, itemID)
}

func (h Screens) submit(c *gin.Context, itemID string) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	payload, files, err := readSubmission(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	item, err := screen.Submit(c.Request.Context(), itemID, payload, files)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	action := "create"
	status := http.StatusCreated
	if itemID != "" {
		action, status = "update", http.StatusOK
	}
	utils.LogEvent(middleware.GetRequestID(c), "screens", action, fmt.Sprintf("entity=%s screen=%s", screen.Entity(), screen.ID()))
	v, err := screen.View()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(status, gin.H{"item": item, "view": v})
}

// readSubmission accepts either a JSON body or a multipart form with a
// "payload" JSON part and file parts named after asset slots.
func readSubmission(c *gin.Context) ([]byte, map[string][]upload.File, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, nil, domain.ValidationError{Field: "payload", Msg: "cannot read body", Err: err}
		}
		return body, nil, nil
	}
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, nil, domain.ValidationError{Field: "payload", Msg: "invalid multipart form", Err: err}
	}
	payload := []byte(c.Request.FormValue("payload"))
	files, err := readFiles(c.Request.MultipartForm)
	if err != nil {
		return nil, nil, err
	}
	return payload, files, nil
}

func readFiles(form *multipart.Form) (map[string][]upload.File, error) {
	out := map[string][]upload.File{}
	if form == nil {
		return out, nil
	}
	for key, headers := range form.File {
		for _, fh := range headers {
			f, err := readFile(fh)
			if err != nil {
				return nil, domain.ValidationError{Field: key, Msg: "cannot read file", Err: err}
			}
			out[key] = append(out[key], f)
		}
	}
	return out, nil
}

func readFile(fh *multipart.FileHeader) (upload.File, error) {
	src, err := fh.Open()
	if err != nil {
		return upload.File{}, err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return upload.File{}, err
	}
	return upload.File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}

// DELETE /api/screens/:id/items/:itemID
func (h Screens) Delete(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	if err := screen.Delete(c.Request.Context(), c.Param("itemID")); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, screen)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// POST /api/screens/:id/bulk-delete
func (h Screens) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	msg, err := screen.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	v, err := screen.View()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "view": v})
}

// Export renders the displayed slice of a screen as PDF.
type Export struct {
	Registry *services.Screens
}

// GET /api/screens/:id/export.pdf
func (h Export) PDF(c *gin.Context) {
	screen, err := h.Registry.Get(c.Param("id"), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	tbl, err := screen.Export()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdf, filename, err := services.ExportService{RequestID: middleware.GetRequestID(c)}.Render(tbl)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "cannot render pdf", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
