package http

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbershop/appointments-backend/internal/auth"
	"github.com/barbershop/appointments-backend/internal/gallery"
	"github.com/barbershop/appointments-backend/internal/pkg/request"
	"github.com/barbershop/appointments-backend/internal/pkg/response"
)

// formField is the multipart field carrying the image.
const formField = "file"

type Handler struct {
	service gallery.Service
}

func NewHandler(service gallery.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	params.Normalize()

	items, total, err := h.service.List(c.Request.Context(), gallery.Filter{Page: params.Page, PageSize: params.PageSize})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MapPage(items, NewItemResponse, params.Page, params.PageSize, total))
}

func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile(formField)
	if err != nil {
		response.BadRequest(c, formField+" is required", err)
		return
	}
	src, err := header.Open()
	if err != nil {
		response.BadRequest(c, "could not read uploaded file", err)
		return
	}
	defer src.Close()

	req := gallery.UploadRequest{Filename: header.Filename, UploadedBy: auth.GetUserID(c)}
	if title, ok := c.GetPostForm("title"); ok {
		req.Title = &title
	}

	item, err := h.service.Upload(c.Request.Context(), req, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewItemResponse(item))
}

func (h *Handler) Image(c *gin.Context) {
	h.serve(c, false)
}

func (h *Handler) Thumbnail(c *gin.Context) {
	h.serve(c, true)
}

func (h *Handler) serve(c *gin.Context, thumbnail bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return
	}

	open := h.service.Open
	if thumbnail {
		open = h.service.OpenThumbnail
	}
	stream, item, err := open(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	contentType, filename := item.ContentType, item.Filename
	if thumbnail {
		contentType, filename = "image/jpeg", "thumb_"+item.Filename
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
