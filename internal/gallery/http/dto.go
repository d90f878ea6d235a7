package http

import (
	"time"

	"github.com/barbershop/appointments-backend/internal/gallery"
)

type ItemResponse struct {
	ID           string    `json:"id"`
	Title        *string   `json:"title"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewItemResponse(it *gallery.Item) ItemResponse {
	return ItemResponse{
		ID:           it.ID,
		Title:        it.Title,
		Filename:     it.Filename,
		ContentType:  it.ContentType,
		Size:         it.Size,
		URL:          it.URL(),
		ThumbnailURL: it.ThumbnailURL(),
		CreatedAt:    it.CreatedAt,
	}
}
