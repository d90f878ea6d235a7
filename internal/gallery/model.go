package gallery

import (
	"net/http"
	"time"

	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "gallery item not found")
	ErrThumbnailMissing   = apperror.New(http.StatusNotFound, "thumbnail not available for this item")
	ErrUnsupportedType    = apperror.NewWithReason(http.StatusUnsupportedMediaType, "unsupported_type", "only JPEG, PNG and GIF images can be uploaded")
	ErrTooLarge           = apperror.NewWithReason(http.StatusRequestEntityTooLarge, "file_too_large", "image exceeds the upload size limit")
	ErrEmptyUpload        = apperror.New(http.StatusBadRequest, "uploaded file is empty")
	ErrStorageUnavailable = apperror.NewWithReason(http.StatusServiceUnavailable, "storage_unavailable", "image storage is temporarily unavailable")
)

// DefaultMaxSize is the upload limit when the service is built without one.
const DefaultMaxSize = 10 << 20

// Item is a portfolio photo shown on the shop's site.
type Item struct {
	ID            string
	UploadedBy    *string
	Title         *string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

func (i *Item) URL() string { return "/v1/gallery/" + i.ID + "/image" }

func (i *Item) ThumbnailURL() *string {
	if i.ThumbnailPath == nil {
		return nil
	}
	u := "/v1/gallery/" + i.ID + "/thumbnail"
	return &u
}

type Filter struct {
	Page     int
	PageSize int
}

type UploadRequest struct {
	Filename   string
	Title      *string
	UploadedBy string
}
