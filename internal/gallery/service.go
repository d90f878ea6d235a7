package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barbershop/appointments-backend/internal/pkg/storage"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Item, int, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	// Upload stores an image and its thumbnail. The content type is sniffed from the bytes;
	// whatever the client claimed is ignored.
	Upload(ctx context.Context, req UploadRequest, content io.Reader) (*Item, error)
	Open(ctx context.Context, id string) (io.ReadCloser, *Item, error)
	OpenThumbnail(ctx context.Context, id string) (io.ReadCloser, *Item, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	store   storage.Storage
	maxSize int64
	log     *zap.Logger
}

func NewService(repo Repository, store storage.Storage, maxSize int64, log *zap.Logger) Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, store: store, maxSize: maxSize, log: log}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Item, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

func (s *service) Upload(ctx context.Context, req UploadRequest, content io.Reader) (*Item, error) {
	data, err := io.ReadAll(io.LimitReader(content, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}
	contentType, ok := storage.DetectImage(data)
	if !ok {
		s.log.Info("gallery upload rejected", zap.String("content_type", contentType))
		return nil, ErrUnsupportedType
	}

	id := uuid.NewString()
	// Shard by the first two id characters to keep directories small.
	dir := path.Join("gallery", id[:2])
	item := &Item{
		ID:          id,
		Title:       trimmedOrNil(req.Title),
		Filename:    path.Base(strings.ReplaceAll(req.Filename, "\\", "/")),
		StoragePath: path.Join(dir, id+extensions[contentType]),
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	if req.UploadedBy != "" {
		item.UploadedBy = &req.UploadedBy
	}

	if err := s.store.Save(ctx, item.StoragePath, bytes.NewReader(data)); err != nil {
		return nil, s.storageErr("save image", err)
	}

	thumb, err := storage.Thumbnail(bytes.NewReader(data), storage.ThumbnailSize)
	if err != nil {
		s.log.Warn("thumbnail generation failed", zap.String("item_id", id), zap.Error(err))
	} else {
		thumbPath := path.Join(dir, id+"_thumb.jpg")
		if err := s.store.Save(ctx, thumbPath, bytes.NewReader(thumb)); err != nil {
			s.log.Warn("thumbnail save failed", zap.String("item_id", id), zap.Error(err))
		} else {
			item.ThumbnailPath = &thumbPath
		}
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.removeBlobs(ctx, item)
		return nil, err
	}
	s.log.Info("gallery image uploaded", zap.String("item_id", id), zap.Int64("size", item.Size))
	return item, nil
}

func (s *service) Open(ctx context.Context, id string) (io.ReadCloser, *Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.open(ctx, item.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return rc, item, nil
}

func (s *service) OpenThumbnail(ctx context.Context, id string) (io.ReadCloser, *Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if item.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailMissing
	}
	rc, err := s.open(ctx, *item.ThumbnailPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrThumbnailMissing
		}
		return nil, nil, err
	}
	return rc, item, nil
}

func (s *service) open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("gallery blob missing", zap.String("key", key))
			return nil, ErrNotFound
		}
		return nil, s.storageErr("open image", err)
	}
	return rc, nil
}

// Delete removes the record first; blobs left behind by a failed cleanup are only logged.
func (s *service) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeBlobs(ctx, item)
	return nil
}

func (s *service) removeBlobs(ctx context.Context, item *Item) {
	keys := []string{item.StoragePath}
	if item.ThumbnailPath != nil {
		keys = append(keys, *item.ThumbnailPath)
	}
	for _, k := range keys {
		if err := s.store.Delete(ctx, k); err != nil {
			s.log.Warn("gallery blob cleanup failed", zap.String("key", k), zap.Error(err))
		}
	}
}

func (s *service) storageErr(op string, err error) error {
	s.log.Error("gallery "+op+" failed", zap.Error(err))
	e := *ErrStorageUnavailable
	e.Err = err
	return &e
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
