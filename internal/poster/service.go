package poster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cinereel/movie-booking-backend/internal/pkg/apperror"
	"github.com/cinereel/movie-booking-backend/internal/pkg/storage"
	"github.com/google/uuid"
)

// Thumbnail bounding box. Posters are tall, so the box is generous on height.
const (
	thumbMaxWidth  = 200
	thumbMaxHeight = 300
)

type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, adminID string) (*Poster, error)
	Get(ctx context.Context, id string) (*Poster, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Poster, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Poster, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

// Upload stores a poster image and its thumbnail under a sharded path and
// records the metadata. Non-image uploads are rejected; a poster without a
// decodable image is useless to the catalog, so a failed thumbnail fails the
// upload too.
func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, adminID string) (*Poster, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "poster upload failed")
	}
	defer src.Close()

	// Posters are small enough to buffer for the double read (save + thumbnail).
	imgBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "poster upload failed")
	}

	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(imgBytes), thumbMaxWidth, thumbMaxHeight)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadRequest, "poster is not a decodable image")
	}

	posterID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharding path: posters/ab/UUID.ext
	shard := posterID[:2]
	storagePath := fmt.Sprintf("posters/%s/%s%s", shard, posterID, ext)
	thumbnailPath := fmt.Sprintf("posters/%s/%s_thumb.jpg", shard, posterID)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(imgBytes)); err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "poster upload failed")
	}
	if err := s.storage.Save(ctx, thumbnailPath, thumbReader); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "poster upload failed")
	}

	p := &Poster{
		ID:            posterID,
		AdminID:       adminID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Cleanup storage if the record cannot be written.
		_ = s.storage.Delete(ctx, storagePath)
		_ = s.storage.Delete(ctx, thumbnailPath)
		log.Printf("poster: record create failed: %v", err)
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "poster upload failed")
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Poster, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Poster, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, apperror.Wrap(err, http.StatusInternalServerError, "failed to retrieve poster")
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Poster, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.ThumbnailPath)
	if err != nil {
		return nil, nil, apperror.Wrap(err, http.StatusInternalServerError, "failed to retrieve thumbnail")
	}

	return stream, p, nil
}

// Delete removes the poster record and then its stored files. File cleanup is
// best effort: once the record is gone the poster is unreachable either way.
func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(err, http.StatusInternalServerError, "failed to delete poster")
	}

	if err := s.storage.Delete(ctx, p.StoragePath); err != nil {
		log.Printf("poster: file cleanup failed for %s: %v", p.StoragePath, err)
	}
	if err := s.storage.Delete(ctx, p.ThumbnailPath); err != nil {
		log.Printf("poster: thumbnail cleanup failed for %s: %v", p.ThumbnailPath, err)
	}

	return nil
}
