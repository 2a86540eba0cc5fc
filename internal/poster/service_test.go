package poster

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	posters   map[string]*Poster
	deleteErr error
}

func newFakeRepo(posters ...*Poster) *fakeRepo {
	r := &fakeRepo{posters: make(map[string]*Poster)}
	for _, p := range posters {
		r.posters[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, p *Poster) error {
	r.posters[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Poster, error) {
	if p, ok := r.posters[id]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.posters, id)
	return nil
}

// fakeStorage tracks stored paths so tests can observe file cleanup.
type fakeStorage struct {
	files     map[string]bool
	deleteErr error
}

func newFakeStorage(paths ...string) *fakeStorage {
	s := &fakeStorage{files: make(map[string]bool)}
	for _, p := range paths {
		s.files[p] = true
	}
	return s
}

func (s *fakeStorage) Save(ctx context.Context, path string, content io.Reader) error {
	s.files[path] = true
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	if !s.files[path] {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(nil), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.files, path)
	return nil
}

func testPoster() *Poster {
	return &Poster{
		ID:            "poster-1",
		AdminID:       "admin-1",
		Filename:      "dune.png",
		StoragePath:   "posters/po/poster-1.png",
		ThumbnailPath: "posters/po/poster-1_thumb.jpg",
		ContentType:   "image/png",
		Size:          1234,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestDeleteRemovesRecordAndFiles(t *testing.T) {
	p := testPoster()
	repo := newFakeRepo(p)
	store := newFakeStorage(p.StoragePath, p.ThumbnailPath)
	svc := NewService(repo, store)

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err := svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.files)
}

func TestDeleteUnknownPoster(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeStorage())

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSurvivesFileCleanupFailure(t *testing.T) {
	p := testPoster()
	repo := newFakeRepo(p)
	store := newFakeStorage(p.StoragePath, p.ThumbnailPath)
	store.deleteErr = errors.New("disk gone")
	svc := NewService(repo, store)

	// The record is the source of truth; stranded files are only logged.
	assert.NoError(t, svc.Delete(context.Background(), p.ID))
	_, err := svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteKeepsFilesWhenRecordDeleteFails(t *testing.T) {
	p := testPoster()
	repo := newFakeRepo(p)
	repo.deleteErr = errors.New("db down")
	store := newFakeStorage(p.StoragePath, p.ThumbnailPath)
	svc := NewService(repo, store)

	err := svc.Delete(context.Background(), p.ID)
	require.Error(t, err)
	assert.True(t, store.files[p.StoragePath])
	assert.True(t, store.files[p.ThumbnailPath])
}
