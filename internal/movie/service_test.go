package movie

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinereel/movie-booking-backend/internal/event"
	"github.com/cinereel/movie-booking-backend/internal/pkg/apperror"
)

// fakeStore backs the fake repository, linker and transaction with one shared
// state so the tests observe real commit/rollback visibility: writes land in
// a pending area and only become readable when the transaction commits.
type fakeStore struct {
	movies  map[string]*Movie
	links   map[string][]string // adminID -> movieIDs, committed only
	admins  map[string]bool
	nextID  int
	pending struct {
		movies []*Movie
		links  [][2]string
	}

	beginErr  error
	createErr error
	appendErr error
	commitErr error

	beginCalls  int
	createCalls int
	appendCalls int
}

func newFakeStore(adminIDs ...string) *fakeStore {
	s := &fakeStore{
		movies: make(map[string]*Movie),
		links:  make(map[string][]string),
		admins: make(map[string]bool),
	}
	for _, id := range adminIDs {
		s.admins[id] = true
	}
	return s
}

func (s *fakeStore) apply() {
	for _, m := range s.pending.movies {
		s.movies[m.ID] = m
	}
	for _, l := range s.pending.links {
		s.links[l[0]] = append(s.links[l[0]], l[1])
	}
	s.discard()
}

func (s *fakeStore) discard() {
	s.pending.movies = nil
	s.pending.links = nil
}

// Begin makes fakeStore a TxBeginner.
func (s *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.beginCalls++
	return &fakeTx{store: s}, nil
}

// fakeTx embeds pgx.Tx for the methods the coordinator never touches.
type fakeTx struct {
	pgx.Tx
	store      *fakeStore
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.store.commitErr != nil {
		return t.store.commitErr
	}
	t.committed = true
	t.store.apply()
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	t.store.discard()
	return nil
}

type fakeMovieRepo struct {
	store *fakeStore
}

func (r *fakeMovieRepo) CreateTx(ctx context.Context, tx pgx.Tx, m *Movie) error {
	r.store.createCalls++
	if r.store.createErr != nil {
		return r.store.createErr
	}
	r.store.nextID++
	m.ID = fmt.Sprintf("movie-%d", r.store.nextID)
	m.CreatedAt = time.Now().UTC()
	r.store.pending.movies = append(r.store.pending.movies, m)
	return nil
}

func (r *fakeMovieRepo) GetByID(ctx context.Context, id string) (*Movie, error) {
	if m, ok := r.store.movies[id]; ok {
		return m, nil
	}
	return nil, ErrNotFound
}

func (r *fakeMovieRepo) List(ctx context.Context, filter Filter) ([]*Movie, int, error) {
	var out []*Movie
	for _, m := range r.store.movies {
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *fakeMovieRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.movies[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.movies, id)
	return nil
}

type fakeAdminLinker struct {
	store *fakeStore
}

func (l *fakeAdminLinker) AppendMovieTx(ctx context.Context, tx pgx.Tx, adminID, movieID string) error {
	l.store.appendCalls++
	if l.store.appendErr != nil {
		return l.store.appendErr
	}
	if !l.store.admins[adminID] {
		return errors.New("admin not found")
	}
	l.store.pending.links = append(l.store.pending.links, [2]string{adminID, movieID})
	return nil
}

type fakeEvents struct {
	published []event.MovieRegistered
}

func (f *fakeEvents) MovieRegistered(ctx context.Context, ev event.MovieRegistered) error {
	f.published = append(f.published, ev)
	return nil
}

func newTestService(store *fakeStore) (Service, *fakeMovieRepo, *fakeEvents) {
	repo := &fakeMovieRepo{store: store}
	events := &fakeEvents{}
	svc := NewService(store, repo, &fakeAdminLinker{store: store}, events)
	return svc, repo, events
}

func validInput() RegisterInput {
	return RegisterInput{
		Title:       "Dune",
		Description: "Desert epic",
		ReleaseDate: "2021-10-22",
		PosterURL:   "http://x/p.png",
		TrailerURL:  "http://x/t.mp4",
		Actors:      []string{"A", "B"},
	}
}

func requireAppErrorCode(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestRegisterSuccess(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, events := newTestService(store)

	m, err := svc.Register(context.Background(), "admin-1", validInput())
	require.NoError(t, err)

	assert.Equal(t, "Dune", m.Title)
	assert.Equal(t, "Desert epic", m.Description)
	assert.Equal(t, "http://x/p.png", m.PosterURL)
	assert.Equal(t, "http://x/t.mp4", m.TrailerURL)
	assert.Equal(t, []string{"A", "B"}, m.Actors)
	assert.Equal(t, "admin-1", m.AdminID)
	assert.Equal(t, time.Date(2021, 10, 22, 0, 0, 0, 0, time.UTC), m.ReleaseDate)
	assert.NotEmpty(t, m.ID)

	// Ownership linkage: both halves visible post-commit.
	require.Len(t, store.links["admin-1"], 1)
	assert.Equal(t, m.ID, store.links["admin-1"][0])

	// Exactly one transaction.
	assert.Equal(t, 1, store.beginCalls)

	// One event, after the commit.
	require.Len(t, events.published, 1)
	assert.Equal(t, m.ID, events.published[0].MovieID)
	assert.Equal(t, "admin-1", events.published[0].AdminID)
	assert.Equal(t, "2021-10-22", events.published[0].ReleaseDate)
}

func TestRegisterThenGetReturnsSameMovie(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, _ := newTestService(store)

	m, err := svc.Register(context.Background(), "admin-1", validInput())
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestRegisterValidationGate(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, _ := newTestService(store)

	in := validInput()
	in.Title = "  "
	in.PosterURL = ""

	_, err := svc.Register(context.Background(), "admin-1", in)
	appErr := requireAppErrorCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Message, "title")
	assert.Contains(t, appErr.Message, "posterUrl")

	// No store access once validation failed.
	assert.Equal(t, 0, store.beginCalls)
	assert.Equal(t, 0, store.createCalls)
	assert.Equal(t, 0, store.appendCalls)
}

func TestRegisterInvalidReleaseDate(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, _ := newTestService(store)

	in := validInput()
	in.ReleaseDate = "not-a-date"

	_, err := svc.Register(context.Background(), "admin-1", in)
	appErr := requireAppErrorCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Message, "release date")
	assert.Equal(t, 0, store.beginCalls)
}

func TestRegisterAcceptsRFC3339Date(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, _ := newTestService(store)

	in := validInput()
	in.ReleaseDate = "2021-10-22T00:00:00Z"

	m, err := svc.Register(context.Background(), "admin-1", in)
	require.NoError(t, err)
	assert.Equal(t, 2021, m.ReleaseDate.Year())
}

func TestRegisterUnknownAdminAbortsTransaction(t *testing.T) {
	store := newFakeStore() // no admins at all
	svc, repo, events := newTestService(store)

	_, err := svc.Register(context.Background(), "ghost", validInput())
	appErr := requireAppErrorCode(t, err, http.StatusInternalServerError)
	assert.Equal(t, "registration failed", appErr.Message)

	// Atomicity: the movie created inside the transaction must not be
	// retrievable by any read path afterwards.
	assert.Equal(t, 1, store.createCalls)
	assert.Empty(t, store.movies)
	movies, _, _ := repo.List(context.Background(), Filter{})
	assert.Empty(t, movies)
	assert.Empty(t, store.links)
	assert.Empty(t, events.published)
}

func TestRegisterCreateFailureAborts(t *testing.T) {
	store := newFakeStore("admin-1")
	store.createErr = errors.New("insert failed")
	svc, _, _ := newTestService(store)

	_, err := svc.Register(context.Background(), "admin-1", validInput())
	requireAppErrorCode(t, err, http.StatusInternalServerError)

	// The admin save is never reached.
	assert.Equal(t, 0, store.appendCalls)
	assert.Empty(t, store.movies)
}

func TestRegisterCommitFailureAborts(t *testing.T) {
	store := newFakeStore("admin-1")
	store.commitErr = errors.New("commit failed")
	svc, _, _ := newTestService(store)

	_, err := svc.Register(context.Background(), "admin-1", validInput())
	requireAppErrorCode(t, err, http.StatusInternalServerError)

	assert.Empty(t, store.movies)
	assert.Empty(t, store.links)
}

func TestRegisterBeginFailure(t *testing.T) {
	store := newFakeStore("admin-1")
	store.beginErr = errors.New("pool exhausted")
	svc, _, _ := newTestService(store)

	_, err := svc.Register(context.Background(), "admin-1", validInput())
	requireAppErrorCode(t, err, http.StatusInternalServerError)
}

func TestRegisterNilActorsBecomesEmpty(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, _ := newTestService(store)

	in := validInput()
	in.Actors = nil

	m, err := svc.Register(context.Background(), "admin-1", in)
	require.NoError(t, err)
	require.NotNil(t, m.Actors)
	assert.Empty(t, m.Actors)
}

func TestRegisterWithoutPublisher(t *testing.T) {
	store := newFakeStore("admin-1")
	svc := NewService(store, &fakeMovieRepo{store: store}, &fakeAdminLinker{store: store}, nil)

	_, err := svc.Register(context.Background(), "admin-1", validInput())
	require.NoError(t, err)
}

func TestDeleteRemovesVisibility(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, _ := newTestService(store)

	m, err := svc.Register(context.Background(), "admin-1", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), m.ID))

	_, err = svc.GetByID(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUnknownMovie(t *testing.T) {
	store := newFakeStore("admin-1")
	svc, _, _ := newTestService(store)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
