package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinereel/movie-booking-backend/internal/auth"
)

type fakeRepo struct {
	byEmail map[string]*Admin
	nextID  int

	lastLoginUpdates   int
	updateLastLoginErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*Admin)}
}

func (r *fakeRepo) Create(ctx context.Context, a *Admin) error {
	if _, ok := r.byEmail[a.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	a.ID = fmt.Sprintf("admin-%d", r.nextID)
	a.CreatedAt = time.Now().UTC()
	r.byEmail[a.Email] = a
	return nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Admin, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.lastLoginUpdates++
	return r.updateLastLoginErr
}

func (r *fakeRepo) AppendMovieTx(ctx context.Context, tx pgx.Tx, adminID, movieID string) error {
	return nil
}

// bcrypt at minimum cost keeps the tests fast.
func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4))
}

func TestSignupSuccess(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	a, err := svc.Signup(context.Background(), "Admin@Example.COM ", "password123", "  Ada ")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", a.Email)
	assert.NotEmpty(t, a.ID)
	require.NotNil(t, a.DisplayName)
	assert.Equal(t, "Ada", *a.DisplayName)
	assert.NotEqual(t, "password123", a.PasswordHash)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "A@B.com", "password456", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestSignupShortPassword(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Signup(context.Background(), "a@b.com", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestSignupMissingEmail(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Signup(context.Background(), "   ", "password123", "")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)

	a, err := svc.Login(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", a.Email)
	assert.Equal(t, 1, repo.lastLoginUpdates)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailIsOpaque(t *testing.T) {
	svc := newTestService(newFakeRepo())

	// Same error as a wrong password, so callers cannot probe for accounts.
	_, err := svc.Login(context.Background(), "nobody@b.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSurvivesLastLoginFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.updateLastLoginErr = fmt.Errorf("update failed")
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@b.com", "password123")
	assert.NoError(t, err)
}
