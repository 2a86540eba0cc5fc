package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing admin data from storage.
//
// AppendMovieTx is the transactional half of the registration write: it runs
// inside the caller's transaction and links a freshly created movie into the
// admin's owned set. The link is a plain insert into admin_movies, so two
// concurrent registrations by the same admin can never overwrite each other.
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	AppendMovieTx(ctx context.Context, tx pgx.Tx, adminID, movieID string) error
}

type pgxAdminRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxAdminRepository{
		pool: pool,
	}
}

// adminSelect aggregates the admin's owned movie ids as a JSON array so a
// single row scan yields the full entity.
const adminSelect = `
	SELECT
		a.id,
		a.email,
		a.password_hash,
		a.display_name,
		a.created_at,
		a.last_login_at,
		COALESCE(
			(
				SELECT json_agg(am.movie_id ORDER BY am.created_at)
				FROM public.admin_movies am
				WHERE am.admin_id = a.id
			),
			'[]'::json
		) AS added_movies
	FROM public.admins a
`

func scanAdmin(row pgx.Row) (*Admin, error) {
	var a Admin
	var moviesJSON []byte

	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.DisplayName,
		&a.CreatedAt,
		&a.LastLoginAt,
		&moviesJSON,
	); err != nil {
		return nil, err
	}

	if len(moviesJSON) > 0 {
		if err := json.Unmarshal(moviesJSON, &a.AddedMovies); err != nil {
			log.Printf("warning: failed to unmarshal added movies for admin %s: %v", a.ID, err)
		}
	}

	return &a, nil
}

func (r *pgxAdminRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	row := r.pool.QueryRow(ctx, adminSelect+" WHERE a.email = $1", email)

	a, err := scanAdmin(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByEmail query failed: %w", err)
	}

	return a, nil
}

func (r *pgxAdminRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	row := r.pool.QueryRow(ctx, adminSelect+" WHERE a.id = $1", id)

	a, err := scanAdmin(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByID query failed: %w", err)
	}

	return a, nil
}

func (r *pgxAdminRepository) Create(ctx context.Context, a *Admin) error {
	const query = `
		INSERT INTO public.admins (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		a.Email,
		a.PasswordHash,
		a.DisplayName,
	).Scan(&a.ID, &a.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create admin failed: %w", err)
	}

	return nil
}

func (r *pgxAdminRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `
		UPDATE public.admins
		SET last_login_at = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("UpdateLastLogin failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxAdminRepository) AppendMovieTx(ctx context.Context, tx pgx.Tx, adminID, movieID string) error {
	const query = `
		INSERT INTO public.admin_movies (admin_id, movie_id)
		VALUES ($1, $2)
	`

	if _, err := tx.Exec(ctx, query, adminID, movieID); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("append movie to admin failed: %w", err)
	}

	return nil
}
