package movie

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing movie data from storage.
//
// CreateTx runs inside the caller's transaction; everything else is a plain
// single-entity read or delete with no atomicity requirement.
type Repository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, m *Movie) error
	GetByID(ctx context.Context, id string) (*Movie, error)
	List(ctx context.Context, filter Filter) ([]*Movie, int, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateTx(ctx context.Context, tx pgx.Tx, m *Movie) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.movies").
		Columns("title", "description", "release_date", "poster_url", "trailer_url", "featured", "actors", "admin_id").
		Values(m.Title, m.Description, m.ReleaseDate, m.PosterURL, m.TrailerURL, m.Featured, m.Actors, m.AdminID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create movie query failed: %w", err)
	}

	return tx.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Movie, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "title", "description", "release_date", "poster_url",
		"trailer_url", "featured", "actors", "admin_id", "created_at",
	).
		From("public.movies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get movie query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var m Movie
	if err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.ReleaseDate, &m.PosterURL,
		&m.TrailerURL, &m.Featured, &m.Actors, &m.AdminID, &m.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get movie failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Movie, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "title", "description", "release_date", "poster_url",
		"trailer_url", "featured", "actors", "admin_id", "created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.movies")

	if filter.Featured != nil {
		query = query.Where(squirrel.Eq{"featured": *filter.Featured})
	}

	query = query.OrderBy("release_date DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list movies query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies failed: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	var total int

	for rows.Next() {
		var m Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.ReleaseDate, &m.PosterURL,
			&m.TrailerURL, &m.Featured, &m.Actors, &m.AdminID, &m.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movie failed: %w", err)
		}
		movies = append(movies, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate movies failed: %w", err)
	}

	return movies, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.movies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete movie query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete movie failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
