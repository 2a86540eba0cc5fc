package movie

import (
	"context"
	"strings"
	"time"

	"github.com/cinereel/movie-booking-backend/internal/event"
	"github.com/jackc/pgx/v5"
)

// RegisterInput carries the raw movie-registration payload. The admin
// identity is NOT part of the input: it arrives separately, as the result of
// an already-completed credential verification.
type RegisterInput struct {
	Title       string
	Description string
	ReleaseDate string
	PosterURL   string
	TrailerURL  string
	Featured    bool
	Actors      []string
}

// TxBeginner opens a transaction spanning the movie and admin stores.
// *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// AdminLinker is the slice of the admin store the registration transaction
// needs: appending a movie id to an admin's owned set inside the transaction.
type AdminLinker interface {
	AppendMovieTx(ctx context.Context, tx pgx.Tx, adminID, movieID string) error
}

// EventPublisher publishes domain events after a successful commit.
type EventPublisher interface {
	MovieRegistered(ctx context.Context, ev event.MovieRegistered) error
}

// Service defines business logic for the movie catalog. Register is the
// transaction coordinator; the other operations are simple pass-throughs.
type Service interface {
	Register(ctx context.Context, adminID string, in RegisterInput) (*Movie, error)
	GetByID(ctx context.Context, id string) (*Movie, error)
	List(ctx context.Context, filter Filter) ([]*Movie, int, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     TxBeginner
	repo   Repository
	admins AdminLinker
	events EventPublisher // optional, may be nil
}

// NewService creates a new movie Service.
func NewService(db TxBeginner, repo Repository, admins AdminLinker, events EventPublisher) Service {
	return &service{
		db:     db,
		repo:   repo,
		admins: admins,
		events: events,
	}
}

// releaseDateFormats lists the accepted releaseDate layouts, tried in order.
var releaseDateFormats = []string{"2006-01-02", time.RFC3339}

func parseReleaseDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range releaseDateFormats {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// blankFields returns the mandatory fields that are absent or blank.
func blankFields(in RegisterInput) []string {
	var fields []string
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		fields = append(fields, "description")
	}
	if strings.TrimSpace(in.PosterURL) == "" {
		fields = append(fields, "posterUrl")
	}
	if strings.TrimSpace(in.TrailerURL) == "" {
		fields = append(fields, "trailerUrl")
	}
	return fields
}

// Register creates a movie and links it into the owning admin's movie set as
// one atomic unit. The caller supplies an adminID that has already been
// verified; validation happens before any store access, and no partial write
// survives a failure in either store.
func (s *service) Register(ctx context.Context, adminID string, in RegisterInput) (*Movie, error) {
	if fields := blankFields(in); len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	releaseDate, err := parseReleaseDate(in.ReleaseDate)
	if err != nil {
		return nil, newDateValidationError(in.ReleaseDate)
	}

	actors := in.Actors
	if actors == nil {
		actors = []string{}
	}

	m := &Movie{
		Title:       in.Title,
		Description: in.Description,
		ReleaseDate: releaseDate,
		PosterURL:   in.PosterURL,
		TrailerURL:  in.TrailerURL,
		Featured:    in.Featured,
		Actors:      actors,
		AdminID:     adminID,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, registrationFailed(err)
	}
	// Abort on every exit path. After a successful commit this is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.repo.CreateTx(ctx, tx, m); err != nil {
		return nil, registrationFailed(err)
	}

	if err := s.admins.AppendMovieTx(ctx, tx, adminID, m.ID); err != nil {
		return nil, registrationFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, registrationFailed(err)
	}

	if s.events != nil {
		// Best effort; the registration already committed.
		_ = s.events.MovieRegistered(ctx, event.MovieRegistered{
			MovieID:      m.ID,
			AdminID:      m.AdminID,
			Title:        m.Title,
			ReleaseDate:  m.ReleaseDate.Format("2006-01-02"),
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return m, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Movie, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Movie, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
