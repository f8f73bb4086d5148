package usecase_movie

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rconjoe/flickpicker/internal/model"
	"github.com/rconjoe/flickpicker/internal/service/pagination"
	"github.com/rconjoe/flickpicker/internal/service/pipeline"
)

var (
	ErrFailedToLoadMovies = errors.New("failed to load movies")
	ErrFailedToStoreMovie = errors.New("failed to store movie")
	ErrFailedToReplace    = errors.New("failed to replace catalog")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoMatches          = errors.New("no movies found")
	ErrIDUnavailable      = errors.New("no free movie id")
)

const storeAttempts = 3

type Repository interface {
	Load(ctx context.Context) ([]model.Movie, error)
	LoadByID(ctx context.Context, ID int64) (model.Movie, error)
	Store(ctx context.Context, m model.Movie) error
	ReplaceAll(ctx context.Context, movies []model.Movie) error
}

type Publisher interface {
	Publish(e model.Event)
}

type Query struct {
	Criteria model.Criteria
	Sort     string
	Page     int
	PageSize int
}

type Page struct {
	Movies   []model.Movie
	Metadata model.Metadata
}

type Usecase struct {
	repository Repository
	publisher  Publisher
	now        func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(
	repository Repository,
	publisher Publisher,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		repository: repository,
		publisher:  publisher,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Load(ctx context.Context) ([]model.Movie, error) {
	movies, err := u.repository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadMovies, err)
	}
	return movies, nil
}

func (u *Usecase) GetByID(ctx context.Context, ID int64) (model.Movie, error) {
	m, err := u.repository.LoadByID(ctx, ID)
	if err != nil {
		return model.Movie{}, fmt.Errorf("%w: %w", ErrFailedToLoadMovies, err)
	}
	return m, nil
}

// List filters and sorts the whole catalog without paginating it.
func (u *Usecase) List(ctx context.Context, c model.Criteria, sortKey string) ([]model.Movie, error) {
	movies, err := u.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() && sortKey == "" {
		return movies, nil
	}
	return pipeline.Sort(pipeline.Filter(movies, c), sortKey), nil
}

// Query filters, sorts and paginates the catalog on the server side.
func (u *Usecase) Query(ctx context.Context, q Query) (Page, error) {
	if q.Page < 1 {
		return Page{}, fmt.Errorf("%w: page must be positive", ErrInvalidInput)
	}
	if q.PageSize < 1 {
		q.PageSize = pagination.DefaultPageSize
	}

	movies, err := u.Load(ctx)
	if err != nil {
		return Page{}, err
	}

	page, total := pipeline.Apply(movies, q.Criteria, q.Sort, q.Page, q.PageSize)
	return Page{
		Movies: page,
		Metadata: model.Metadata{
			CurrentPage:  q.Page,
			PageSize:     q.PageSize,
			TotalPages:   pagination.TotalPages(total, q.PageSize),
			TotalRecords: total,
		},
	}, nil
}

// Search matches the query against title, director and year.
func (u *Usecase) Search(ctx context.Context, query string) ([]model.Movie, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}

	movies, err := u.Load(ctx)
	if err != nil {
		return nil, err
	}

	found := make([]model.Movie, 0)
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), q) ||
			(m.Director != "" && strings.Contains(strings.ToLower(m.Director), q)) ||
			(m.Year != "" && strings.Contains(m.Year.String(), q)) {
			found = append(found, m)
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("%w matching %q", ErrNoMatches, query)
	}
	return found, nil
}

// Save validates and appends a movie. A zero id is replaced by the creation
// timestamp in milliseconds.
func (u *Usecase) Save(ctx context.Context, m model.Movie) (model.Movie, error) {
	if err := validate(m); err != nil {
		return model.Movie{}, err
	}

	generated := m.ID == 0
	if generated {
		m.ID = u.now().UnixMilli()
	}
	if m.VoteCount < 0 {
		m.VoteCount = 0
	}

	for attempt := 0; attempt < storeAttempts; attempt++ {
		err := u.repository.Store(ctx, m)
		if err == nil {
			u.publish(model.Event{Type: model.EventMovieSaved, MovieID: m.ID, Movie: &m})
			return m, nil
		}
		if !errors.Is(err, model.ErrDuplicateMovie) {
			return model.Movie{}, fmt.Errorf("%w: %w", ErrFailedToStoreMovie, err)
		}
		if !generated {
			return model.Movie{}, fmt.Errorf("%w: %w", ErrFailedToStoreMovie, err)
		}
		m.ID++
	}

	return model.Movie{}, ErrIDUnavailable
}

func (u *Usecase) ReplaceAll(ctx context.Context, movies []model.Movie) error {
	seen := make(map[int64]struct{}, len(movies))
	for i, m := range movies {
		if err := validate(m); err != nil {
			return fmt.Errorf("movie #%d: %w", i, err)
		}
		if m.ID == 0 {
			return fmt.Errorf("%w: movie #%d has no id", ErrInvalidInput, i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidInput, m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	if err := u.repository.ReplaceAll(ctx, movies); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToReplace, err)
	}
	u.publish(model.Event{Type: model.EventCatalogSet})
	return nil
}

func (u *Usecase) publish(e model.Event) {
	if u.publisher != nil {
		u.publisher.Publish(e)
	}
}

func validate(m model.Movie) error {
	if strings.TrimSpace(m.Title) == model.EmptyTitle {
		return fmt.Errorf("%w: movie title cannot be empty", ErrInvalidInput)
	}
	if m.Year == "" {
		return fmt.Errorf("%w: movie year is required", ErrInvalidInput)
	}
	if !m.Year.IsNumeric() {
		return fmt.Errorf("%w: movie year must be numeric", ErrInvalidInput)
	}
	return nil
}
