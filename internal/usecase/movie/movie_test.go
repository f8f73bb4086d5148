package usecase_movie

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rconjoe/flickpicker/internal/model"
	mocks_publisher "github.com/rconjoe/flickpicker/mocks/publisher"
	mocks "github.com/rconjoe/flickpicker/mocks/repository"
)

type UsecaseMovieUnitSuite struct {
	suite.Suite

	mockRepo      *mocks.MovieRepository
	mockPublisher *mocks_publisher.Publisher
	usecase       *Usecase
	ctx           context.Context
	now           time.Time
}

func catalog() []model.Movie {
	return []model.Movie{
		{ID: 1, Title: "Alien", Year: "1979", Category: "Horror, Sci-Fi", Runtime: "117 min", Ratings: "R", Director: "Ridley Scott"},
		{ID: 2, Title: "Heat", Year: "1995", Category: "Crime", Runtime: "170 min", Ratings: "R", Director: "Michael Mann"},
		{ID: 3, Title: "Up", Year: "2009", Category: "Animation", Runtime: "96 min", Ratings: "PG"},
		{ID: 4, Title: "Aliens", Year: "1986", Category: "Sci-Fi", Runtime: "137 min", Ratings: "R", Director: "James Cameron"},
	}
}

func (s *UsecaseMovieUnitSuite) BeforeEach(t provider.T) {
	s.mockRepo = mocks.NewMovieRepository(t)
	s.mockPublisher = mocks_publisher.NewPublisher(t)
	s.now = time.UnixMilli(1700000000000)
	s.usecase = New(s.mockRepo, s.mockPublisher, WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *UsecaseMovieUnitSuite) TestList(t provider.T) {
	t.Run("Should return catalog untouched without criteria", func(t provider.T) {
		s.mockRepo.On("Load", s.ctx).Return(catalog(), nil).Once()

		movies, err := s.usecase.List(s.ctx, model.Criteria{}, "")

		require.NoError(t, err)
		assert.Equal(t, catalog(), movies)
	})

	t.Run("Should filter and sort", func(t provider.T) {
		s.mockRepo.On("Load", s.ctx).Return(catalog(), nil).Once()

		movies, err := s.usecase.List(s.ctx, model.Criteria{Rating: "R"}, model.SortTitle)

		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, []string{"Alien", "Aliens", "Heat"}, []string{movies[0].Title, movies[1].Title, movies[2].Title})
	})
}

func (s *UsecaseMovieUnitSuite) TestQuery(t provider.T) {
	t.Run("Should filter sort and paginate", func(t provider.T) {
		s.mockRepo.On("Load", s.ctx).Return(catalog(), nil).Once()

		page, err := s.usecase.Query(s.ctx, Query{
			Criteria: model.Criteria{Genre: "sci-fi"},
			Sort:     model.SortYear,
			Page:     1,
			PageSize: 1,
		})

		require.NoError(t, err)
		require.Len(t, page.Movies, 1)
		assert.Equal(t, "Aliens", page.Movies[0].Title)
		assert.Equal(t, model.Metadata{CurrentPage: 1, PageSize: 1, TotalPages: 2, TotalRecords: 2}, page.Metadata)
	})

	t.Run("Should default page size", func(t provider.T) {
		s.mockRepo.On("Load", s.ctx).Return(catalog(), nil).Once()

		page, err := s.usecase.Query(s.ctx, Query{Page: 1})

		require.NoError(t, err)
		assert.Len(t, page.Movies, 4)
		assert.Equal(t, 10, page.Metadata.PageSize)
		assert.Equal(t, 1, page.Metadata.TotalPages)
	})

	t.Run("Should return empty page past the end", func(t provider.T) {
		s.mockRepo.On("Load", s.ctx).Return(catalog(), nil).Once()

		page, err := s.usecase.Query(s.ctx, Query{Page: 9, PageSize: 5})

		require.NoError(t, err)
		assert.Empty(t, page.Movies)
		assert.Equal(t, 4, page.Metadata.TotalRecords)
	})

	t.Run("Should reject non-positive page", func(t provider.T) {
		_, err := s.usecase.Query(s.ctx, Query{Page: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Should wrap repository error", func(t provider.T) {
		s.mockRepo.On("Load", s.ctx).Return(nil, errors.New("disk")).Once()

		_, err := s.usecase.Query(s.ctx, Query{Page: 1})
		assert.ErrorIs(t, err, ErrFailedToLoadMovies)
	})
}

func (s *UsecaseMovieUnitSuite) TestSearch(t provider.T) {
	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "title substring", query: "ALIEN", want: []int64{1, 4}},
		{name: "director", query: "mann", want: []int64{2}},
		{name: "year", query: "200", want: []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t provider.T) {
			s.mockRepo.On("Load", s.ctx).Return(catalog(), nil).Once()

			found, err := s.usecase.Search(s.ctx, tt.query)

			require.NoError(t, err)
			ids := make([]int64, 0, len(found))
			for _, m := range found {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("Should report no matches", func(t provider.T) {
		s.mockRepo.On("Load", s.ctx).Return(catalog(), nil).Once()

		found, err := s.usecase.Search(s.ctx, "zzz")

		assert.ErrorIs(t, err, ErrNoMatches)
		assert.Contains(t, err.Error(), `"zzz"`)
		assert.Nil(t, found)
	})

	t.Run("Should reject blank query", func(t provider.T) {
		_, err := s.usecase.Search(s.ctx, "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func (s *UsecaseMovieUnitSuite) TestSave(t provider.T) {
	t.Run("Should assign timestamp id", func(t provider.T) {
		in := model.Movie{Title: "Heat", Year: "1995"}
		want := in
		want.ID = s.now.UnixMilli()

		s.mockRepo.On("Store", s.ctx, want).Return(nil).Once()
		s.mockPublisher.On("Publish", mock.MatchedBy(func(e model.Event) bool {
			return e.Type == model.EventMovieSaved && e.MovieID == want.ID
		})).Once()

		saved, err := s.usecase.Save(s.ctx, in)

		require.NoError(t, err)
		assert.Equal(t, want, saved)
	})

	t.Run("Should bump generated id on collision", func(t provider.T) {
		in := model.Movie{Title: "Heat", Year: "1995"}
		first := in
		first.ID = s.now.UnixMilli()
		second := first
		second.ID++

		s.mockRepo.On("Store", s.ctx, first).Return(model.ErrDuplicateMovie).Once()
		s.mockRepo.On("Store", s.ctx, second).Return(nil).Once()
		s.mockPublisher.On("Publish", mock.Anything).Once()

		saved, err := s.usecase.Save(s.ctx, in)

		require.NoError(t, err)
		assert.Equal(t, second.ID, saved.ID)
	})

	t.Run("Should keep caller id duplicates as errors", func(t provider.T) {
		in := model.Movie{ID: 7, Title: "Heat", Year: "1995"}
		s.mockRepo.On("Store", s.ctx, in).Return(model.ErrDuplicateMovie).Once()

		_, err := s.usecase.Save(s.ctx, in)

		assert.ErrorIs(t, err, ErrFailedToStoreMovie)
		assert.ErrorIs(t, err, model.ErrDuplicateMovie)
	})

	t.Run("Should clamp negative votes", func(t provider.T) {
		in := model.Movie{ID: 8, Title: "Up", Year: "2009", VoteCount: -3}
		want := in
		want.VoteCount = 0

		s.mockRepo.On("Store", s.ctx, want).Return(nil).Once()
		s.mockPublisher.On("Publish", mock.Anything).Once()

		saved, err := s.usecase.Save(s.ctx, in)

		require.NoError(t, err)
		assert.Zero(t, saved.VoteCount)
	})

	invalid := []struct {
		name  string
		movie model.Movie
	}{
		{name: "empty title", movie: model.Movie{Title: "  ", Year: "1999"}},
		{name: "missing year", movie: model.Movie{Title: "Heat"}},
		{name: "text year", movie: model.Movie{Title: "Heat", Year: "soon"}},
	}
	for _, tt := range invalid {
		t.Run("Should reject "+tt.name, func(t provider.T) {
			_, err := s.usecase.Save(s.ctx, tt.movie)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func (s *UsecaseMovieUnitSuite) TestReplaceAll(t provider.T) {
	t.Run("Should replace and announce", func(t provider.T) {
		movies := catalog()
		s.mockRepo.On("ReplaceAll", s.ctx, movies).Return(nil).Once()
		s.mockPublisher.On("Publish", model.Event{Type: model.EventCatalogSet}).Once()

		assert.NoError(t, s.usecase.ReplaceAll(s.ctx, movies))
	})

	t.Run("Should reject duplicate ids", func(t provider.T) {
		movies := append(catalog(), catalog()[0])
		err := s.usecase.ReplaceAll(s.ctx, movies)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Should reject missing id", func(t provider.T) {
		err := s.usecase.ReplaceAll(s.ctx, []model.Movie{{Title: "Heat", Year: "1995"}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Should wrap repository error", func(t provider.T) {
		movies := catalog()[:1]
		s.mockRepo.On("ReplaceAll", s.ctx, movies).Return(errors.New("locked")).Once()

		err := s.usecase.ReplaceAll(s.ctx, movies)
		assert.ErrorIs(t, err, ErrFailedToReplace)
	})
}

func TestUsecaseMovieUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseMovieUnitSuite))
}
