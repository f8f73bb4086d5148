package infra_postgres_movie

import (
	"github.com/rconjoe/flickpicker/internal/model"
)

type MovieDB struct {
	ID                int64  `db:"id"`
	Title             string `db:"title"`
	Year              string `db:"year"`
	Category          string `db:"category"`
	Runtime           string `db:"runtime"`
	Ratings           string `db:"ratings"`
	VoteCount         int    `db:"vote_count"`
	RequestedUserID   string `db:"requested_user_id"`
	RequestedUsername string `db:"requested_username"`
	RequestedPlatform string `db:"requested_platform"`
	TrailerLink       string `db:"trailer_link"`
	MovieLink         string `db:"movie_link"`
	ModernTrailerLink string `db:"modern_trailer_link"`
	ImageURL          string `db:"image_url"`
	Language          string `db:"language"`
	DateWatched       string `db:"date_watched"`
	Director          string `db:"director"`
	Watched           bool   `db:"watched"`
	Subtitles         bool   `db:"subtitles"`
	TrailerPrivate    bool   `db:"trailer_private"`
	MoviePrivate      bool   `db:"movie_private"`
}

func (m *MovieDB) ToDomain() model.Movie {
	return model.Movie{
		ID:        m.ID,
		Title:     m.Title,
		Year:      model.Year(m.Year),
		Category:  m.Category,
		Runtime:   m.Runtime,
		Ratings:   m.Ratings,
		VoteCount: m.VoteCount,
		RequestedBy: model.RequestedBy{
			UserID:   m.RequestedUserID,
			Username: m.RequestedUsername,
			Platform: m.RequestedPlatform,
		},
		TrailerLink:       m.TrailerLink,
		MovieLink:         m.MovieLink,
		ModernTrailerLink: m.ModernTrailerLink,
		ImageURL:          m.ImageURL,
		Language:          m.Language,
		DateWatched:       m.DateWatched,
		Director:          m.Director,
		Watched:           m.Watched,
		Subtitles:         m.Subtitles,
		TrailerPrivate:    m.TrailerPrivate,
		MoviePrivate:      m.MoviePrivate,
	}
}

func FromDomain(m model.Movie) MovieDB {
	return MovieDB{
		ID:                m.ID,
		Title:             m.Title,
		Year:              m.Year.String(),
		Category:          m.Category,
		Runtime:           m.Runtime,
		Ratings:           m.Ratings,
		VoteCount:         m.VoteCount,
		RequestedUserID:   m.RequestedBy.UserID,
		RequestedUsername: m.RequestedBy.Username,
		RequestedPlatform: m.RequestedBy.Platform,
		TrailerLink:       m.TrailerLink,
		MovieLink:         m.MovieLink,
		ModernTrailerLink: m.ModernTrailerLink,
		ImageURL:          m.ImageURL,
		Language:          m.Language,
		DateWatched:       m.DateWatched,
		Director:          m.Director,
		Watched:           m.Watched,
		Subtitles:         m.Subtitles,
		TrailerPrivate:    m.TrailerPrivate,
		MoviePrivate:      m.MoviePrivate,
	}
}
