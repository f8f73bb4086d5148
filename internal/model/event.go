package model

const (
	EventVoteUpdated = "VOTE_UPDATED"
	EventMovieSaved  = "MOVIE_SAVED"
	EventCatalogSet  = "CATALOG_REPLACED"
)

type Event struct {
	Type    string `json:"type"`
	MovieID int64  `json:"movieId,omitempty"`
	Votes   int    `json:"voteCount"`
	Movie   *Movie `json:"movie,omitempty"`
}
