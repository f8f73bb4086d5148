package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const EmptyTitle string = ""

// Year is kept as text because the catalog file mixes numbers and strings.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a number or a string: %w", err)
	}
	*y = Year(n.String())
	return nil
}

// Int parses the year, returning 0 when it is not numeric.
func (y Year) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(y)))
	if err != nil {
		return 0
	}
	return n
}

func (y Year) IsNumeric() bool {
	_, err := strconv.Atoi(strings.TrimSpace(string(y)))
	return err == nil
}

func (y Year) String() string {
	return string(y)
}

type RequestedBy struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Platform string `json:"platform"`
}

type Movie struct {
	ID                int64       `json:"id"`
	Title             string      `json:"title"`
	Year              Year        `json:"year"`
	Category          string      `json:"category"`
	Runtime           string      `json:"runtime"`
	Ratings           string      `json:"ratings"`
	VoteCount         int         `json:"voteCount"`
	RequestedBy       RequestedBy `json:"requestedBy"`
	TrailerLink       string      `json:"trailerLink"`
	MovieLink         string      `json:"movieLink"`
	ModernTrailerLink string      `json:"modernTrailerLink"`
	ImageURL          string      `json:"imageUrl"`
	Language          string      `json:"language"`
	DateWatched       string      `json:"dateWatched"`
	Director          string      `json:"director,omitempty"`
	Watched           bool        `json:"watched"`
	Subtitles         bool        `json:"subtitles"`
	TrailerPrivate    bool        `json:"trailerPrivate"`
	MoviePrivate      bool        `json:"moviePrivate"`
}

// FindByID is a linear scan; the catalog carries no index.
func FindByID(movies []Movie, id int64) (int, bool) {
	for i := range movies {
		if movies[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
