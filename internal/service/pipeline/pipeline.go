package pipeline

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/rconjoe/flickpicker/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter keeps the movies matching every non-empty criterion.
func Filter(movies []model.Movie, c model.Criteria) []model.Movie {
	genre := strings.ToLower(strings.TrimSpace(c.Genre))
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if genre != "" && !strings.Contains(strings.ToLower(m.Category), genre) {
			continue
		}
		if c.Year != "" && m.Year.String() != c.Year {
			continue
		}
		if c.Rating != "" && m.Ratings != c.Rating {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Sort returns a stably sorted copy. Unknown keys keep the input order.
func Sort(movies []model.Movie, key string) []model.Movie {
	out := slices.Clone(movies)

	switch key {
	case model.SortTitle:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b model.Movie) int {
			return col.CompareString(a.Title, b.Title)
		})
	case model.SortYear:
		slices.SortStableFunc(out, func(a, b model.Movie) int {
			return b.Year.Int() - a.Year.Int()
		})
	case model.SortRuntime:
		slices.SortStableFunc(out, func(a, b model.Movie) int {
			ra, rb := RuntimeMinutes(a.Runtime), RuntimeMinutes(b.Runtime)
			switch {
			case ra < rb:
				return -1
			case ra > rb:
				return 1
			}
			return 0
		})
	}

	return out
}

// Paginate returns the 1-indexed page window. Pages out of range are empty.
func Paginate(movies []model.Movie, page, pageSize int) []model.Movie {
	if page < 1 || pageSize < 1 {
		return []model.Movie{}
	}

	pages := len(movies) / pageSize
	if len(movies)%pageSize != 0 {
		pages++
	}
	if page-1 >= pages {
		return []model.Movie{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(movies))

	return movies[start:end]
}

// Apply runs filter, sort and paginate in order and reports the filtered total.
func Apply(movies []model.Movie, c model.Criteria, sortKey string, page, pageSize int) ([]model.Movie, int) {
	sorted := Sort(Filter(movies, c), sortKey)
	return Paginate(sorted, page, pageSize), len(sorted)
}

// RuntimeMinutes reads the leading number of a runtime such as "148 min".
func RuntimeMinutes(runtime string) float64 {
	s := strings.TrimLeftFunc(runtime, unicode.IsSpace)
	end := 0
	dot := false
	for end < len(s) {
		ch := s[end]
		if ch >= '0' && ch <= '9' {
			end++
			continue
		}
		if ch == '.' && !dot {
			dot = true
			end++
			continue
		}
		if end == 0 && (ch == '-' || ch == '+') {
			end++
			continue
		}
		break
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
