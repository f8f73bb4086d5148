// Package client_api talks to the flickpicker REST server.
package client_api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rconjoe/flickpicker/internal/model"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	defaultTimeout = 10 * time.Second
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// StatusError carries a non-2xx response and the server's error body.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrUnexpectedStatus, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Page struct {
	Movies   []model.Movie  `json:"movies"`
	Metadata model.Metadata `json:"metadata"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// WebsocketURL is the event stream endpoint with the scheme switched to ws or wss.
func (c *Client) WebsocketURL() string {
	u := c.baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws"
}

func (c *Client) Movies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.do(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

func (c *Client) Movie(ctx context.Context, id int64) (model.Movie, error) {
	var m model.Movie
	if err := c.do(ctx, http.MethodGet, "/movies/"+strconv.FormatInt(id, 10), nil, &m); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// QueryMovies asks the server to filter, sort and paginate.
func (c *Client) QueryMovies(ctx context.Context, cr model.Criteria, sortKey string, page, pageSize int) (Page, error) {
	q := url.Values{}
	setIf(q, "genre", cr.Genre)
	setIf(q, "year", cr.Year)
	setIf(q, "rating", cr.Rating)
	setIf(q, "sort", sortKey)
	q.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var p Page
	if err := c.do(ctx, http.MethodGet, "/movies?"+q.Encode(), nil, &p); err != nil {
		return Page{}, err
	}
	return p, nil
}

// Search returns an empty slice when the server reports no matches.
func (c *Client) Search(ctx context.Context, query string) ([]model.Movie, error) {
	var movies []model.Movie
	err := c.do(ctx, http.MethodGet, "/search-movies?"+url.Values{"query": {query}}.Encode(), nil, &movies)

	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return []model.Movie{}, nil
	}
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *Client) SaveMovie(ctx context.Context, m model.Movie) (model.Movie, error) {
	var saved model.Movie
	if err := c.do(ctx, http.MethodPost, "/save-movie", m, &saved); err != nil {
		return model.Movie{}, err
	}
	return saved, nil
}

func (c *Client) UpdateVote(ctx context.Context, movieID int64, voteType model.VoteType, userID string) (int, error) {
	req := struct {
		MovieID  int64  `json:"movieId"`
		VoteType string `json:"voteType"`
		UserID   string `json:"userId"`
	}{movieID, string(voteType), userID}

	var resp struct {
		NewVoteCount int `json:"newVoteCount"`
	}
	if err := c.do(ctx, http.MethodPost, "/update-vote", req, &resp); err != nil {
		return 0, err
	}
	return resp.NewVoteCount, nil
}

func (c *Client) ReplaceMovies(ctx context.Context, movies []model.Movie) error {
	return c.do(ctx, http.MethodPost, "/update-movie-list", movies, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			se.Message = eb.Error
			if eb.Message != "" {
				se.Message += ": " + eb.Message
			}
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
