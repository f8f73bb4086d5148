package model

import "errors"

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrDuplicateMovie   = errors.New("movie already exists")
	ErrNotAuthenticated = errors.New("login required")
)
