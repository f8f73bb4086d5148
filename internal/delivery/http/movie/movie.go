package http_movie

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/rconjoe/flickpicker/internal/delivery/http/common"
	"github.com/rconjoe/flickpicker/internal/model"
	usecase_movie "github.com/rconjoe/flickpicker/internal/usecase/movie"
)

const maxPageSize = 100

type MoviesPageResponseDTO struct {
	Movies   []model.Movie  `json:"movies"`
	Metadata model.Metadata `json:"metadata"`
}

type Controller struct {
	uc *usecase_movie.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_movie.Usecase,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/movies", c.getMovies)
	router.GET("/movies/:id", c.getMovie)
	router.GET("/search-movies", c.searchMovies)
	router.POST("/save-movie", c.saveMovie)
	router.POST("/update-movie-list", c.updateMovieList)
}

// getMovies returns the catalog, optionally filtered, sorted and paged
// @Summary List movies
// @Description Returns every movie. With page set, returns one page and its metadata
// @Tags Movies
// @Produce json
// @Param genre query string false "Genre substring"
// @Param year query string false "Exact year"
// @Param rating query string false "Exact rating"
// @Param sort query string false "title, year or runtime"
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Movies per page"
// @Success 200 {array} model.Movie
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies [get]
func (c *Controller) getMovies(ctx *gin.Context) {
	criteria := model.Criteria{
		Genre:  ctx.Query("genre"),
		Year:   ctx.Query("year"),
		Rating: ctx.Query("rating"),
	}
	sortKey := ctx.Query("sort")

	if ctx.Query("page") == "" {
		movies, err := c.uc.List(ctx.Request.Context(), criteria, sortKey)
		if err != nil {
			c.internalError(ctx, "Failed to load movies", err)
			return
		}
		ctx.JSON(http.StatusOK, movies)
		return
	}

	page, err := positiveQuery(ctx, "page", 0)
	if err != nil {
		c.badRequest(ctx, err)
		return
	}
	pageSize, err := positiveQuery(ctx, "page_size", 0)
	if err != nil || pageSize > maxPageSize {
		c.badRequest(ctx, fmt.Errorf("page_size must be between 1 and %d", maxPageSize))
		return
	}

	result, err := c.uc.Query(ctx.Request.Context(), usecase_movie.Query{
		Criteria: criteria,
		Sort:     sortKey,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		if errors.Is(err, usecase_movie.ErrInvalidInput) {
			c.badRequest(ctx, err)
			return
		}
		c.internalError(ctx, "Failed to load movies", err)
		return
	}

	ctx.JSON(http.StatusOK, MoviesPageResponseDTO{
		Movies:   result.Movies,
		Metadata: result.Metadata,
	})
}

// @Summary Get movie
// @Tags Movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} model.Movie
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/{id} [get]
func (c *Controller) getMovie(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.badRequest(ctx, errors.New("id must be a positive integer"))
		return
	}

	movie, err := c.uc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrMovieNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Error: fmt.Sprintf("Movie %d not found", id),
				Code:  http.StatusNotFound,
			})
			return
		}
		c.internalError(ctx, "Failed to load movie", err)
		return
	}

	ctx.JSON(http.StatusOK, movie)
}

// @Summary Search movies
// @Description Case-insensitive match against title, director and year
// @Tags Movies
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {array} model.Movie
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse "No movie matched"
// @Router /search-movies [get]
func (c *Controller) searchMovies(ctx *gin.Context) {
	query := ctx.Query("query")

	movies, err := c.uc.Search(ctx.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, usecase_movie.ErrNoMatches):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Error: fmt.Sprintf("No movies found matching %q", query),
				Code:  http.StatusNotFound,
			})
		case errors.Is(err, usecase_movie.ErrInvalidInput):
			c.badRequest(ctx, err)
		default:
			c.internalError(ctx, "Failed to search movies", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// @Summary Save movie
// @Description Validates and appends a movie. A zero id is assigned by the server
// @Tags Movies
// @Accept json
// @Produce json
// @Param movie body model.Movie true "Movie"
// @Success 201 {object} model.Movie
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse "Id already taken"
// @Failure 500 {object} http_common.ErrorResponse
// @Router /save-movie [post]
func (c *Controller) saveMovie(ctx *gin.Context) {
	var req model.Movie
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	saved, err := c.uc.Save(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase_movie.ErrInvalidInput):
			c.badRequest(ctx, err)
		case errors.Is(err, model.ErrDuplicateMovie):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Error:   "Movie already exists",
				Message: err.Error(),
				Code:    http.StatusConflict,
			})
		default:
			c.logger.Error("failed to save movie",
				slog.String("error", err.Error()),
				slog.String("title", req.Title),
			)
			c.internalError(ctx, "Failed to save movie", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, saved)
}

// @Summary Replace movie list
// @Tags Movies
// @Accept json
// @Produce json
// @Param movies body []model.Movie true "Whole catalog"
// @Success 200 {object} http_common.MessageResponse
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /update-movie-list [post]
func (c *Controller) updateMovieList(ctx *gin.Context) {
	var movies []model.Movie
	if err := ctx.ShouldBindJSON(&movies); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if err := c.uc.ReplaceAll(ctx.Request.Context(), movies); err != nil {
		if errors.Is(err, usecase_movie.ErrInvalidInput) {
			c.badRequest(ctx, err)
			return
		}
		c.internalError(ctx, "Failed to update movie list", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.MessageResponse{Message: "Movie list updated successfully"})
}

func (c *Controller) badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
		Error:   "Invalid input",
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	})
}

func (c *Controller) internalError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, slog.String("error", err.Error()))
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
		Error:   msg,
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func positiveQuery(ctx *gin.Context, key string, def int) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return v, nil
}
