package http_vote

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/rconjoe/flickpicker/internal/delivery/http/common"
	"github.com/rconjoe/flickpicker/internal/model"
	usecase_vote "github.com/rconjoe/flickpicker/internal/usecase/vote"
)

type VoteRequestDTO struct {
	MovieID  int64  `json:"movieId" binding:"required"`
	VoteType string `json:"voteType" binding:"required"`
	UserID   string `json:"userId"`
}

type VoteResponseDTO struct {
	NewVoteCount int `json:"newVoteCount"`
}

type Controller struct {
	uc *usecase_vote.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_vote.Usecase,
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
	router.POST("/update-vote", c.updateVote)
}

// @Summary Vote on a movie
// @Tags Votes
// @Accept json
// @Produce json
// @Param vote body VoteRequestDTO true "Vote"
// @Success 200 {object} VoteResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /update-vote [post]
func (c *Controller) updateVote(ctx *gin.Context) {
	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	count, err := c.uc.Vote(ctx.Request.Context(), model.Vote{
		MovieID: req.MovieID,
		Type:    model.VoteType(req.VoteType),
		UserID:  req.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase_vote.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Invalid vote",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		case errors.Is(err, model.ErrMovieNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Error: "Movie not found",
				Code:  http.StatusNotFound,
			})
		default:
			c.logger.Error("failed to update vote",
				slog.String("error", err.Error()),
				slog.Int64("movie_id", req.MovieID),
			)
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "Failed to update vote",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{NewVoteCount: count})
}
