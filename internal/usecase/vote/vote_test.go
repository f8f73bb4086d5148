package usecase_vote

import (
	"context"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/rconjoe/flickpicker/internal/model"
	mocks_publisher "github.com/rconjoe/flickpicker/mocks/publisher"
	mocks "github.com/rconjoe/flickpicker/mocks/repository"
)

type UsecaseVoteUnitSuite struct {
	suite.Suite

	mockRepo      *mocks.VoteRepository
	mockPublisher *mocks_publisher.Publisher
	usecase       *Usecase
	ctx           context.Context
}

func (s *UsecaseVoteUnitSuite) BeforeEach(t provider.T) {
	s.mockRepo = mocks.NewVoteRepository(t)
	s.mockPublisher = mocks_publisher.NewPublisher(t)
	s.usecase = New(s.mockRepo, s.mockPublisher)
	s.ctx = context.Background()
}

func (s *UsecaseVoteUnitSuite) TestVote(t provider.T) {
	t.Run("Should upvote and broadcast", func(t provider.T) {
		s.mockRepo.On("AddVotes", s.ctx, int64(1), 1).Return(4, nil).Once()
		s.mockPublisher.On("Publish", model.Event{
			Type:    model.EventVoteUpdated,
			MovieID: 1,
			Votes:   4,
		}).Once()

		count, err := s.usecase.Vote(s.ctx, model.Vote{MovieID: 1, Type: model.VoteUp})

		assert.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("Should downvote", func(t provider.T) {
		s.mockRepo.On("AddVotes", s.ctx, int64(2), -1).Return(0, nil).Once()
		s.mockPublisher.On("Publish", model.Event{
			Type:    model.EventVoteUpdated,
			MovieID: 2,
		}).Once()

		count, err := s.usecase.Vote(s.ctx, model.Vote{MovieID: 2, Type: model.VoteDown})

		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Should reject unknown vote type", func(t provider.T) {
		_, err := s.usecase.Vote(s.ctx, model.Vote{MovieID: 1, Type: "sideways"})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, model.ErrInvalidVoteType)
	})

	t.Run("Should reject missing movie id", func(t provider.T) {
		_, err := s.usecase.Vote(s.ctx, model.Vote{Type: model.VoteUp})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Should return error when repository fails", func(t provider.T) {
		s.mockRepo.On("AddVotes", s.ctx, int64(9), 1).Return(0, model.ErrMovieNotFound).Once()

		_, err := s.usecase.Vote(s.ctx, model.Vote{MovieID: 9, Type: model.VoteUp})

		assert.ErrorIs(t, err, ErrUnableToSaveVote)
		assert.ErrorIs(t, err, model.ErrMovieNotFound)
	})
}

func TestUsecaseVoteUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
