package usecase_vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/rconjoe/flickpicker/internal/model"
)

var (
	ErrUnableToSaveVote = errors.New("unable to vote")
	ErrInvalidInput     = errors.New("invalid input")
)

type VoteRepository interface {
	AddVotes(ctx context.Context, ID int64, delta int) (int, error)
}

type Publisher interface {
	Publish(e model.Event)
}

type Usecase struct {
	voteRepository VoteRepository
	publisher      Publisher
}

func New(
	r VoteRepository,
	p Publisher,
) *Usecase {
	return &Usecase{
		voteRepository: r,
		publisher:      p,
	}
}

// Vote applies one up or down vote and returns the stored total. The
// repository computes the total, so concurrent voters are serialized there.
func (u *Usecase) Vote(ctx context.Context, v model.Vote) (int, error) {
	if v.MovieID == 0 {
		return 0, fmt.Errorf("%w: movie id is required", ErrInvalidInput)
	}
	if _, err := model.ParseVoteType(string(v.Type)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	count, err := u.voteRepository.AddVotes(ctx, v.MovieID, v.Type.Delta())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnableToSaveVote, err)
	}

	if u.publisher != nil {
		u.publisher.Publish(model.Event{
			Type:    model.EventVoteUpdated,
			MovieID: v.MovieID,
			Votes:   count,
		})
	}
	return count, nil
}
