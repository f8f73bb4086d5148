package model

import "errors"

var ErrInvalidVoteType = errors.New("vote type must be up or down")

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func ParseVoteType(s string) (VoteType, error) {
	switch VoteType(s) {
	case VoteUp, VoteDown:
		return VoteType(s), nil
	}
	return "", ErrInvalidVoteType
}

// Delta is the change a vote applies to a movie's count.
func (v VoteType) Delta() int {
	if v == VoteDown {
		return -1
	}
	return 1
}

type Vote struct {
	MovieID int64
	Type    VoteType
	UserID  string
}
