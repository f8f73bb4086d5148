package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/rconjoe/flickpicker/internal/model"
)

func movieIDArg(cmd *cli.Command) (int64, error) {
	id, err := strconv.ParseInt(cmd.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("a positive movie id is required")
	}
	return id, nil
}

func (r *Runner) Vote(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}
	direction, err := model.ParseVoteType(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	if _, ok := r.store.User(); ok {
		r.loadCatalog(ctx)
	}
	count, err := r.voter.Vote(ctx, id, direction)
	if err != nil {
		return err
	}
	return r.writePlain("movie %d now has %d votes", id, count)
}

func voteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "vote",
		Usage:     "Vote a movie up or down",
		ArgsUsage: "<movie-id> <up|down>",
		Action:    r.with(r.Vote),
	}
}
