package main

import (
	"context"

	"github.com/urfave/cli/v3"

	client_live "github.com/rconjoe/flickpicker/internal/client/live"
	"github.com/rconjoe/flickpicker/internal/model"
)

// Watch streams catalog events until interrupted.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	r.loadCatalog(ctx)

	sub := client_live.New(r.api.WebsocketURL(), r.store, client_live.WithLogger(r.logger))
	return sub.Run(ctx, func(e model.Event) {
		switch e.Type {
		case model.EventVoteUpdated:
			r.writePlain("movie %d now has %d votes", e.MovieID, e.Votes)
		case model.EventMovieSaved:
			if e.Movie != nil {
				r.writePlain("new movie: %s (%s)", e.Movie.Title, e.Movie.Year)
			}
		case model.EventCatalogSet:
			r.loadCatalog(ctx)
			r.writePlain("movie list replaced, %d movies", len(r.store.Catalog()))
		}
	})
}

func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "watch",
		Usage:  "Follow votes and new movies as they happen",
		Action: r.with(r.Watch),
	}
}
