package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	client_render "github.com/rconjoe/flickpicker/internal/client/render"
	"github.com/rconjoe/flickpicker/internal/model"
)

func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}
	if _, ok := r.store.User(); !ok {
		return r.playlist.Add(ctx, id, "", "")
	}

	r.loadCatalog(ctx)
	m, ok := r.store.Movie(id)
	if !ok {
		return fmt.Errorf("%w: %d", model.ErrMovieNotFound, id)
	}
	return r.playlist.Add(ctx, m.ID, m.Title, m.ImageURL)
}

func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}
	return r.playlist.Remove(ctx, id)
}

func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	items := r.store.Playlist()
	switch cmd.String("format") {
	case formatTable:
		return client_render.PlaylistTable(r.output, items)
	case formatHTML:
		return client_render.Playlist(r.output, items)
	case formatJSON:
		return r.writeJSON(items)
	}
	return fmt.Errorf("%w: %s", errUnknownFormat, cmd.String("format"))
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Manage your watch list",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a movie to the playlist",
				ArgsUsage: "<movie-id>",
				Action:    r.with(r.PlaylistAdd),
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a movie from the playlist",
				ArgsUsage: "<movie-id>",
				Action:    r.with(r.PlaylistRemove),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Show the playlist",
				Flags:   []cli.Flag{formatFlag()},
				Action:  r.with(r.PlaylistList),
			},
		},
	}
}
