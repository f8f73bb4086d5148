package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	client_api "github.com/rconjoe/flickpicker/internal/client/api"
	client_notify "github.com/rconjoe/flickpicker/internal/client/notify"
	client_render "github.com/rconjoe/flickpicker/internal/client/render"
	"github.com/rconjoe/flickpicker/internal/model"
	"github.com/rconjoe/flickpicker/internal/service/pagination"
	"github.com/rconjoe/flickpicker/internal/service/pipeline"
)

const (
	formatTable = "table"
	formatHTML  = "html"
	formatJSON  = "json"

	platformCLI = "cli"
)

var errUnknownFormat = errors.New("unknown output format")

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: table, html or json",
		Value:   formatTable,
	}
}

// List filters, sorts and pages the catalog locally, or on the server with --remote.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	size := int(cmd.Int("page-size"))
	if !slices.Contains(pagination.DefaultPageSizes, size) {
		return fmt.Errorf("%w: %d", pagination.ErrUnsupportedPageSize, size)
	}
	criteria := model.Criteria{
		Genre:  cmd.String("genre"),
		Year:   cmd.String("year"),
		Rating: cmd.String("rating"),
	}
	page := int(cmd.Int("page"))

	var result client_api.Page
	if cmd.Bool("remote") {
		var err error
		result, err = r.api.QueryMovies(ctx, criteria, cmd.String("sort"), page, size)
		if err != nil {
			r.notifier.Notify(client_notify.LevelError, "Failed to load movies")
			return fmt.Errorf("failed to query movies: %w", err)
		}
		if result.Movies == nil {
			result.Movies = []model.Movie{}
		}
	} else {
		r.loadCatalog(ctx)
		r.store.SetQuery(criteria, cmd.String("sort"))
		view := r.store.View()

		pager := pagination.NewPager(size)
		pager.SetTotalItems(len(view))
		if page != 1 && !pager.Goto(page) {
			return fmt.Errorf("page %d out of range (%d pages)", page, pager.TotalPages())
		}
		result = client_api.Page{
			Movies: pipeline.Paginate(view, pager.Page(), pager.PageSize()),
			Metadata: model.Metadata{
				CurrentPage:  pager.Page(),
				PageSize:     pager.PageSize(),
				TotalPages:   pager.TotalPages(),
				TotalRecords: len(view),
			},
		}
	}

	return r.renderPage(cmd.String("format"), result)
}

func (r *Runner) renderPage(format string, p client_api.Page) error {
	meta := p.Metadata
	switch format {
	case formatTable:
		if err := client_render.Table(r.output, p.Movies); err != nil {
			return err
		}
		if meta.TotalRecords > 0 {
			return r.writePlain("\npage %d of %d (%d movies)", meta.CurrentPage, meta.TotalPages, meta.TotalRecords)
		}
		return nil
	case formatHTML:
		_, signedIn := r.store.User()
		if err := client_render.Movies(r.output, p.Movies, signedIn); err != nil {
			return err
		}
		return client_render.Pagination(r.output, pagination.Window(meta.TotalRecords, meta.PageSize, meta.CurrentPage))
	case formatJSON:
		return r.writeJSON(p)
	}
	return fmt.Errorf("%w: %s", errUnknownFormat, format)
}

// Show prints one movie as the server has it.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	m, err := r.api.Movie(ctx, id)
	if err != nil {
		var se *client_api.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return fmt.Errorf("%w: %d", model.ErrMovieNotFound, id)
		}
		return fmt.Errorf("failed to load movie: %w", err)
	}
	r.store.UpsertMovie(m)

	if cmd.String("format") == formatJSON {
		return r.writeJSON(m)
	}
	return client_render.Table(r.output, []model.Movie{m})
}

func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	movies, err := r.api.Search(ctx, query)
	if err != nil {
		r.notifier.Notify(client_notify.LevelError, "Failed to search movies")
		return fmt.Errorf("failed to search movies: %w", err)
	}

	if cmd.String("format") == formatJSON {
		return r.writeJSON(movies)
	}
	return client_render.Table(r.output, movies)
}

// Add saves a movie on the server, or queues it for the next sync when the
// server cannot be reached or --offline is set.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.store.User()
	if !ok {
		r.notifier.Notify(client_notify.LevelWarning, "Please login to add movies")
		return model.ErrNotAuthenticated
	}

	m := model.Movie{
		Title:       strings.TrimSpace(cmd.String("title")),
		Year:        model.Year(strings.TrimSpace(cmd.String("year"))),
		Category:    cmd.String("category"),
		Runtime:     cmd.String("runtime"),
		Ratings:     cmd.String("rating"),
		TrailerLink: cmd.String("trailer"),
		MovieLink:   cmd.String("link"),
		ImageURL:    cmd.String("image"),
		Language:    cmd.String("language"),
		Subtitles:   cmd.Bool("subtitles"),
		RequestedBy: model.RequestedBy{
			UserID:   user.Username,
			Username: user.Username,
			Platform: platformCLI,
		},
	}
	if m.Title == model.EmptyTitle || !m.Year.IsNumeric() {
		return fmt.Errorf("title and a numeric year are required")
	}

	if !cmd.Bool("offline") {
		saved, err := r.api.SaveMovie(ctx, m)
		if err == nil {
			r.store.UpsertMovie(saved)
			r.notifier.Notify(client_notify.LevelSuccess, "Movie added")
			return r.writePlain("added %q (id %d)", saved.Title, saved.ID)
		}

		var se *client_api.StatusError
		if errors.As(err, &se) {
			r.notifier.Notify(client_notify.LevelError, "Failed to add movie")
			return fmt.Errorf("failed to save movie: %w", err)
		}
		r.logger.Warn("server unreachable, queueing movie")
	}

	queued, err := r.syncer.Queue(ctx, m)
	if err != nil {
		return err
	}
	r.notifier.Notify(client_notify.LevelInfo, "Movie saved offline, run sync to upload it")
	return r.writePlain("queued %q (id %d)", queued.Title, queued.ID)
}

func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	res, err := r.syncer.Sync(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("synced %d, failed %d", res.Synced, res.Failed)
}

// Replace overwrites the server catalog with the contents of a JSON file.
func (r *Runner) Replace(ctx context.Context, cmd *cli.Command) error {
	if !r.session.IsAuthorized(model.RoleAdmin) {
		r.notifier.Notify(client_notify.LevelWarning, "Only admins can replace the movie list")
		return model.ErrNotAuthenticated
	}

	data, err := os.ReadFile(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read movie list: %w", err)
	}
	var movies []model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return fmt.Errorf("failed to parse movie list: %w", err)
	}

	if err := r.api.ReplaceMovies(ctx, movies); err != nil {
		r.notifier.Notify(client_notify.LevelError, "Failed to update movie list")
		return err
	}
	r.store.SetCatalog(movies)
	r.notifier.Notify(client_notify.LevelSuccess, "Movie list updated successfully")
	return r.writePlain("replaced catalog with %d movies", len(movies))
}

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List movies with optional filters, sorting and paging",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genre substring, case-insensitive"},
			&cli.StringFlag{Name: "year", Aliases: []string{"y"}, Usage: "Exact release year"},
			&cli.StringFlag{Name: "rating", Aliases: []string{"r"}, Usage: "Exact rating label"},
			&cli.StringFlag{Name: "sort", Aliases: []string{"s"}, Usage: "Sort by title, year or runtime"},
			&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Usage: "Page number", Value: 1},
			&cli.IntFlag{Name: "page-size", Usage: "Movies per page: 1, 5, 10 or 15", Value: pagination.DefaultPageSize},
			&cli.BoolFlag{Name: "remote", Usage: "Filter, sort and page on the server"},
			formatFlag(),
		},
		Action: r.with(r.List),
	}
}

func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one movie from the server",
		ArgsUsage: "<movie-id>",
		Flags:     []cli.Flag{formatFlag()},
		Action:    r.with(r.Show),
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search titles, directors and years on the server",
		ArgsUsage: "<query>",
		Flags:     []cli.Flag{formatFlag()},
		Action:    r.with(r.Search),
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Suggest a movie for movie night",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Movie title", Required: true},
			&cli.StringFlag{Name: "year", Usage: "Release year", Required: true},
			&cli.StringFlag{Name: "category", Usage: "Genre"},
			&cli.StringFlag{Name: "runtime", Usage: "Runtime, e.g. \"148 min\""},
			&cli.StringFlag{Name: "rating", Usage: "Rating label"},
			&cli.StringFlag{Name: "trailer", Usage: "Trailer URL"},
			&cli.StringFlag{Name: "link", Usage: "Movie URL"},
			&cli.StringFlag{Name: "image", Usage: "Poster URL"},
			&cli.StringFlag{Name: "language", Usage: "Spoken language"},
			&cli.BoolFlag{Name: "subtitles", Usage: "Subtitles available"},
			&cli.BoolFlag{Name: "offline", Usage: "Queue the movie without contacting the server"},
		},
		Action: r.with(r.Add),
	}
}

func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Upload movies queued while offline",
		Action: r.with(r.Sync),
	}
}

func replaceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "replace",
		Usage: "Replace the server movie list (admin only)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "JSON array of movies", Required: true},
		},
		Action: r.with(r.Replace),
	}
}
