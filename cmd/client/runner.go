package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis"
	"github.com/urfave/cli/v3"

	client_api "github.com/rconjoe/flickpicker/internal/client/api"
	client_config "github.com/rconjoe/flickpicker/internal/client/config"
	client_loader "github.com/rconjoe/flickpicker/internal/client/loader"
	client_notify "github.com/rconjoe/flickpicker/internal/client/notify"
	client_playlist "github.com/rconjoe/flickpicker/internal/client/playlist"
	client_session "github.com/rconjoe/flickpicker/internal/client/session"
	client_storage "github.com/rconjoe/flickpicker/internal/client/storage"
	client_store "github.com/rconjoe/flickpicker/internal/client/store"
	client_sync "github.com/rconjoe/flickpicker/internal/client/sync"
	client_vote "github.com/rconjoe/flickpicker/internal/client/vote"
	infra_redis_cache "github.com/rconjoe/flickpicker/internal/infra/redis/cache"
	infra_redis_init "github.com/rconjoe/flickpicker/internal/infra/redis/init"
	infra_sqlite_records "github.com/rconjoe/flickpicker/internal/infra/sqlite/records"
)

const (
	localFile   = "local.json"
	sessionFile = "session.json"
	cookieFile  = "cookies.json"
	recordsFile = "records.db"

	cacheNamespace = "flickpicker"
	cacheTTL       = 24 * time.Hour
)

// Runner holds the client components and provides one method per command.
type Runner struct {
	config     *client_config.Config
	envPath    string
	httpClient *http.Client
	logger     *slog.Logger
	output     io.Writer
	notifier   client_notify.Notifier

	api      *client_api.Client
	store    *client_store.Store
	loader   *client_loader.Loader
	session  *client_session.Manager
	voter    *client_vote.Voter
	playlist *client_playlist.Manager
	syncer   *client_sync.Syncer
	records  *infra_sqlite_records.Store
	redis    *redis.Client
	opened   bool
}

// RunnerOpts contains configuration options for creating a Runner. A nil
// Config is read from the environment when the first command runs.
type RunnerOpts struct {
	Config     *client_config.Config
	HTTPClient *http.Client
	Logger     *slog.Logger
	Output     io.Writer
	Notifier   client_notify.Notifier
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Notifier == nil {
		opts.Notifier = client_notify.NewLogNotifier(opts.Logger)
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		notifier:   opts.Notifier,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		listCommand, showCommand, searchCommand, addCommand, syncCommand, voteCommand,
		loginCommand, logoutCommand, whoamiCommand, playlistCommand,
		replaceCommand, settingsCommand, profileCommand, watchCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// with opens the local stores before running action.
func (r *Runner) with(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := r.open(ctx); err != nil {
			return err
		}
		return action(ctx, cmd)
	}
}

func (r *Runner) open(ctx context.Context) error {
	if r.opened {
		return nil
	}

	if r.config == nil {
		cfg, err := client_config.Load(r.envPath)
		if err != nil {
			return err
		}
		r.config = cfg
	}
	if err := os.MkdirAll(r.config.Home, 0o755); err != nil {
		return fmt.Errorf("failed to create client home: %w", err)
	}

	db, err := infra_sqlite_records.Open(r.config.Path(recordsFile))
	if err != nil {
		return err
	}
	r.records = infra_sqlite_records.New(db)
	if err := r.records.EnsureSchema(ctx); err != nil {
		r.records.Close()
		return err
	}

	local := client_storage.NewFileKV(r.config.Path(localFile))
	sessionKV := client_storage.NewFileKV(r.config.Path(sessionFile))
	cookie := client_storage.NewCookieKV(client_storage.NewFileKV(r.config.Path(cookieFile)))

	localSource := client_loader.NewKVSource("local", local)
	recordSource := client_loader.NewRecordSource(r.records)
	mirrors := []client_loader.Writer{localSource, recordSource}
	fallbacks := []client_loader.Reader{
		localSource,
		client_loader.NewKVSource("session", sessionKV),
		recordSource,
		client_loader.NewKVSource("cookie", cookie),
	}
	if r.config.Redis.Enabled {
		client, err := infra_redis_init.EstablishConn(r.config.Redis.Options)
		if err != nil {
			r.logger.Warn("cache storage unavailable", slog.String("error", err.Error()))
		} else {
			r.redis = client
			cache := client_loader.NewKVSource("cache", infra_redis_cache.New(client, cacheNamespace, cacheTTL))
			mirrors = append(mirrors, cache)
			fallbacks = append(fallbacks, cache)
		}
	}

	r.api = client_api.New(r.config.Server, client_api.WithHTTPClient(r.httpClient))
	r.store = client_store.New()
	r.loader = client_loader.New(r.api,
		client_loader.WithLogger(r.logger),
		client_loader.WithMirrors(mirrors...),
		client_loader.WithFallbacks(fallbacks...))

	settings, err := client_config.LoadSettings(r.config.Path(client_config.SettingsFile))
	if err != nil {
		r.logger.Warn("using default settings", slog.String("error", err.Error()))
	}
	r.store.SetSettings(settings)

	r.session, err = client_session.New(r.store, client_session.Storage{
		Local:   local,
		Session: sessionKV,
		Cookie:  cookie,
	}, client_session.WithLogger(r.logger))
	if err != nil {
		return err
	}
	if _, _, err := r.session.Restore(ctx); err != nil {
		r.logger.Warn("failed to restore session", slog.String("error", err.Error()))
	}

	r.playlist = client_playlist.New(r.store, local, r.notifier, client_playlist.WithLogger(r.logger))
	if _, err := r.playlist.Load(ctx); err != nil {
		r.logger.Warn("failed to restore playlist", slog.String("error", err.Error()))
	}

	r.voter = client_vote.New(r.store, r.api, r.notifier, client_vote.WithLogger(r.logger))
	r.syncer = client_sync.New(r.records, r.api, client_sync.WithLogger(r.logger))

	r.opened = true
	return nil
}

// loadCatalog fills the store. An unavailable catalog leaves it empty.
func (r *Runner) loadCatalog(ctx context.Context) {
	movies, err := r.loader.LoadCatalog(ctx)
	if err != nil {
		r.notifier.Notify(client_notify.LevelWarning, "Movie catalog is unavailable")
	}
	r.store.SetCatalog(movies)
}

func (r *Runner) Close() error {
	var errs []error
	if r.redis != nil {
		errs = append(errs, r.redis.Close())
	}
	if r.records != nil {
		errs = append(errs, r.records.Close())
	}
	r.opened = false
	return errors.Join(errs...)
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := fmt.Fprintln(r.output, string(output)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
