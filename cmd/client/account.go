package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	client_config "github.com/rconjoe/flickpicker/internal/client/config"
	client_notify "github.com/rconjoe/flickpicker/internal/client/notify"
	"github.com/rconjoe/flickpicker/internal/model"
)

func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	user, err := r.session.Login(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		r.notifier.Notify(client_notify.LevelError, "Invalid username or password")
		return err
	}
	r.notifier.Notify(client_notify.LevelSuccess, "Logged in successfully")
	return r.writePlain("signed in as %s (%s)", user.Username, user.Role)
}

func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.notifier.Notify(client_notify.LevelInfo, "Logged out")
	return nil
}

func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.store.User()
	if !ok {
		return r.writePlain("not signed in")
	}
	return r.writePlain("%s (%s)", user.Username, user.Role)
}

// Settings prints the UI settings, saving any flag that was set first.
func (r *Runner) Settings(ctx context.Context, cmd *cli.Command) error {
	settings := r.store.Settings()
	changed := false
	if cmd.IsSet("theme") {
		settings.Theme = cmd.String("theme")
		changed = true
	}
	if cmd.IsSet("email") {
		settings.EmailNotifications = cmd.Bool("email")
		changed = true
	}
	if cmd.IsSet("discord") {
		settings.DiscordNotifications = cmd.Bool("discord")
		changed = true
	}
	if cmd.IsSet("vote-limit") {
		settings.VoteLimit = int(cmd.Int("vote-limit"))
		changed = true
	}

	if changed {
		if err := client_config.SaveSettings(r.config.Path(client_config.SettingsFile), settings); err != nil {
			return err
		}
		r.store.SetSettings(settings)
	}
	return r.writeJSON(r.store.Settings())
}

type profileView struct {
	Profile model.Profile      `json:"profile"`
	Stats   model.ProfileStats `json:"stats"`
}

// Profile prints the signed in user's profile, saving any flag that was set first.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.store.User()
	if !ok {
		r.notifier.Notify(client_notify.LevelWarning, "Please login to view your profile")
		return model.ErrNotAuthenticated
	}

	path := r.config.ProfilePath(user.Username)
	profile, err := client_config.LoadProfile(path, user.Username)
	if err != nil {
		return err
	}

	changed := false
	if cmd.IsSet("genre") {
		profile.FavoriteGenres = cmd.StringSlice("genre")
		changed = true
	}
	if cmd.IsSet("language") {
		profile.PreferredLanguages = cmd.StringSlice("language")
		changed = true
	}
	if cmd.IsSet("subtitles") {
		profile.SubtitlePreference = cmd.String("subtitles")
		changed = true
	}
	if cmd.IsSet("viewing-time") {
		profile.ViewingTime = cmd.String("viewing-time")
		changed = true
	}
	if cmd.IsSet("notify-new-movies") {
		profile.NotifyNewMovies = cmd.Bool("notify-new-movies")
		changed = true
	}
	if cmd.IsSet("notify-voting") {
		profile.NotifyVoting = cmd.Bool("notify-voting")
		changed = true
	}
	if cmd.IsSet("share-history") {
		profile.ShareHistory = cmd.Bool("share-history")
		changed = true
	}

	if changed {
		if err := client_config.SaveProfile(path, profile); err != nil {
			return err
		}
		r.notifier.Notify(client_notify.LevelSuccess, "Profile changes saved successfully")
	}

	r.loadCatalog(ctx)
	stats := model.ProfileStats{PlaylistSize: len(r.store.Playlist())}
	for _, m := range r.store.Catalog() {
		if m.RequestedBy.Username == user.Username {
			stats.MoviesSuggested++
		}
	}
	return r.writeJSON(profileView{Profile: profile, Stats: stats})
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to vote and keep a playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: r.with(r.Login),
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out",
		Action: r.with(r.Logout),
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed in user",
		Action: r.with(r.Whoami),
	}
}

func settingsCommand(r *Runner) *cli.Command {
	defaults := model.DefaultSettings()
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change UI settings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "theme", Usage: "Color theme", Value: defaults.Theme},
			&cli.BoolFlag{Name: "email", Usage: "Email notifications"},
			&cli.BoolFlag{Name: "discord", Usage: "Discord notifications"},
			&cli.IntFlag{Name: "vote-limit", Usage: "Votes per movie night", Value: defaults.VoteLimit},
		},
		Action: r.with(r.Settings),
	}
}

func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show or edit your viewing profile",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "genre", Usage: "Favorite genre, repeatable"},
			&cli.StringSliceFlag{Name: "language", Usage: "Preferred language, repeatable"},
			&cli.StringFlag{Name: "subtitles", Usage: "Subtitle preference"},
			&cli.StringFlag{Name: "viewing-time", Usage: "Preferred viewing time"},
			&cli.BoolFlag{Name: "notify-new-movies", Usage: "Notify when movies are suggested"},
			&cli.BoolFlag{Name: "notify-voting", Usage: "Notify when voting opens"},
			&cli.BoolFlag{Name: "share-history", Usage: "Share watch history"},
		},
		Action: r.with(r.Profile),
	}
}
