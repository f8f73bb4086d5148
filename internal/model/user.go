package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Settings struct {
	Theme                string `json:"theme" toml:"theme"`
	EmailNotifications   bool   `json:"emailNotifications" toml:"email_notifications"`
	DiscordNotifications bool   `json:"discordNotifications" toml:"discord_notifications"`
	VoteLimit            int    `json:"voteLimit" toml:"vote_limit"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:                "dark",
		EmailNotifications:   true,
		DiscordNotifications: false,
		VoteLimit:            3,
	}
}

// Profile is kept on the local machine per user. Stats are derived from the
// catalog and the playlist when the profile is shown.
type Profile struct {
	Username           string   `json:"username" toml:"username"`
	FavoriteGenres     []string `json:"favoriteGenres" toml:"favorite_genres"`
	PreferredLanguages []string `json:"preferredLanguages" toml:"preferred_languages"`
	SubtitlePreference string   `json:"subtitlePreference" toml:"subtitle_preference"`
	ViewingTime        string   `json:"viewingTime" toml:"viewing_time"`
	NotifyNewMovies    bool     `json:"notifyNewMovies" toml:"notify_new_movies"`
	NotifyVoting       bool     `json:"notifyVoting" toml:"notify_voting"`
	ShareHistory       bool     `json:"shareHistory" toml:"share_history"`
}

type ProfileStats struct {
	MoviesSuggested int `json:"moviesSuggested"`
	PlaylistSize    int `json:"playlistSize"`
}

func DefaultProfile(username string) Profile {
	return Profile{
		Username:           username,
		FavoriteGenres:     []string{},
		PreferredLanguages: []string{},
		SubtitlePreference: "Always",
		ViewingTime:        "Evening (8-11 PM)",
		NotifyNewMovies:    true,
		NotifyVoting:       true,
	}
}
