// Package client_render turns catalog state into markup. Every function is
// pure: the same input always yields the same output.
package client_render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/rconjoe/flickpicker/internal/model"
	"github.com/rconjoe/flickpicker/internal/service/pagination"
)

const (
	FallbackImage = "/path/to/default.jpg"
	NoMoviesText  = "No movies found matching your criteria."
	EmptyListText = "Your playlist is empty"
	dateLayout    = "Jan 2, 2006"
	youtubeEmbed  = "https://www.youtube.com/embed/"
)

type card struct {
	ID          int64
	Title       string
	Alt         string
	Image       string
	Year        string
	Runtime     string
	Rating      string
	Category    string
	RequestedBy string
	Votes       int
	Trailer     string
	SignedIn    bool
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func newCard(m model.Movie, signedIn bool) card {
	return card{
		ID:          m.ID,
		Title:       orDefault(m.Title, "Untitled Movie"),
		Alt:         orDefault(m.Title, "Movie Poster"),
		Image:       orDefault(m.ImageURL, FallbackImage),
		Year:        orDefault(m.Year.String(), "Unknown Year"),
		Runtime:     orDefault(m.Runtime, "Unknown Runtime"),
		Rating:      orDefault(m.Ratings, "Unrated"),
		Category:    orDefault(m.Category, "General"),
		RequestedBy: orDefault(m.RequestedBy.Username, "Unknown User"),
		Votes:       m.VoteCount,
		Trailer:     EmbedURL(m.TrailerLink),
		SignedIn:    signedIn,
	}
}

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"prev": func(p int) int { return p - 1 },
	"next": func(p int) int { return p + 1 },
}).Parse(`
{{- define "movies" -}}
{{- if not .Cards -}}
<div class="col-12 text-center"><p>` + NoMoviesText + `</p></div>
{{- else -}}
{{- range .Cards }}
<div class="col">
  <div class="card h-100" data-movie-id="{{ .ID }}">
    <img src="{{ .Image }}" class="card-img-top" alt="{{ .Alt }}" loading="lazy">
    <div class="card-body">
      <h5 class="card-title">{{ .Title }}</h5>
      <p class="card-text"><small class="text-muted">{{ .Year }} • {{ .Runtime }} • {{ .Rating }}</small></p>
      <p class="card-text">{{ .Category }}</p>
      <p class="card-text"><small class="text-muted">Requested by {{ .RequestedBy }}</small></p>
      {{- if .Trailer }}
      <iframe class="trailer" src="{{ .Trailer }}" allowfullscreen></iframe>
      {{- end }}
    </div>
    <div class="card-footer">
      <button type="button" class="vote-btn" data-vote="up"{{ if not .SignedIn }} disabled{{ end }}><span class="vote-count">{{ .Votes }}</span></button>
      <button type="button" class="add-to-playlist-btn"{{ if not .SignedIn }} disabled{{ end }}>Add to Playlist</button>
    </div>
  </div>
</div>
{{- end }}
{{- end }}
{{- end -}}

{{- define "pagination" -}}
<nav aria-label="Movie pages">
<ul class="pagination">
  <li class="page-item{{ if .PrevDisabled }} disabled{{ end }}"><a class="page-link" data-page="{{ prev .CurrentPage }}">Previous</a></li>
  {{- range .Items }}
  {{- if .Ellipsis }}
  <li class="page-item disabled"><span class="page-link">…</span></li>
  {{- else }}
  <li class="page-item{{ if .Active }} active{{ end }}"><a class="page-link" data-page="{{ .Page }}">{{ .Page }}</a></li>
  {{- end }}
  {{- end }}
  <li class="page-item{{ if .NextDisabled }} disabled{{ end }}"><a class="page-link" data-page="{{ next .CurrentPage }}">Next</a></li>
</ul>
</nav>
{{- end -}}

{{- define "playlist" -}}
{{- if not . -}}
<div class="text-center py-5"><p class="text-muted">` + EmptyListText + `</p></div>
{{- else -}}
<div class="row g-3">
{{- range . }}
  <div class="col-md-6 col-lg-4">
    <div class="card h-100" data-movie-id="{{ .ID }}">
      <img src="{{ .Poster }}" class="card-img-top" alt="{{ .Title }}">
      <div class="card-body">
        <h6 class="card-title">{{ .Title }}</h6>
        <p class="card-text small text-muted">Added {{ .AddedAt.Format "` + dateLayout + `" }}</p>
      </div>
    </div>
  </div>
{{- end }}
</div>
{{- end -}}
{{- end -}}
`))

// Movies renders one card per movie. Vote and playlist buttons are disabled
// unless signedIn.
func Movies(w io.Writer, movies []model.Movie, signedIn bool) error {
	cards := make([]card, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, newCard(m, signedIn))
	}
	return templates.ExecuteTemplate(w, "movies", struct{ Cards []card }{cards})
}

func Pagination(w io.Writer, c pagination.Control) error {
	return templates.ExecuteTemplate(w, "pagination", c)
}

func Playlist(w io.Writer, items []model.PlaylistItem) error {
	return templates.ExecuteTemplate(w, "playlist", items)
}

// Table writes a plain-text listing for terminals.
func Table(w io.Writer, movies []model.Movie) error {
	if len(movies) == 0 {
		_, err := fmt.Fprintln(w, NoMoviesText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tRUNTIME\tRATING\tGENRE\tVOTES")
	for _, m := range movies {
		c := newCard(m, false)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n", c.ID, c.Title, c.Year, c.Runtime, c.Rating, c.Category, c.Votes)
	}
	return tw.Flush()
}

// PlaylistTable writes the playlist as plain text.
func PlaylistTable(w io.Writer, items []model.PlaylistItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, EmptyListText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tADDED")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", it.ID, it.Title, it.AddedAt.Format(dateLayout))
	}
	return tw.Flush()
}

// EmbedURL converts YouTube watch, short and embed links into an embed URL.
// Anything else yields "".
func EmbedURL(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.TrimPrefix(u.Path, "/shorts/")
		}
	}

	id = strings.Split(id, "/")[0]
	if id == "" {
		return ""
	}
	return youtubeEmbed + id
}
