// Command e2e runs a smoke flow against a running flickpicker server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	client_api "github.com/rconjoe/flickpicker/internal/client/api"
	"github.com/rconjoe/flickpicker/internal/model"
)

func baseURL() string {
	switch os.Getenv("ENV") {
	case "CI":
		return "http://flickpicker-app:3000"
	}
	if url := os.Getenv("FLICKPICKER_SERVER"); url != "" {
		return url
	}
	return client_api.DefaultBaseURL
}

func main() {
	fmt.Println("Starting E2E flow for flickpicker API...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, client_api.New(baseURL())); err != nil {
		fmt.Printf("E2E flow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("All E2E checks passed!")
}

func run(ctx context.Context, api *client_api.Client) error {
	if !waitForService(ctx, api) {
		return fmt.Errorf("service at %s did not come up", api.BaseURL())
	}

	saved, err := api.SaveMovie(ctx, model.Movie{
		Title:       fmt.Sprintf("E2E %d", time.Now().UnixNano()),
		Year:        "2024",
		Category:    "Test",
		RequestedBy: model.RequestedBy{Username: "e2e", Platform: "e2e"},
	})
	if err != nil {
		return fmt.Errorf("save movie: %w", err)
	}
	fmt.Printf("Movie created. ID: %d\n", saved.ID)

	count, err := api.UpdateVote(ctx, saved.ID, model.VoteUp, "e2e")
	if err != nil {
		return fmt.Errorf("vote: %w", err)
	}
	if count != 1 {
		return fmt.Errorf("vote: expected 1 vote, got %d", count)
	}

	found, err := api.Search(ctx, saved.Title)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(found) == 0 {
		return fmt.Errorf("search: %q not found", saved.Title)
	}

	movies, err := api.Movies(ctx)
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	fmt.Printf("Retrieved %d movies\n", len(movies))
	return nil
}

func waitForService(ctx context.Context, api *client_api.Client) bool {
	for attempt := 0; attempt < 30; attempt++ {
		if _, err := api.Movies(ctx); err == nil {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Second):
		}
	}
	return false
}
