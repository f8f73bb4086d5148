package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rconjoe/flickpicker/internal/config"
)

type AppSuite struct {
	suite.Suite

	logger *slog.Logger
}

func (s *AppSuite) BeforeEach(t provider.T) {
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func (s *AppSuite) TestNewCatalogRepository(t provider.T) {
	t.Run("Should open json file catalog with a closer", func(t provider.T) {
		dir, err := os.MkdirTemp("", "flickpicker-app-*")
		require.NoError(t, err)
		defer os.RemoveAll(dir)

		cfg := &config.Config{Catalog: config.Catalog{
			Storage: config.StorageFile,
			File:    filepath.Join(dir, "movieList.json"),
		}}
		repo, closeCatalog, err := newCatalogRepository(context.Background(), cfg, s.logger)
		require.NoError(t, err)
		assert.NotNil(t, repo)
		require.NotNil(t, closeCatalog)
		assert.NoError(t, closeCatalog())
	})

	t.Run("Should fail on unreachable postgres", func(t provider.T) {
		cfg := &config.Config{
			Catalog: config.Catalog{Storage: config.StoragePostgres},
			Postgres: config.Postgres{
				Host:    "127.0.0.1",
				Port:    "1",
				User:    "admin",
				DBName:  "flickpicker",
				SSLMode: "disable",
			},
		}
		repo, closeCatalog, err := newCatalogRepository(context.Background(), cfg, s.logger)
		assert.Error(t, err)
		assert.Nil(t, repo)
		assert.Nil(t, closeCatalog)
	})

	t.Run("Should reject unknown storage", func(t provider.T) {
		cfg := &config.Config{Catalog: config.Catalog{Storage: "s3"}}
		_, _, err := newCatalogRepository(context.Background(), cfg, s.logger)
		assert.ErrorContains(t, err, "unknown catalog storage")
	})
}

func TestAppSuite(t *testing.T) {
	suite.RunSuite(t, new(AppSuite))
}
