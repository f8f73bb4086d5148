package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rconjoe/flickpicker/internal/app"
	"github.com/rconjoe/flickpicker/internal/config"
)

// @title flickpicker API
// @version 1.0
// @description Movie night catalog, search and voting.
// @BasePath /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	if err := app.Go(config.Load(), logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
