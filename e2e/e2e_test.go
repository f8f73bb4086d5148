//go:build e2e
// +build e2e

package main

import (
	"context"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/require"

	client_api "github.com/rconjoe/flickpicker/internal/client/api"
)

type E2EMovieFlowSuite struct {
	suite.Suite
}

func (s *E2EMovieFlowSuite) TestMovieFlow(t provider.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, run(ctx, client_api.New(baseURL())))
}

func TestE2ESuite(t *testing.T) {
	suite.RunSuite(t, new(E2EMovieFlowSuite))
}
