package http_metrics_middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type MetricsSuite struct {
	suite.Suite
}

func (s *MetricsSuite) TestWrap(t provider.T) {
	m := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/movies", "/movies", "/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap["total_requests_received"])
	assert.Equal(t, int64(3), snap["total_responses_sent"])
	assert.Equal(t, map[string]int64{"200": 2, "404": 1}, snap["total_responses_sent_by_status"])
}

func TestMetricsSuite(t *testing.T) {
	suite.RunSuite(t, new(MetricsSuite))
}
