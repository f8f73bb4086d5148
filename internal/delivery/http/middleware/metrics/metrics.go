package http_metrics_middleware

import (
	"expvar"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
)

// Metrics counts requests and responses and logs one line per request.
type Metrics struct {
	logger *slog.Logger

	requestsReceived       expvar.Int
	responsesSent          expvar.Int
	processingMicroseconds expvar.Int
	responsesByStatus      *expvar.Map
}

type Option func(*Metrics)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Metrics) {
		m.logger = logger
	}
}

func New(opts ...Option) *Metrics {
	m := &Metrics{
		logger:            slog.Default(),
		responsesByStatus: new(expvar.Map).Init(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Publish exposes the counters under name in /debug/vars. Call it once per process.
func (m *Metrics) Publish(name string) {
	expvar.Publish(name, expvar.Func(func() any {
		return m.Snapshot()
	}))
}

func (m *Metrics) Snapshot() map[string]any {
	byStatus := make(map[string]int64)
	m.responsesByStatus.Do(func(kv expvar.KeyValue) {
		if v, ok := kv.Value.(*expvar.Int); ok {
			byStatus[kv.Key] = v.Value()
		}
	})
	return map[string]any{
		"total_requests_received":            m.requestsReceived.Value(),
		"total_responses_sent":               m.responsesSent.Value(),
		"total_processing_time_microseconds": m.processingMicroseconds.Value(),
		"total_responses_sent_by_status":     byStatus,
	}
}

func (m *Metrics) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requestsReceived.Add(1)

		metrics := httpsnoop.CaptureMetrics(next, w, r)

		m.responsesSent.Add(1)
		m.processingMicroseconds.Add(metrics.Duration.Microseconds())
		m.responsesByStatus.Add(strconv.Itoa(metrics.Code), 1)

		m.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", metrics.Code),
			slog.Int64("bytes", metrics.Written),
			slog.Duration("duration", metrics.Duration),
		)
	})
}
