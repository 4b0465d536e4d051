// Package metrics はPrometheus形式のメトリクス収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute はルーティングに一致しなかったリクエストのrouteラベル。
const unmatchedRoute = "unmatched"

// Metrics はサービスが公開するメトリクス一式。
// テストごとに独立させるため、グローバルレジストリは使用しない。
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal はHTTPリクエスト数（method, route, status別）。
	RequestsTotal *prometheus.CounterVec
	// RequestDuration はHTTPリクエストの処理時間（秒）。
	RequestDuration *prometheus.HistogramVec
	// ScoresSubmitted は台帳に追記されたスコア数。
	ScoresSubmitted prometheus.Counter
	// ScoresRejected は所有者不一致で拒否されたスコア送信数。
	ScoresRejected prometheus.Counter
	// TokensIssued はログイン成功により発行されたトークン数。
	TokensIssued prometheus.Counter
}

// New は指定した名前空間でメトリクスを生成し、専用レジストリに登録する。
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ScoresSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_submitted_total",
			Help:      "Number of high scores appended to the ledger.",
		}),
		ScoresRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_rejected_total",
			Help:      "Number of high score submissions rejected for identity mismatch.",
		}),
		TokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Number of tokens issued by successful logins.",
		}),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ScoresSubmitted,
		m.ScoresRejected,
		m.TokensIssued,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Register は追加のコレクターをレジストリに登録する。
func (m *Metrics) Register(c prometheus.Collector) error {
	return m.registry.Register(c)
}

// Instrument はリクエスト数と処理時間を記録するGinミドルウェアを返す。
// routeラベルにはパスそのものではなくルート定義を使い、ラベルの爆発を防ぐ。
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler はレジストリの内容をPrometheus形式で返すHTTPハンドラを返す。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
