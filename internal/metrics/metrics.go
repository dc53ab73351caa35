// Package metrics exports session and match counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tomz197/pong/internal/match"
)

// Metrics holds the collectors. It implements the client stats hooks.
type Metrics struct {
	SessionsActive  prometheus.Gauge
	SessionsTotal   prometheus.Counter
	MatchesStarted  *prometheus.CounterVec
	PointsScored    *prometheus.CounterVec
	MatchesFinished *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pong_sessions_active",
			Help: "Connected sessions",
		}),
		SessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pong_sessions_total",
			Help: "Sessions accepted since start",
		}),
		MatchesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pong_matches_started_total",
				Help: "Matches started, by opponent",
			},
			[]string{"opponent"},
		),
		PointsScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pong_points_total",
				Help: "Points scored, by opponent",
			},
			[]string{"opponent"},
		),
		MatchesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pong_matches_finished_total",
				Help: "Matches played to the end, by opponent and winner",
			},
			[]string{"opponent", "winner"},
		),
	}
	reg.MustRegister(m.SessionsActive, m.SessionsTotal, m.MatchesStarted, m.PointsScored, m.MatchesFinished)
	return m
}

// SessionOpened counts a new connection.
func (m *Metrics) SessionOpened() {
	m.SessionsTotal.Inc()
}

// SetPlayers records the current number of connected sessions.
func (m *Metrics) SetPlayers(n int) {
	m.SessionsActive.Set(float64(n))
}

func (m *Metrics) MatchStarted(opponent match.OpponentMode) {
	m.MatchesStarted.WithLabelValues(opponent.String()).Inc()
}

func (m *Metrics) PointScored(opponent match.OpponentMode) {
	m.PointsScored.WithLabelValues(opponent.String()).Inc()
}

func (m *Metrics) MatchFinished(opponent match.OpponentMode, winner string) {
	m.MatchesFinished.WithLabelValues(opponent.String(), winnerSide(winner)).Inc()
}

// winnerSide keeps the label set closed: the display name is mapped to the
// paddle that won.
func winnerSide(winner string) string {
	if winner == match.LabelPlayer1 {
		return "player1"
	}
	return "player2"
}

// NewRouter serves g on /metrics and a liveness probe on /healthz.
func NewRouter(g prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}
