package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	LabelTheme      = "theme"
	LabelDifficulty = "difficulty"
	LabelResult     = "result"
)

// Recorder collects game metrics on its own Prometheus registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	reg *prometheus.Registry

	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
	picks             *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	finalScore        prometheus.Histogram
	savedScores       *prometheus.CounterVec
}

// NewRecorder registers the game collectors and the Go runtime collector on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memory_sessions_started_total",
			Help: "Sessions started, by theme and difficulty.",
		}, []string{LabelTheme, LabelDifficulty}),
		sessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memory_sessions_completed_total",
			Help: "Boards cleared, by theme and difficulty.",
		}, []string{LabelTheme, LabelDifficulty}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memory_picks_total",
			Help: "Card picks by outcome.",
		}, []string{LabelResult}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memory_active_sessions",
			Help: "Sessions currently running.",
		}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "memory_final_score",
			Help:    "Score at board completion.",
			Buckets: prometheus.ExponentialBuckets(100, 2, 8),
		}),
		savedScores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memory_scores_saved_total",
			Help: "Score writes by outcome.",
		}, []string{LabelResult}),
	}
	r.reg.MustRegister(
		r.sessionsStarted,
		r.sessionsCompleted,
		r.picks,
		r.activeSessions,
		r.finalScore,
		r.savedScores,
		collectors.NewGoCollector(),
	)
	return r
}

// SessionStarted counts a dealt session.
func (r *Recorder) SessionStarted(theme, difficulty string) {
	if r == nil {
		return
	}
	r.sessionsStarted.WithLabelValues(theme, difficulty).Inc()
}

// SessionCompleted counts a finished board and observes its final score.
func (r *Recorder) SessionCompleted(theme, difficulty string, score int) {
	if r == nil {
		return
	}
	r.sessionsCompleted.WithLabelValues(theme, difficulty).Inc()
	r.finalScore.Observe(float64(score))
}

// Pick counts a pick by its result.
func (r *Recorder) Pick(result string) {
	if r == nil {
		return
	}
	r.picks.WithLabelValues(result).Inc()
}

// SetActiveSessions reports how many sessions are running.
func (r *Recorder) SetActiveSessions(n int) {
	if r == nil {
		return
	}
	r.activeSessions.Set(float64(n))
}

// ScoreSaved counts a score write; err marks a failed one.
func (r *Recorder) ScoreSaved(err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.savedScores.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
