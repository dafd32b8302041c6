package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tictactoe"

// Recorder owns a private prometheus registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	connections    prometheus.Gauge
	rooms          prometheus.Gauge
	messages       *prometheus.CounterVec
	moves          *prometheus.CounterVec
	completedGames *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	rec := &Recorder{
		registry: registry,
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Open websocket connections.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Rooms currently held in memory.",
		}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_messages_total",
			Help:      "Inbound websocket messages by type.",
		}, []string{LabelType}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Move requests by outcome.",
		}, []string{LabelResult}),
		completedGames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Games that reached the completed state, by winner.",
		}, []string{LabelWinner}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "REST requests by method, route and status.",
		}, []string{LabelMethod, LabelPath, LabelStatus}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "REST request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelMethod, LabelPath}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		rec.connections,
		rec.rooms,
		rec.messages,
		rec.moves,
		rec.completedGames,
		rec.requests,
		rec.requestLatency,
	)

	return rec
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) ConnectionOpened() {
	if r == nil {
		return
	}
	r.connections.Inc()
}

func (r *Recorder) ConnectionClosed() {
	if r == nil {
		return
	}
	r.connections.Dec()
}

func (r *Recorder) RoomOpened() {
	if r == nil {
		return
	}
	r.rooms.Inc()
}

func (r *Recorder) RoomClosed() {
	if r == nil {
		return
	}
	r.rooms.Dec()
}

func (r *Recorder) MessageReceived(kind string) {
	if r == nil {
		return
	}
	r.messages.WithLabelValues(kind).Inc()
}

func (r *Recorder) MoveRecorded(result string) {
	if r == nil {
		return
	}
	r.moves.WithLabelValues(result).Inc()
}

func (r *Recorder) GameCompleted(winner string) {
	if r == nil {
		return
	}
	r.completedGames.WithLabelValues(winner).Inc()
}

// RecordHTTPRequest tracks one REST request. path should be the route pattern, not the raw URL.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	method = methodLabel(method)
	r.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.requestLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// methodLabel folds anything outside the standard method set into MethodOther.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return MethodOther
	}
}
