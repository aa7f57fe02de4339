package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store aggregates the Prometheus collectors for the storefront.
type Store struct {
	OrdersPlaced      prometheus.Counter
	CheckoutFailures  *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
	Requests          *prometheus.CounterVec
	LatencyMS         *prometheus.HistogramVec
}

func New(registry prometheus.Registerer) *Store {
	s := &Store{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grocery",
			Name:      "orders_placed_total",
			Help:      "Total number of orders created at checkout.",
		}),
		CheckoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grocery",
			Name:      "checkout_failures_total",
			Help:      "Checkout attempts rejected before order creation.",
		}, []string{"reason"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grocery",
			Name:      "order_status_transitions_total",
			Help:      "Order lifecycle transitions applied.",
		}, []string{"from", "to"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grocery",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "grocery",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
	}

	registry.MustRegister(
		s.OrdersPlaced,
		s.CheckoutFailures,
		s.StatusTransitions,
		s.Requests,
		s.LatencyMS,
	)
	return s
}

// Middleware records request counts and latency per route.
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		s.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		s.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
