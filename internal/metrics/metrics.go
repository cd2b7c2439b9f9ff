// Package metrics exposes Prometheus collectors for the ledger API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "condo_ledger"

// Label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	KindPayment = "payment"
	KindExpense = "expense"
)

var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	LedgerRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_records_total",
		Help:      "Ledger records created by kind.",
	}, []string{"kind"})

	Reports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_total",
		Help:      "Spreadsheet exports by result.",
	}, []string{"result"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

func ObserveLogin(ok bool)  { LoginAttempts.WithLabelValues(result(ok)).Inc() }
func ObserveReport(ok bool) { Reports.WithLabelValues(result(ok)).Inc() }
func ObserveRecord(kind string) {
	LedgerRecords.WithLabelValues(kind).Inc()
}

// Middleware records request latency keyed by the matched route template so
// that path parameters do not explode label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
