package log

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const RequestIDHeader = "X-Request-Id"

var (
	httpRequestsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geoconv",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "The latency of the HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"api", "route", "method"})

	httpRequestsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoconv",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of the HTTP requests.",
	}, []string{"api", "route", "method", "code"})
)

type LoggerConfig struct {
	Name      string
	DoMetrics bool
	// LogErrorsOnly logs successful requests at debug level.
	LogErrorsOnly bool
}

// NewFiberLogger logs every request, tags it with a request id and optionally collects metrics.
func NewFiberLogger(conf *LoggerConfig) fiber.Handler {
	if conf == nil {
		conf = &LoggerConfig{Name: "http"}
	}

	logger := slog.Default().With(slog.String("logger", conf.Name))

	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(RequestIDHeader, reqID)
		c.Locals("request_id", reqID)

		chainErr := c.Next()
		wt := time.Since(start)

		if chainErr != nil {
			// let the error handler set the status before we read it
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()

		if conf.DoMetrics {
			metrics(conf.Name, c, status, wt)
		}

		l := logger.With(slog.String("request_id", reqID))
		if chainErr != nil {
			l = l.With(slog.Any("error", chainErr))
		}

		attrs := []any{
			slog.String("client", c.IP()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Int64("ms", wt.Milliseconds()),
		}

		msg := strconv.Itoa(status) + " " + c.Method() + " " + c.OriginalURL()

		switch {
		case status >= 500:
			l.Error(msg, attrs...)
		case status >= 400:
			l.Warn(msg, attrs...)
		case conf.LogErrorsOnly:
			l.Debug(msg, attrs...)
		default:
			l.Info(msg, attrs...)
		}

		return nil
	}
}

func metrics(api string, c *fiber.Ctx, status int, t time.Duration) {
	route := c.Route().Path
	method := c.Method()

	httpRequestsDuration.With(prometheus.Labels{"api": api, "route": route, "method": method}).Observe(t.Seconds())

	httpRequestsCount.With(prometheus.Labels{
		"api":    api,
		"route":  route,
		"method": method,
		"code":   strconv.Itoa(status),
	}).Inc()
}
