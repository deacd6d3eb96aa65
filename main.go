package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	stdout "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/staybook/booking-service/catalog"
	"github.com/staybook/booking-service/config"
	"github.com/staybook/booking-service/services"
	"github.com/staybook/booking-service/store"
	"github.com/staybook/booking-service/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Error loading .env file")
	}

	cfg := config.Load()
	utils.InitValidator()

	// Setup logging.
	logger := log.NewLogfmtLogger(os.Stderr)
	httpLogger := log.With(logger, "service", "http", "component", "booking")

	// Set up OTLP tracing (stdout for debug).
	exporter, err := stdout.New(stdout.WithPrettyPrint())
	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	// Setup metrics.
	reg := prometheus.NewRegistry()
	requestsTotal := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "path", "code"})
	requestDuration := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Histogram of HTTP request handling time.",
		Buckets: []float64{
			0.001, 0.01, 0.1, 0.3, 0.6, 1, 3, 6, 9, 20, 30, 60, 90, 120,
		},
	}, []string{"method", "path"})

	// Setup metric for panic recoveries.
	panicsTotal := promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "http_req_panics_recovered_total",
		Help: "Total number of HTTP requests recovered from internal panic.",
	})

	properties, err := catalog.Load(log.With(logger, "component", "catalog"), cfg.CatalogPath, cfg.SearchCacheTTL)
	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
	bookings, err := store.New(log.With(logger, "component", "store"), properties, cfg.ExtraGuestFee, cfg.SnapshotPath)
	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
	server := services.NewServer(httpLogger, bookings, properties)

	observe := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if p := recover(); p != nil {
					panicsTotal.Inc()
					level.Error(httpLogger).
						Log("msg", "recovered from panic", "panic", p, "stack", debug.Stack())
					http.Error(ww, "internal error", http.StatusInternalServerError)
				}
				path := r.URL.Path
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					path = rctx.RoutePattern()
				}
				requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
				requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			}()
			next.ServeHTTP(ww, r)
		})
	}

	apiSrv := &http.Server{Handler: server.Router(observe)}

	g := &run.Group{}
	g.Add(func() error {
		l, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
		if err != nil {
			return err
		}
		level.Info(logger).Log("msg", "starting HTTP server", "addr", l.Addr().String())
		return apiSrv.Serve(l)
	}, func(err error) {
		if err := apiSrv.Close(); err != nil {
			level.Error(logger).Log("msg", "failed to stop HTTP server", "err", err)
		}
	})

	metricsSrv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.MetricsPort)}
	g.Add(func() error {
		m := http.NewServeMux()
		// Create HTTP handler for Prometheus metrics.
		m.Handle("/metrics", promhttp.HandlerFor(
			reg,
			promhttp.HandlerOpts{
				// Opt into OpenMetrics e.g. to support exemplars.
				EnableOpenMetrics: true,
			},
		))
		metricsSrv.Handler = m
		level.Info(logger).Log("msg", "starting metrics server", "addr", metricsSrv.Addr)
		return metricsSrv.ListenAndServe()
	}, func(error) {
		if err := metricsSrv.Close(); err != nil {
			level.Error(logger).Log("msg", "failed to stop metrics server", "err", err)
		}
	})

	g.Add(run.SignalHandler(context.Background(), syscall.SIGINT, syscall.SIGTERM))

	if err := g.Run(); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}
