package backup

import (
	"context"
	"log/slog"

	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultConcurrency = 10

type Client interface {
	ListDomains(ctx context.Context) ([]aggregates.Domain, error)
	ListApplications(ctx context.Context, saasCustomerID uint64) ([]aggregates.CustomerRecord, error)
}

type Reporter interface {
	Report(alert aggregates.Alert)
}

type Configuration struct {
	Concurrency int    `validate:"gte=0"`
	Interval    string
	RunTimeout  string `yaml:"run-timeout"`
}

type Service struct {
	logger         *slog.Logger
	client         Client
	reporter       Reporter
	companies      *Companies
	concurrency    int
	tracer         trace.Tracer
	runsCounter    *prometheus.CounterVec
	domainsCounter *prometheus.CounterVec
	alertsCounter  prometheus.Counter
	skippedCounter prometheus.Counter
	runDuration    prometheus.Histogram
}

func New(logger *slog.Logger, client Client, reporter Reporter, companies *Companies, concurrency int, registry *prometheus.Registry) (*Service, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	runsCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_monitor_runs_total",
			Help: "Count the number of backup monitoring runs",
		},
		[]string{"status"})
	domainsCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_monitor_domain_fetches_total",
			Help: "Count the number of per-domain application fetches",
		},
		[]string{"status"})
	alertsCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backup_monitor_alerts_total",
			Help: "Count the number of alerts raised",
		})
	skippedCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backup_monitor_skipped_domains_total",
			Help: "Count the number of domains skipped because of missing information",
		})
	runDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "backup_monitor_run_duration_seconds",
			Help:    "Time to execute a backup monitoring run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		})
	for _, collector := range []prometheus.Collector{runsCounter, domainsCounter, alertsCounter, skippedCounter, runDuration} {
		err := registry.Register(collector)
		if err != nil {
			return nil, err
		}
	}
	return &Service{
		logger:         logger,
		client:         client,
		reporter:       reporter,
		companies:      companies,
		concurrency:    concurrency,
		tracer:         otel.Tracer("github.com/appclacks/datto-monitor/pkg/backup"),
		runsCounter:    runsCounter,
		domainsCounter: domainsCounter,
		alertsCounter:  alertsCounter,
		skippedCounter: skippedCounter,
		runDuration:    runDuration,
	}, nil
}
