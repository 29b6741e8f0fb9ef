package backup_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/appclacks/datto-monitor/internal/datto"
	mocks "github.com/appclacks/datto-monitor/mocks/github.com/appclacks/datto-monitor/pkg/backup"
	"github.com/appclacks/datto-monitor/pkg/backup"
	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var acme = aggregates.Company{
	Name:           "ACME",
	SendingEmail:   "alerts@acme.com",
	ReceivingEmail: "ops@acme.com",
}

func id(value uint64) *uint64 {
	return &value
}

func name(value string) *string {
	return &value
}

func failingHistory() []aggregates.BackupWindowStatus {
	return []aggregates.BackupWindowStatus{
		window(aggregates.Between0dAnd1d, "Failed"),
		window(aggregates.Between1dAnd2d, "Failed"),
		window(aggregates.Between2dAnd3d, "Failed"),
		window("Between3dAnd7d", "Perfect"),
	}
}

func customer(customerName string, appType string, history []aggregates.BackupWindowStatus) aggregates.CustomerRecord {
	return aggregates.CustomerRecord{
		CustomerName: customerName,
		Suites: []aggregates.Suite{
			{
				AppTypes: []aggregates.AppType{
					{AppType: appType, BackupHistory: history},
				},
			},
		},
	}
}

func newService(t *testing.T, client backup.Client, reporter backup.Reporter, concurrency int) (*backup.Service, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	service, err := backup.New(slog.Default(), client, reporter, backup.NewCompanies([]aggregates.Company{acme}), concurrency, registry)
	assert.NoError(t, err)
	return service, registry
}

func TestRunReportsAlert(t *testing.T) {
	client := mocks.NewMockClient(t)
	reporter := mocks.NewMockReporter(t)
	service, registry := newService(t, client, reporter, 2)

	client.On("ListDomains", mock.Anything).Return([]aggregates.Domain{{SaasCustomerID: id(1)}}, nil)
	client.On("ListApplications", mock.Anything, uint64(1)).Return([]aggregates.CustomerRecord{
		customer("Acme Corp", "Exchange", failingHistory()),
		customer("Acme Corp", "OneDrive", []aggregates.BackupWindowStatus{
			window(aggregates.Between0dAnd1d, "Failed"),
			window(aggregates.Between1dAnd2d, "Failed"),
		}),
		customer("Initech", "Exchange", failingHistory()),
	}, nil)
	reporter.On("Report", aggregates.Alert{
		CustomerName: "ACME CORP",
		AppType:      "Exchange",
		Windows:      failingHistory()[:3],
		Company:      acme,
	}).Once()

	report, err := service.Run(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 1, report.Domains)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Alerts)
	assert.Empty(t, report.Failures)

	expected := `
# HELP backup_monitor_alerts_total Count the number of alerts raised
# TYPE backup_monitor_alerts_total counter
backup_monitor_alerts_total 1
# HELP backup_monitor_runs_total Count the number of backup monitoring runs
# TYPE backup_monitor_runs_total counter
backup_monitor_runs_total{status="success"} 1
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected), "backup_monitor_alerts_total", "backup_monitor_runs_total")
	assert.NoError(t, err)
}

func TestRunSkipsDomainsWithoutID(t *testing.T) {
	client := mocks.NewMockClient(t)
	reporter := mocks.NewMockReporter(t)
	service, registry := newService(t, client, reporter, 2)

	client.On("ListDomains", mock.Anything).Return([]aggregates.Domain{
		{SaasCustomerName: name("broken")},
		{SaasCustomerID: id(1)},
		{},
		{SaasCustomerID: id(2)},
	}, nil)
	client.On("ListApplications", mock.Anything, uint64(1)).Return([]aggregates.CustomerRecord{}, nil).Once()
	client.On("ListApplications", mock.Anything, uint64(2)).Return([]aggregates.CustomerRecord{}, nil).Once()

	report, err := service.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 2, report.Domains)
	assert.Equal(t, 2, report.Succeeded)
	client.AssertNumberOfCalls(t, "ListApplications", 2)

	expected := `
# HELP backup_monitor_skipped_domains_total Count the number of domains skipped because of missing information
# TYPE backup_monitor_skipped_domains_total counter
backup_monitor_skipped_domains_total 2
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected), "backup_monitor_skipped_domains_total")
	assert.NoError(t, err)
}

func TestRunDomainListingFailure(t *testing.T) {
	client := mocks.NewMockClient(t)
	reporter := mocks.NewMockReporter(t)
	service, registry := newService(t, client, reporter, 2)

	client.On("ListDomains", mock.Anything).Return(nil, &datto.APIError{StatusCode: 500, Body: "internal error"})

	report, err := service.Run(context.Background())
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "fail to list domains")
	assert.ErrorContains(t, err, "internal error")
	client.AssertNotCalled(t, "ListApplications", mock.Anything, mock.Anything)

	expected := `
# HELP backup_monitor_runs_total Count the number of backup monitoring runs
# TYPE backup_monitor_runs_total counter
backup_monitor_runs_total{status="failure"} 1
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected), "backup_monitor_runs_total")
	assert.NoError(t, err)
}

func TestRunDomainFailuresDoNotAbortSiblings(t *testing.T) {
	client := mocks.NewMockClient(t)
	reporter := mocks.NewMockReporter(t)
	service, registry := newService(t, client, reporter, 2)

	client.On("ListDomains", mock.Anything).Return([]aggregates.Domain{
		{SaasCustomerID: id(1)},
		{SaasCustomerID: id(2)},
		{SaasCustomerID: id(3)},
		{SaasCustomerID: id(4)},
	}, nil)
	client.On("ListApplications", mock.Anything, uint64(1)).Return(nil, &datto.APIError{StatusCode: 403, Body: "forbidden"})
	client.On("ListApplications", mock.Anything, uint64(2)).Return(nil, errors.New("connection reset by peer"))
	client.On("ListApplications", mock.Anything, uint64(3)).Return(func(ctx context.Context, saasCustomerID uint64) ([]aggregates.CustomerRecord, error) {
		panic("unexpected payload")
	}, nil)
	client.On("ListApplications", mock.Anything, uint64(4)).Return([]aggregates.CustomerRecord{
		customer("ACME", "SharePoint", failingHistory()),
	}, nil)
	reporter.On("Report", mock.MatchedBy(func(alert aggregates.Alert) bool {
		return alert.CustomerName == "ACME" && alert.AppType == "SharePoint" && len(alert.Windows) == 3
	})).Once()

	report, err := service.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 4, report.Domains)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Alerts)
	assert.Len(t, report.Failures, 3)
	failures := map[uint64]string{}
	for _, failure := range report.Failures {
		failures[failure.SaasCustomerID] = failure.Error
	}
	assert.Contains(t, failures[1], "forbidden")
	assert.Contains(t, failures[2], "connection reset by peer")
	assert.Contains(t, failures[3], "panic while checking domain: unexpected payload")

	expected := `
# HELP backup_monitor_domain_fetches_total Count the number of per-domain application fetches
# TYPE backup_monitor_domain_fetches_total counter
backup_monitor_domain_fetches_total{status="failure"} 3
backup_monitor_domain_fetches_total{status="success"} 1
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected), "backup_monitor_domain_fetches_total")
	assert.NoError(t, err)
}

type slowClient struct {
	domains int
	current atomic.Int64
	peak    atomic.Int64
	lock    sync.Mutex
	fetched []uint64
}

func (c *slowClient) ListDomains(ctx context.Context) ([]aggregates.Domain, error) {
	result := []aggregates.Domain{}
	for i := 0; i < c.domains; i++ {
		result = append(result, aggregates.Domain{SaasCustomerID: id(uint64(i))})
	}
	return result, nil
}

func (c *slowClient) ListApplications(ctx context.Context, saasCustomerID uint64) ([]aggregates.CustomerRecord, error) {
	current := c.current.Add(1)
	defer c.current.Add(-1)
	for {
		peak := c.peak.Load()
		if current <= peak || c.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	c.lock.Lock()
	c.fetched = append(c.fetched, saasCustomerID)
	c.lock.Unlock()
	return []aggregates.CustomerRecord{}, nil
}

func TestRunBoundedConcurrency(t *testing.T) {
	client := &slowClient{domains: 20}
	reporter := mocks.NewMockReporter(t)
	service, _ := newService(t, client, reporter, 3)

	report, err := service.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 20, report.Succeeded)
	assert.Len(t, client.fetched, 20)
	assert.LessOrEqual(t, client.peak.Load(), int64(3))
	assert.Greater(t, client.peak.Load(), int64(0))
}

func TestNewRegistersMetricsOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	companies := backup.NewCompanies([]aggregates.Company{acme})
	_, err := backup.New(slog.Default(), &slowClient{}, mocks.NewMockReporter(t), companies, 0, registry)
	assert.NoError(t, err)
	_, err = backup.New(slog.Default(), &slowClient{}, mocks.NewMockReporter(t), companies, 0, registry)
	assert.Error(t, err)
}
