package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/appclacks/datto-monitor/internal/datto"
	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

type domainOutcome struct {
	saasCustomerID uint64
	alerts         int
	err            error
}

// Run lists the Datto domains and checks the backups of every domain.
// An error is only returned when the domains can't be listed, per-domain
// failures are part of the returned report.
func (s *Service) Run(ctx context.Context) (*aggregates.RunReport, error) {
	start := time.Now()
	report := &aggregates.RunReport{
		ID:        uuid.NewString(),
		StartedAt: start.UTC(),
		Failures:  []aggregates.DomainFailure{},
	}
	logger := s.logger.With("run-id", report.ID)
	ctx, span := s.tracer.Start(ctx, "backup.run")
	defer span.End()
	span.SetAttributes(attribute.String("run.id", report.ID))

	logger.Info(fmt.Sprintf("starting backup check for %d companies", s.companies.Len()))
	domains, err := s.client.ListDomains(ctx)
	if err != nil {
		s.runsCounter.With(map[string]string{"status": "failure"}).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fail to list domains: %w", err)
	}

	ids := []uint64{}
	for _, domain := range domains {
		if domain.SaasCustomerID == nil {
			name := ""
			if domain.SaasCustomerName != nil {
				name = *domain.SaasCustomerName
			}
			logger.Warn(fmt.Sprintf("incomplete domain information, skipping domain %q", name))
			s.skippedCounter.Inc()
			report.Skipped++
			continue
		}
		ids = append(ids, *domain.SaasCustomerID)
	}
	report.Domains = len(ids)

	outcomes := make([]domainOutcome, len(ids))
	var group errgroup.Group
	group.SetLimit(s.concurrency)
	for i, id := range ids {
		group.Go(func() error {
			outcomes[i] = s.processDomain(ctx, logger, id)
			return nil
		})
	}
	// tasks never return an error, failures are carried by the outcomes
	_ = group.Wait()

	for _, outcome := range outcomes {
		report.Alerts += outcome.alerts
		if outcome.err != nil {
			report.Failures = append(report.Failures, aggregates.DomainFailure{
				SaasCustomerID: outcome.saasCustomerID,
				Error:          outcome.err.Error(),
			})
			continue
		}
		report.Succeeded++
	}
	duration := time.Since(start)
	report.Duration = duration.String()
	s.runDuration.Observe(duration.Seconds())
	s.runsCounter.With(map[string]string{"status": "success"}).Inc()
	logger.Info(fmt.Sprintf("backup check done in %s: %d domains checked, %d failed, %d skipped, %d alerts", report.Duration, report.Succeeded, len(report.Failures), report.Skipped, report.Alerts))
	return report, nil
}

func (s *Service) processDomain(ctx context.Context, logger *slog.Logger, saasCustomerID uint64) (outcome domainOutcome) {
	outcome.saasCustomerID = saasCustomerID
	logger = logger.With("saas-customer-id", saasCustomerID)
	ctx, span := s.tracer.Start(ctx, "backup.domain")
	span.SetAttributes(attribute.String("saas.customer.id", strconv.FormatUint(saasCustomerID, 10)))
	defer func() {
		if r := recover(); r != nil {
			outcome.err = fmt.Errorf("panic while checking domain: %v", r)
		}
		if outcome.err != nil {
			span.RecordError(outcome.err)
			span.SetStatus(codes.Error, outcome.err.Error())
			s.domainsCounter.With(map[string]string{"status": "failure"}).Inc()
			logger.Error(fmt.Sprintf("fail to check backups for SaaS customer ID %d: %s", saasCustomerID, outcome.err.Error()))
		} else {
			s.domainsCounter.With(map[string]string{"status": "success"}).Inc()
		}
		span.End()
	}()

	records, err := s.client.ListApplications(ctx, saasCustomerID)
	if err != nil {
		var apiErr *datto.APIError
		if errors.As(err, &apiErr) {
			logger.Error(fmt.Sprintf("error response from server for SaaS customer ID %d: %s", saasCustomerID, apiErr.Body))
		}
		outcome.err = err
		return outcome
	}
	for _, record := range records {
		outcome.alerts += s.evaluateRecord(logger, record)
	}
	return outcome
}

func (s *Service) evaluateRecord(logger *slog.Logger, record aggregates.CustomerRecord) int {
	customerName, company, ok := s.companies.Match(record.CustomerName)
	if !ok {
		logger.Debug(fmt.Sprintf("no company configured for customer %s", customerName))
		return 0
	}
	alerts := 0
	for _, suite := range record.Suites {
		for _, appType := range suite.AppTypes {
			windows, alert := Evaluate(appType.BackupHistory)
			if !alert {
				continue
			}
			s.reporter.Report(aggregates.Alert{
				CustomerName: customerName,
				AppType:      appType.AppType,
				Windows:      windows,
				Company:      company,
			})
			s.alertsCounter.Inc()
			alerts++
		}
	}
	return alerts
}
