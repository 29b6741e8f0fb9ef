package reporter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
	"github.com/prometheus/client_golang/prometheus"
)

// TextReporter writes alerts as human readable blocks.
type TextReporter struct {
	logger          *slog.Logger
	writer          io.Writer
	lock            sync.Mutex
	failuresCounter prometheus.Counter
}

func New(logger *slog.Logger, writer io.Writer, registry *prometheus.Registry) (*TextReporter, error) {
	failuresCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backup_monitor_alert_write_failures_total",
			Help: "Count the number of alerts which could not be written",
		})
	err := registry.Register(failuresCounter)
	if err != nil {
		return nil, err
	}
	return &TextReporter{
		logger:          logger,
		writer:          writer,
		failuresCounter: failuresCounter,
	}, nil
}

func format(alert aggregates.Alert) []byte {
	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "Customer Name: %s\n", alert.CustomerName)
	fmt.Fprintf(&buffer, "App Type: %s\n", alert.AppType)
	for _, window := range alert.Windows {
		fmt.Fprintf(&buffer, "  Time Window: %s\n", window.TimeWindow)
		fmt.Fprintf(&buffer, "  Status: %s\n", window.Status)
	}
	fmt.Fprintf(&buffer, "Sending Email: %s\n", alert.Company.SendingEmail)
	fmt.Fprintf(&buffer, "Receiving Email: %s\n", alert.Company.ReceivingEmail)
	return buffer.Bytes()
}

// Report writes the alert in one write so concurrent reports never interleave.
func (r *TextReporter) Report(alert aggregates.Alert) {
	block := format(alert)
	r.lock.Lock()
	defer r.lock.Unlock()
	_, err := r.writer.Write(block)
	if err != nil {
		r.failuresCounter.Inc()
		r.logger.Error(fmt.Sprintf("fail to report alert for customer %s: %s", alert.CustomerName, err.Error()))
	}
}
