package aggregates

import "time"

type DomainFailure struct {
	SaasCustomerID uint64 `json:"saas-customer-id"`
	Error          string `json:"error"`
}

type RunReport struct {
	ID        string          `json:"id"`
	StartedAt time.Time       `json:"started-at"`
	Duration  string          `json:"duration"`
	Domains   int             `json:"domains"`
	Skipped   int             `json:"skipped"`
	Succeeded int             `json:"succeeded"`
	Failures  []DomainFailure `json:"failures"`
	Alerts    int             `json:"alerts"`
}
