package datto

import (
	"context"

	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
)

type domain struct {
	SaasCustomerID   *uint64 `json:"saasCustomerId"`
	SaasCustomerName *string `json:"saasCustomerName"`
}

func (c *Client) ListDomains(ctx context.Context) ([]aggregates.Domain, error) {
	domains := []domain{}
	err := c.get(ctx, "/v1/saas/domains", &domains)
	if err != nil {
		return nil, err
	}
	result := make([]aggregates.Domain, 0, len(domains))
	for _, d := range domains {
		result = append(result, aggregates.Domain{
			SaasCustomerID:   d.SaasCustomerID,
			SaasCustomerName: d.SaasCustomerName,
		})
	}
	return result, nil
}
