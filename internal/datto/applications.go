package datto

import (
	"context"
	"fmt"

	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
)

type applicationsResponse struct {
	Items []item `json:"items"`
}

type item struct {
	CustomerName string  `json:"customerName"`
	Suites       []suite `json:"suites"`
}

type suite struct {
	AppTypes []appType `json:"appTypes"`
}

type appType struct {
	AppType       string          `json:"appType"`
	BackupHistory []backupHistory `json:"backupHistory"`
}

type backupHistory struct {
	TimeWindow string `json:"timeWindow"`
	Status     string `json:"status"`
}

func toCustomerRecord(i item) aggregates.CustomerRecord {
	record := aggregates.CustomerRecord{
		CustomerName: i.CustomerName,
		Suites:       make([]aggregates.Suite, 0, len(i.Suites)),
	}
	for _, s := range i.Suites {
		appTypes := make([]aggregates.AppType, 0, len(s.AppTypes))
		for _, a := range s.AppTypes {
			history := make([]aggregates.BackupWindowStatus, 0, len(a.BackupHistory))
			for _, h := range a.BackupHistory {
				history = append(history, aggregates.BackupWindowStatus{
					TimeWindow: aggregates.TimeWindow(h.TimeWindow),
					Status:     h.Status,
				})
			}
			appTypes = append(appTypes, aggregates.AppType{
				AppType:       a.AppType,
				BackupHistory: history,
			})
		}
		record.Suites = append(record.Suites, aggregates.Suite{AppTypes: appTypes})
	}
	return record
}

func (c *Client) ListApplications(ctx context.Context, saasCustomerID uint64) ([]aggregates.CustomerRecord, error) {
	var response applicationsResponse
	err := c.get(ctx, fmt.Sprintf("/v1/saas/%d/applications", saasCustomerID), &response)
	if err != nil {
		return nil, err
	}
	result := make([]aggregates.CustomerRecord, 0, len(response.Items))
	for _, i := range response.Items {
		result = append(result, toCustomerRecord(i))
	}
	return result, nil
}
