package backup

import (
	"strings"

	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
)

// Companies is an immutable list of configured companies, safe to share
// between goroutines.
type Companies struct {
	list []aggregates.Company
}

func NewCompanies(companies []aggregates.Company) *Companies {
	list := make([]aggregates.Company, len(companies))
	copy(list, companies)
	return &Companies{list: list}
}

func (c *Companies) Len() int {
	return len(c.list)
}

// Match uppercases the customer name and returns the first company whose
// name is contained in it. The company name is used as configured.
func (c *Companies) Match(customerName string) (string, aggregates.Company, bool) {
	normalized := strings.ToUpper(customerName)
	for _, company := range c.list {
		if strings.Contains(normalized, company.Name) {
			return normalized, company, true
		}
	}
	return normalized, aggregates.Company{}, false
}
