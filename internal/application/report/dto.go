package report

import (
	"github.com/okayo/invoicing/internal/domain/report"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
)

// StatisticsQuery selects the period of the statistics. A zero Year means
// the current year; a nil Month means the whole year.
type StatisticsQuery struct {
	Year  int
	Month *int
}

// StatisticsResponse represents invoice statistics over a period
type StatisticsResponse struct {
	Year         int    `json:"annee"`
	Month        *int   `json:"mois,omitempty"`
	InvoiceCount int64  `json:"nombre_factures"`
	TotalExclTax string `json:"total_ht"`
	TotalInclTax string `json:"total_ttc"`
	AverageTotal string `json:"moyenne_ttc"`
}

// TopClientResponse represents one entry of the client ranking
type TopClientResponse struct {
	ClientID     int64  `json:"id_client"`
	Name         string `json:"nom"`
	Code         string `json:"code_client"`
	InvoiceCount int64  `json:"nombre_factures"`
	Revenue      string `json:"chiffre_affaires"`
}

// Export is a generated spreadsheet ready to be served
type Export struct {
	Filename string
	Data     []byte
}

// ToStatisticsResponse converts domain statistics to a response
func ToStatisticsResponse(s report.InvoiceStatistics) StatisticsResponse {
	return StatisticsResponse{
		Year:         s.Year,
		Month:        s.Month,
		InvoiceCount: s.InvoiceCount,
		TotalExclTax: valueobject.FormatAmount(s.TotalExclTax),
		TotalInclTax: valueobject.FormatAmount(s.TotalInclTax),
		AverageTotal: valueobject.FormatAmount(s.AverageTotal),
	}
}

// ToTopClientResponse converts a ranked client to a response
func ToTopClientResponse(c report.TopClient) TopClientResponse {
	return TopClientResponse{
		ClientID:     c.ClientID,
		Name:         c.Name,
		Code:         c.Code,
		InvoiceCount: c.InvoiceCount,
		Revenue:      valueobject.FormatAmount(c.Revenue),
	}
}
