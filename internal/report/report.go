// Package report aggregates transaction listings into summaries and CSV
// exports. It consumes only the transaction store's query interface, the
// same surface an external document renderer would use.
package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/models"
	"bizledger/internal/pagination"
	"bizledger/internal/services"
)

// fetchPageSize bounds each listing call while draining all pages.
const fetchPageSize = 500

// CategoryTotal is one per-category line of a summary. Uncategorized
// rows are grouped under an empty name.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// Summary aggregates a filtered listing. Totals are summed in decimal so
// no binary floating-point error accumulates across rows.
type Summary struct {
	Count      int             `json:"count"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// Generator produces summaries and exports for one transaction family.
type Generator struct {
	transactions services.TransactionServicer
}

// NewGenerator creates a Generator over the given transaction store.
func NewGenerator(transactions services.TransactionServicer) *Generator {
	return &Generator{transactions: transactions}
}

// collect drains every page of the filtered listing.
func (g *Generator) collect(userID string, filter services.TransactionFilter) ([]models.TransactionView, error) {
	var all []models.TransactionView
	for page := 1; ; page++ {
		req := pagination.PageRequest{Page: page, PageSize: fetchPageSize}
		res, err := g.transactions.ListTransactions(userID, filter, req)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Data...)
		if page >= res.TotalPages {
			break
		}
	}
	return all, nil
}

// Summarize aggregates the filtered listing into totals and a
// per-category breakdown sorted by descending total.
func (g *Generator) Summarize(userID string, filter services.TransactionFilter) (*Summary, error) {
	views, err := g.collect(userID, filter)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Total: decimal.Zero, ByCategory: []CategoryTotal{}}
	byCategory := make(map[string]*CategoryTotal)

	for _, v := range views {
		summary.Count++
		summary.Quantity += v.Quantity
		summary.Total = summary.Total.Add(v.Total)

		name := ""
		if v.Category != nil {
			name = *v.Category
		}
		ct, ok := byCategory[name]
		if !ok {
			ct = &CategoryTotal{Category: name, Total: decimal.Zero}
			byCategory[name] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(v.Total)
	}

	for _, ct := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *ct)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})

	return summary, nil
}

// WriteCSV streams the filtered listing as CSV. Decimal totals are
// rendered as fixed-point text, never through float64.
func (g *Generator) WriteCSV(w io.Writer, userID string, filter services.TransactionFilter) error {
	views, err := g.collect(userID, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "product", "category", "price", "quantity", "total"}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, v := range views {
		category := ""
		if v.Category != nil {
			category = *v.Category
		}
		record := []string{
			v.ID,
			v.Date.Format("2006-01-02"),
			v.Product,
			category,
			strconv.FormatFloat(v.Price, 'f', -1, 64),
			strconv.Itoa(v.Quantity),
			v.Total.String(),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
