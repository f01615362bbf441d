package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/internal/report"
)

// ReportHandler serves summaries and CSV exports for one transaction
// family, built entirely on the store's query interface.
type ReportHandler struct {
	generator *report.Generator
	filename  string
}

// NewReportHandler creates a ReportHandler. filename names the CSV
// attachment, e.g. "sales-transactions.csv".
func NewReportHandler(generator *report.Generator, filename string) *ReportHandler {
	return &ReportHandler{generator: generator, filename: filename}
}

// Summary handles GET /:email/{family}/summary
// @Summary     Summarize transactions
// @Description Aggregates the filtered listing into decimal totals and a per-category breakdown
// @Tags        reports
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       from query string false "Start date (yyyy-MM-dd)"
// @Param       to query string false "End date (yyyy-MM-dd)"
// @Param       categoryId query string false "Filter by category"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /{email}/transactions/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.generator.Summarize(uid, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// Export handles GET /:email/{family}/export
// @Summary     Export transactions as CSV
// @Tags        reports
// @Produce     text/csv
// @Param       email path string true "Owner email"
// @Param       from query string false "Start date (yyyy-MM-dd)"
// @Param       to query string false "End date (yyyy-MM-dd)"
// @Param       categoryId query string false "Filter by category"
// @Success     200 {string} string "CSV payload"
// @Failure     400 {object} ErrorResponse
// @Router      /{email}/transactions/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Buffer the document so a mid-export failure still yields a clean
	// JSON error instead of a truncated CSV with an envelope appended.
	var buf bytes.Buffer
	if err := h.generator.WriteCSV(&buf, uid, filter); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
