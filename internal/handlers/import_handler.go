package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/importer"
	"bizledger/internal/services"
	"bizledger/internal/uuid"
)

// ImportHandler accepts tabular uploads for one transaction family and
// forwards the parsed rows to bulk-create. The caller must have
// confirmed a target branch; an upload without one is rejected whole.
type ImportHandler struct {
	transactions services.TransactionServicer
	branches     services.BranchServicer
}

// NewImportHandler creates an ImportHandler for one family.
func NewImportHandler(transactions services.TransactionServicer, branches services.BranchServicer) *ImportHandler {
	return &ImportHandler{transactions: transactions, branches: branches}
}

// ImportTransactions handles POST /:email/{family}/import
// @Summary     Import transactions from a file
// @Description Parses a .csv or .xlsx upload (columns: date, product, price, quantity[, total]) and bulk-creates the rows against the confirmed branch
// @Tags        transactions
// @Accept      multipart/form-data
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       branch_id formData string true "Confirmed target branch"
// @Param       file formData file true "CSV or Excel file"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "Branch Not Found"
// @Router      /{email}/transactions/import [post]
func (h *ImportHandler) ImportTransactions(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	branchID := c.PostForm("branch_id")
	if branchID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Branch selection is required"))
		return
	}
	if !uuid.IsValid(branchID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid Branch Id"))
		return
	}

	branch, err := h.branches.GetBranchByID(uid, branchID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "File is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	rows, err := importer.Parse(fileHeader.Filename, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	inputs := make([]services.TransactionInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, services.TransactionInput{
			BranchID: &branch.ID,
			Date:     row.Date,
			Product:  row.Product,
			Price:    row.Price,
			Quantity: row.Quantity,
			Total:    row.Total,
		})
	}

	created, err := h.transactions.BulkCreateTransactions(uid, inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}
