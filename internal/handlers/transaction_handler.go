package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/pagination"
	"bizledger/internal/services"
)

// TransactionHandler handles one transaction resource family. It is
// instantiated three times (generic, sales, purchase) over the same code
// path; only the backing service and the resource label differ.
type TransactionHandler struct {
	transactions services.TransactionServicer
	resource     string
}

// NewTransactionHandler creates a TransactionHandler for one family.
// resource is the label used in error messages ("Transaction",
// "Sales Transaction", "Purchase Transaction").
func NewTransactionHandler(transactions services.TransactionServicer, resource string) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, resource: resource}
}

// transactionRequest is the payload for create, bulk-create and update.
// The id and owner are always server-assigned; a PATCH carries the full
// field set and replaces the row's contents.
type transactionRequest struct {
	CategoryID *string `json:"categoryId" binding:"omitempty,uuid"`
	BranchID   *string `json:"branchId" binding:"omitempty,uuid"`
	Date       string  `json:"date" binding:"required,txdate"`
	Product    string  `json:"product" binding:"required"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	Total      float64 `json:"total"`
}

// toInput converts the wire payload. The float total is handed to the
// service, which normalizes it to the storage decimal precision.
func (r *transactionRequest) toInput() (services.TransactionInput, error) {
	date, err := parseDate(r.Date, "transaction")
	if err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		CategoryID: r.CategoryID,
		BranchID:   r.BranchID,
		Date:       date,
		Product:    r.Product,
		Price:      r.Price,
		Quantity:   r.Quantity,
		Total:      decimal.NewFromFloat(r.Total),
	}, nil
}

// ListTransactions handles GET /:email/{family}
// @Summary     List transactions
// @Description Lists the caller's rows in the requested window (default: trailing 30 days), newest first, with the category name left-joined in
// @Tags        transactions
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       from query string false "Start date (yyyy-MM-dd)"
// @Param       to query string false "End date (yyyy-MM-dd)"
// @Param       categoryId query string false "Filter by category"
// @Param       branchId query string false "Filter by branch"
// @Success     200 {object} map[string]interface{} "data + paging metadata"
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "User Not Found"
// @Router      /{email}/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid pagination parameters"))
		return
	}

	result, err := h.transactions.ListTransactions(uid, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles GET /:email/{family}/:id
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /{email}/transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, h.resource)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.transactions.GetTransactionByID(uid, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

// CreateTransaction handles POST /:email/{family}
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       request body transactionRequest true "Transaction fields"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /{email}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	row, err := h.transactions.CreateTransaction(uid, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": row})
}

// BulkCreateTransactions handles POST /:email/{family}/bulk-create
// @Summary     Bulk-create transactions
// @Description Inserts all rows under the caller's identity in one statement; any invalid row rejects the whole batch
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       request body []transactionRequest true "Transaction rows"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /{email}/transactions/bulk-create [post]
func (h *TransactionHandler) BulkCreateTransactions(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var reqs []transactionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.TransactionInput, 0, len(reqs))
	for _, req := range reqs {
		input, err := req.toInput()
		if err != nil {
			respondWithError(c, err)
			return
		}
		inputs = append(inputs, input)
	}

	rows, err := h.transactions.BulkCreateTransactions(uid, inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": rows})
}

// UpdateTransaction handles PATCH /:email/{family}/:id
// @Summary     Update a transaction
// @Description Replaces the row's fields via a single ownership-scoped statement
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Transaction ID"
// @Param       request body transactionRequest true "Full field set"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /{email}/transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, h.resource)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	row, err := h.transactions.UpdateTransaction(uid, id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}

// DeleteTransaction handles DELETE /:email/{family}/:id
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]interface{} "deleted row"
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /{email}/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, h.resource)
	if err != nil {
		respondWithError(c, err)
		return
	}

	row, err := h.transactions.DeleteTransaction(uid, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}

// BulkDeleteTransactions handles POST /:email/{family}/bulk-delete
// @Summary     Bulk-delete transactions
// @Description Deletes the intersection of the given ids and the caller's rows in one statement and returns only what was removed; foreign ids are silently skipped
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       request body bulkDeleteRequest true "IDs to delete"
// @Success     200 {object} map[string]interface{} "rows actually deleted"
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "User Not Found"
// @Router      /{email}/transactions/bulk-delete [post]
func (h *TransactionHandler) BulkDeleteTransactions(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "ids must be a list of UUIDs"))
		return
	}

	deleted, err := h.transactions.BulkDeleteTransactions(uid, req.IDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deleted})
}
