package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/models"
	"bizledger/internal/pagination"
)

// totalPrecision is the number of fractional digits kept when persisting
// monetary totals; it matches the numeric(20,4) column.
const totalPrecision = 4

// defaultWindowDays is the trailing listing window applied when the
// caller supplies no explicit date range.
const defaultWindowDays = 30

// transactionView is the left-joined listing projection.
const transactionView = "t.id, categories.name AS category, t.category_id, t.branch_id, t.date, t.product, t.price, t.quantity, t.total"

// transactionService implements TransactionServicer against one of the
// three structurally identical transaction tables. All mutating
// operations compute their target-row set as an ownership-filtered
// subquery and mutate exactly that set in a single atomic statement, so
// no statement can ever touch a row whose owner differs from the caller,
// regardless of interleaving.
type transactionService struct {
	db       *gorm.DB
	table    string
	notFound *apperrors.AppError
}

// NewTransactionService creates a TransactionServicer backed by the given
// table. notFound is the family-specific sentinel returned when a row is
// absent or owned by someone else.
func NewTransactionService(db *gorm.DB, table string, notFound *apperrors.AppError) TransactionServicer {
	return &transactionService{db: db, table: table, notFound: notFound}
}

// ownedRows is the target-set subquery: the ids for which both the row
// identifier and the ownership predicate hold.
func (s *transactionService) ownedRows(userID, transactionID string) *gorm.DB {
	return s.db.Table(s.table).Select("id").Where("id = ? AND user_id = ?", transactionID, userID)
}

// window resolves the date range; both bounds default independently to
// the trailing 30 days ending now.
func (f TransactionFilter) window() (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, 0, -defaultWindowDays)
	to := now
	if f.FromDate != nil {
		from = *f.FromDate
	}
	if f.ToDate != nil {
		to = *f.ToDate
	}
	return from, to
}

// ListTransactions retrieves a paginated, filtered listing with each
// row's category name joined in. The join is a LEFT JOIN: a transaction
// without a category still appears, with a null category name.
func (s *transactionService) ListTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionView], error) {
	page.Defaults()
	from, to := filter.window()

	base := s.db.Table(s.table + " AS t").
		Where("t.user_id = ?", userID).
		Where("t.date >= ? AND t.date <= ?", from, to)
	if filter.CategoryID != nil {
		base = base.Where("t.category_id = ?", *filter.CategoryID)
	}
	if filter.BranchID != nil {
		base = base.Where("t.branch_id = ?", *filter.BranchID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var views []models.TransactionView
	if err := base.Select(transactionView).
		Joins("LEFT JOIN categories ON categories.id = t.category_id").
		Order("t.date DESC").
		Scopes(pagination.Paginate(page)).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(views, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves one transaction view for a specific user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.TransactionView, error) {
	var view models.TransactionView
	res := s.db.Table(s.table+" AS t").
		Select(transactionView).
		Joins("LEFT JOIN categories ON categories.id = t.category_id").
		Where("t.id = ? AND t.user_id = ?", transactionID, userID).
		Limit(1).
		Scan(&view)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.notFound
	}
	return &view, nil
}

// newRow validates caller-supplied fields and normalizes the monetary
// total to the column's fixed precision, so storage never sees a binary
// float.
func (s *transactionService) newRow(userID string, input TransactionInput) (*models.Transaction, error) {
	if input.Product == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Product is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be greater than zero")
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date is required")
	}

	return &models.Transaction{
		UserID:     userID,
		CategoryID: input.CategoryID,
		BranchID:   input.BranchID,
		Date:       input.Date,
		Product:    input.Product,
		Price:      input.Price,
		Quantity:   input.Quantity,
		Total:      input.Total.Round(totalPrecision),
	}, nil
}

// CreateTransaction inserts one row under the caller's user ID.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	row, err := s.newRow(userID, input)
	if err != nil {
		return nil, err
	}
	if err := s.db.Table(s.table).Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// BulkCreateTransactions inserts all rows in one multi-row statement.
// Every row is normalized and assigned the same owner; any invalid row
// rejects the whole batch before anything is written.
func (s *transactionService) BulkCreateTransactions(userID string, inputs []TransactionInput) ([]models.Transaction, error) {
	if len(inputs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "At least one transaction is required")
	}

	rows := make([]models.Transaction, 0, len(inputs))
	for _, input := range inputs {
		row, err := s.newRow(userID, input)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}

	if err := s.db.Table(s.table).Create(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// UpdateTransaction replaces a row's fields via the scoped-update
// pattern: UPDATE ... WHERE id IN (SELECT id FROM t WHERE id = ? AND
// user_id = ?) RETURNING *. The ownership check and the mutation are one
// statement, so there is no read-modify-write window.
func (s *transactionService) UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error) {
	row, err := s.newRow(userID, input)
	if err != nil {
		return nil, err
	}

	var updated models.Transaction
	res := s.db.Model(&updated).Table(s.table).
		Clauses(clause.Returning{}).
		Where("id IN (?)", s.ownedRows(userID, transactionID)).
		Updates(map[string]interface{}{
			"category_id": row.CategoryID,
			"branch_id":   row.BranchID,
			"date":        row.Date,
			"product":     row.Product,
			"price":       row.Price,
			"quantity":    row.Quantity,
			"total":       row.Total,
		})
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.notFound
	}
	return &updated, nil
}

// DeleteTransaction removes a row via the same scoped pattern and
// returns what was removed.
func (s *transactionService) DeleteTransaction(userID, transactionID string) (*models.Transaction, error) {
	var deleted models.Transaction
	res := s.db.Table(s.table).
		Clauses(clause.Returning{}).
		Where("id IN (?)", s.ownedRows(userID, transactionID)).
		Delete(&deleted)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.notFound
	}
	return &deleted, nil
}

// BulkDeleteTransactions deletes the caller-owned subset of ids in one
// statement and returns only the rows actually removed. Ids that are
// missing or owned by someone else are silently dropped from the
// result, never reported as an error.
func (s *transactionService) BulkDeleteTransactions(userID string, ids []string) ([]models.Transaction, error) {
	if len(ids) == 0 {
		return []models.Transaction{}, nil
	}

	owned := s.db.Table(s.table).Select("id").Where("user_id = ? AND id IN ?", userID, ids)

	var deleted []models.Transaction
	res := s.db.Table(s.table).
		Clauses(clause.Returning{}).
		Where("id IN (?)", owned).
		Delete(&deleted)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if deleted == nil {
		deleted = []models.Transaction{}
	}
	return deleted, nil
}
