package services

import (
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/models"
	"bizledger/internal/pagination"
)

// UserServicer defines the contract for identity resolution. Every
// request resolves the caller's email to a user row exactly once, at the
// boundary, and passes the resolved ID into the stores.
type UserServicer interface {
	GetUserByEmail(email string) (*models.User, error)
	SyncUser(email, name string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	CreateCategory(userID, name string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) (*models.Category, error)
	BulkDeleteCategories(userID string, ids []string) ([]models.Category, error)
}

// BranchServicer defines the contract for branch-related business logic.
type BranchServicer interface {
	ListBranches(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Branch], error)
	GetBranchByID(userID, branchID string) (*models.Branch, error)
	CreateBranch(userID, name string) (*models.Branch, error)
	UpdateBranch(userID, branchID, name string) (*models.Branch, error)
	DeleteBranch(userID, branchID string) (*models.Branch, error)
	BulkDeleteBranches(userID string, ids []string) ([]models.Branch, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
	BranchID   *string
}

// TransactionInput carries the caller-supplied fields of one transaction
// row. ID and user ID are always server-assigned.
type TransactionInput struct {
	CategoryID *string
	BranchID   *string
	Date       time.Time
	Product    string
	Price      float64
	Quantity   int
	Total      decimal.Decimal
}

// TransactionServicer defines the contract shared by the three
// transaction resource families (generic, sales, purchase). The families
// are structurally identical and differ only in backing table.
type TransactionServicer interface {
	ListTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionView], error)
	GetTransactionByID(userID, transactionID string) (*models.TransactionView, error)
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	BulkCreateTransactions(userID string, inputs []TransactionInput) ([]models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) (*models.Transaction, error)
	BulkDeleteTransactions(userID string, ids []string) ([]models.Transaction, error)
}
