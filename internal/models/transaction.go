package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one recorded sale or purchase line. Total is a
// fixed-precision decimal so aggregation never accumulates binary
// floating-point error; by convention it equals price * quantity, which
// the caller is responsible for.
type Transaction struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index" json:"userId"`
	CategoryID *string         `gorm:"type:uuid" json:"categoryId,omitempty"`
	BranchID   *string         `gorm:"type:uuid" json:"branchId,omitempty"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Product    string          `gorm:"not null" json:"product"`
	Price      float64         `json:"price"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `gorm:"type:numeric(20,4)" json:"total"`
}

// TableName names the generic transaction table.
func (Transaction) TableName() string { return "transactions" }

// SalesTransaction is structurally identical to Transaction but lives in
// its own table. The three families never share rows.
type SalesTransaction struct {
	Transaction
}

// TableName names the sales transaction table.
func (SalesTransaction) TableName() string { return "sales_transactions" }

// PurchaseTransaction is the purchase-side family, again backed by its
// own table.
type PurchaseTransaction struct {
	Transaction
}

// TableName names the purchase transaction table.
func (PurchaseTransaction) TableName() string { return "purchase_transactions" }

// TransactionView is the listing projection: the owning category's name
// is left-joined in, so a transaction without a category still appears.
type TransactionView struct {
	ID         string          `json:"id"`
	Category   *string         `json:"category"`
	CategoryID *string         `json:"categoryId"`
	BranchID   *string         `json:"branchId"`
	Date       time.Time       `json:"date"`
	Product    string          `json:"product"`
	Price      float64         `json:"price"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
}
