package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bizledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email: email,
		Name:  fmt.Sprintf("Test User %d", nextID()),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category owned by the given user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBranch creates a branch owned by the given user.
func CreateTestBranch(t *testing.T, db *gorm.DB, userID string) *models.Branch {
	t.Helper()

	branch := &models.Branch{
		UserID: userID,
		Name:   fmt.Sprintf("Test Branch %d", nextID()),
	}
	if err := db.Create(branch).Error; err != nil {
		t.Fatalf("failed to create test branch: %v", err)
	}
	return branch
}

// CreateTestTransactionIn creates a transaction row in the given family
// table, dated the given number of days before now.
func CreateTestTransactionIn(t *testing.T, db *gorm.DB, table, userID string, daysAgo int) *models.Transaction {
	t.Helper()

	n := nextID()
	tx := &models.Transaction{
		UserID:   userID,
		Date:     time.Now().UTC().AddDate(0, 0, -daysAgo),
		Product:  fmt.Sprintf("Test Product %d", n),
		Price:    10,
		Quantity: 2,
		Total:    decimal.NewFromInt(20),
	}
	if err := db.Table(table).Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction in %s: %v", table, err)
	}
	return tx
}
