package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"bizledger/internal/models"
	"bizledger/internal/pagination"
	"bizledger/internal/services"
	"bizledger/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	getUserByEmailFn func(email string) (*models.User, error)
	syncUserFn       func(email, name string) (*models.User, error)
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) SyncUser(email, name string) (*models.User, error) {
	if m.syncUserFn != nil {
		return m.syncUserFn(email, name)
	}
	return &models.User{Email: email, Name: name}, nil
}

type mockCategoryService struct {
	listFn       func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	getFn        func(userID, id string) (*models.Category, error)
	createFn     func(userID, name string) (*models.Category, error)
	updateFn     func(userID, id, name string) (*models.Category, error)
	deleteFn     func(userID, id string) (*models.Category, error)
	bulkDeleteFn func(userID string, ids []string) ([]models.Category, error)
}

func (m *mockCategoryService) ListCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	if m.listFn != nil {
		return m.listFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Category{}, 1, 100, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, id string) (*models.Category, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) CreateCategory(userID, name string) (*models.Category, error) {
	if m.createFn != nil {
		return m.createFn(userID, name)
	}
	return &models.Category{UserID: userID, Name: name}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, id, name string) (*models.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, name)
	}
	return &models.Category{UserID: userID, Name: name}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, id string) (*models.Category, error) {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) BulkDeleteCategories(userID string, ids []string) ([]models.Category, error) {
	if m.bulkDeleteFn != nil {
		return m.bulkDeleteFn(userID, ids)
	}
	return []models.Category{}, nil
}

type mockBranchService struct {
	listFn       func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Branch], error)
	getFn        func(userID, id string) (*models.Branch, error)
	createFn     func(userID, name string) (*models.Branch, error)
	updateFn     func(userID, id, name string) (*models.Branch, error)
	deleteFn     func(userID, id string) (*models.Branch, error)
	bulkDeleteFn func(userID string, ids []string) ([]models.Branch, error)
}

func (m *mockBranchService) ListBranches(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Branch], error) {
	if m.listFn != nil {
		return m.listFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Branch{}, 1, 100, 0)
	return &resp, nil
}

func (m *mockBranchService) GetBranchByID(userID, id string) (*models.Branch, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return &models.Branch{}, nil
}

func (m *mockBranchService) CreateBranch(userID, name string) (*models.Branch, error) {
	if m.createFn != nil {
		return m.createFn(userID, name)
	}
	return &models.Branch{UserID: userID, Name: name}, nil
}

func (m *mockBranchService) UpdateBranch(userID, id, name string) (*models.Branch, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, name)
	}
	return &models.Branch{UserID: userID, Name: name}, nil
}

func (m *mockBranchService) DeleteBranch(userID, id string) (*models.Branch, error) {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return &models.Branch{}, nil
}

func (m *mockBranchService) BulkDeleteBranches(userID string, ids []string) ([]models.Branch, error) {
	if m.bulkDeleteFn != nil {
		return m.bulkDeleteFn(userID, ids)
	}
	return []models.Branch{}, nil
}

type mockTransactionService struct {
	listFn       func(userID string, filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionView], error)
	getFn        func(userID, id string) (*models.TransactionView, error)
	createFn     func(userID string, input services.TransactionInput) (*models.Transaction, error)
	bulkCreateFn func(userID string, inputs []services.TransactionInput) ([]models.Transaction, error)
	updateFn     func(userID, id string, input services.TransactionInput) (*models.Transaction, error)
	deleteFn     func(userID, id string) (*models.Transaction, error)
	bulkDeleteFn func(userID string, ids []string) ([]models.Transaction, error)
}

func (m *mockTransactionService) ListTransactions(userID string, filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionView], error) {
	if m.listFn != nil {
		return m.listFn(userID, filter, page)
	}
	resp := pagination.NewPageResponse([]models.TransactionView{}, 1, 100, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, id string) (*models.TransactionView, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return &models.TransactionView{}, nil
}

func (m *mockTransactionService) CreateTransaction(userID string, input services.TransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(userID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) BulkCreateTransactions(userID string, inputs []services.TransactionInput) ([]models.Transaction, error) {
	if m.bulkCreateFn != nil {
		return m.bulkCreateFn(userID, inputs)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, id string, input services.TransactionInput) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, id string) (*models.Transaction, error) {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) BulkDeleteTransactions(userID string, ids []string) ([]models.Transaction, error) {
	if m.bulkDeleteFn != nil {
		return m.bulkDeleteFn(userID, ids)
	}
	return []models.Transaction{}, nil
}

// --- test helpers ---

const testUserID = "0198a3e2-7a11-7bbb-8f5e-111111111111"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// injectUserID stands in for the identity middleware in handler tests.
func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorMessage(t *testing.T, result map[string]interface{}, message string) {
	t.Helper()
	got, ok := result["error"].(string)
	if !ok {
		t.Fatalf("expected error string in response, got: %v", result)
	}
	if got != message {
		t.Errorf("expected error %q, got %q", message, got)
	}
}
