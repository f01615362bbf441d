package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/models"
)

const testCategoryID = "0198a3e2-7a11-7bbb-8f5e-222222222222"

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/:email/categories", injectUserID(testUserID))
	g.GET("", handler.ListCategories)
	g.GET("/:id", handler.GetCategoryByID)
	g.POST("", handler.CreateCategory)
	g.PATCH("/:id", handler.UpdateCategory)
	g.DELETE("/:id", handler.DeleteCategory)
	g.POST("/bulk-delete", handler.BulkDeleteCategories)
	return r
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("returns 201 with the data envelope", func(t *testing.T) {
		svc := &mockCategoryService{
			createFn: func(userID, name string) (*models.Category, error) {
				if userID != testUserID {
					t.Errorf("expected resolved user ID, got %s", userID)
				}
				return &models.Category{Base: models.Base{ID: testCategoryID}, UserID: userID, Name: name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/owner@shop.com/categories", `{"name":"Groceries"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if data["name"] != "Groceries" {
			t.Errorf("expected name Groceries, got %v", data["name"])
		}
	})

	t.Run("returns 400 when the service rejects the name", func(t *testing.T) {
		svc := &mockCategoryService{
			createFn: func(userID, name string) (*models.Category, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/owner@shop.com/categories", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Name is required")
	})
}

func TestCategoryHandler_Get(t *testing.T) {
	t.Run("returns 404 for missing rows", func(t *testing.T) {
		svc := &mockCategoryService{
			getFn: func(userID, id string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/owner@shop.com/categories/"+testCategoryID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Category Not Found")
	})

	t.Run("returns 400 on a malformed id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "GET", "/owner@shop.com/categories/not-a-uuid", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Invalid Category Id")
	})
}

func TestCategoryHandler_List(t *testing.T) {
	svc := &mockCategoryService{}
	r := setupCategoryRouter(NewCategoryHandler(svc))

	rec := doRequest(r, "GET", "/owner@shop.com/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if _, ok := result["data"]; !ok {
		t.Error("expected data key in the paging envelope")
	}
	if _, ok := result["total_items"]; !ok {
		t.Error("expected total_items in the paging envelope")
	}
}

func TestCategoryHandler_Update(t *testing.T) {
	svc := &mockCategoryService{
		updateFn: func(userID, id, name string) (*models.Category, error) {
			return &models.Category{Base: models.Base{ID: id}, UserID: userID, Name: name}, nil
		},
	}
	r := setupCategoryRouter(NewCategoryHandler(svc))

	rec := doRequest(r, "PATCH", "/owner@shop.com/categories/"+testCategoryID, `{"name":"Renamed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].(map[string]interface{})
	if data["name"] != "Renamed" {
		t.Errorf("expected Renamed, got %v", data["name"])
	}
}

func TestCategoryHandler_BulkDelete(t *testing.T) {
	t.Run("passes the ids through and returns the removed rows", func(t *testing.T) {
		var gotIDs []string
		svc := &mockCategoryService{
			bulkDeleteFn: func(userID string, ids []string) ([]models.Category, error) {
				gotIDs = ids
				return []models.Category{{Base: models.Base{ID: ids[0]}}}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/owner@shop.com/categories/bulk-delete",
			`{"ids":["`+testCategoryID+`"]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(gotIDs) != 1 || gotIDs[0] != testCategoryID {
			t.Errorf("expected ids passed through, got %v", gotIDs)
		}
	})

	t.Run("empty list is a successful no-op", func(t *testing.T) {
		var gotIDs []string
		svc := &mockCategoryService{
			bulkDeleteFn: func(userID string, ids []string) ([]models.Category, error) {
				gotIDs = ids
				return []models.Category{}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/owner@shop.com/categories/bulk-delete", `{"ids":[]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(gotIDs) != 0 {
			t.Errorf("expected the empty list passed through, got %v", gotIDs)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 0 {
			t.Errorf("expected an empty result, got %v", data)
		}
	})

	t.Run("rejects non-uuid ids", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/owner@shop.com/categories/bulk-delete", `{"ids":["nope"]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
