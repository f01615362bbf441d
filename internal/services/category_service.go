package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/models"
	"bizledger/internal/pagination"
)

// categoryService handles category-related business logic. Every
// operation is scoped by the resolved caller's user ID; a row owned by
// someone else is indistinguishable from a row that does not exist.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories retrieves a paginated list of the user's categories.
func (s *categoryService) ListCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Category{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID for a specific user.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory creates a new category owned by the user.
func (s *categoryService) CreateCategory(userID, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	category := &models.Category{UserID: userID, Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory renames a category. The ownership predicate lives in the
// UPDATE statement itself, so the row is renamed only if the caller owns
// it; zero rows affected means not found (or not owned, same thing).
func (s *categoryService) UpdateCategory(userID, categoryID, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	var category models.Category
	res := s.db.Model(&category).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Updates(map[string]interface{}{"name": name})
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &category, nil
}

// DeleteCategory physically deletes a category in one ownership-scoped
// statement and returns the removed row.
func (s *categoryService) DeleteCategory(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	res := s.db.Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Delete(&category)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &category, nil
}

// BulkDeleteCategories deletes the intersection of ids and rows owned by
// the user in a single statement. Ids that are missing or foreign are
// silently skipped; the result contains only what was actually removed.
func (s *categoryService) BulkDeleteCategories(userID string, ids []string) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}

	var categories []models.Category
	res := s.db.Clauses(clause.Returning{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&categories)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}
