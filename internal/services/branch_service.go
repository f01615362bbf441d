package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/models"
	"bizledger/internal/pagination"
)

// branchService handles branch-related business logic. It mirrors the
// category store: branches are plain named rows scoped to one owner.
type branchService struct {
	db *gorm.DB
}

// NewBranchService creates a new BranchServicer.
func NewBranchService(db *gorm.DB) BranchServicer {
	return &branchService{db: db}
}

// ListBranches retrieves a paginated list of the user's branches.
func (s *branchService) ListBranches(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Branch], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Branch{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var branches []models.Branch
	if err := base.Scopes(pagination.Paginate(page)).Find(&branches).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(branches, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBranchByID retrieves a branch by ID for a specific user.
func (s *branchService) GetBranchByID(userID, branchID string) (*models.Branch, error) {
	var branch models.Branch
	if err := s.db.Where("id = ? AND user_id = ?", branchID, userID).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBranchNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &branch, nil
}

// CreateBranch creates a new branch owned by the user.
func (s *branchService) CreateBranch(userID, name string) (*models.Branch, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	branch := &models.Branch{UserID: userID, Name: name}
	if err := s.db.Create(branch).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return branch, nil
}

// UpdateBranch renames a branch via a single ownership-scoped UPDATE.
func (s *branchService) UpdateBranch(userID, branchID, name string) (*models.Branch, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	var branch models.Branch
	res := s.db.Model(&branch).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", branchID, userID).
		Updates(map[string]interface{}{"name": name})
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrBranchNotFound
	}
	return &branch, nil
}

// DeleteBranch physically deletes a branch in one ownership-scoped
// statement and returns the removed row.
func (s *branchService) DeleteBranch(userID, branchID string) (*models.Branch, error) {
	var branch models.Branch
	res := s.db.Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", branchID, userID).
		Delete(&branch)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrBranchNotFound
	}
	return &branch, nil
}

// BulkDeleteBranches deletes ids ∩ owned rows in one statement, silently
// skipping anything missing or foreign.
func (s *branchService) BulkDeleteBranches(userID string, ids []string) ([]models.Branch, error) {
	if len(ids) == 0 {
		return []models.Branch{}, nil
	}

	var branches []models.Branch
	res := s.db.Clauses(clause.Returning{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&branches)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if branches == nil {
		branches = []models.Branch{}
	}
	return branches, nil
}
