package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/models"
)

// userService handles identity resolution and provisioning.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// GetUserByEmail resolves an email to its user record. Resolution is
// attempted fresh on every request; there is no cross-request cache.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// SyncUser upserts a user by email. This is the entry point for the
// upstream identity provider's sync hook, so repeated syncs for the same
// email must be idempotent. The upsert is a single ON CONFLICT statement.
func (s *userService) SyncUser(email, name string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email Id is required")
	}

	user := models.User{Email: email, Name: name}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// ON CONFLICT does not report the surviving row's ID on all drivers;
	// read it back by the unique key.
	var saved models.User
	if err := s.db.Where("email = ?", email).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}
