package models

// Branch represents a business location owned by exactly one user.
// Transactions reference it for location attribution.
type Branch struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	Name   string `gorm:"not null" json:"name"`
}
