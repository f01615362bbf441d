package models

// Category represents a transaction category owned by exactly one user.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	Name   string `gorm:"not null" json:"name"`
}
