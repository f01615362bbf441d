package models

// User represents the user model in the database. Users are provisioned
// by the upstream identity provider's sync hook; this service never
// stores credentials.
type User struct {
	Base
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `json:"name"`

	Categories []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Branches   []Branch   `gorm:"foreignKey:UserID" json:"branches,omitempty"`
}
