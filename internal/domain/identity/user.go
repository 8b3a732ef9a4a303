package identity

import (
	"github.com/cubemart/backend/internal/domain/shared"
)

// User is a storefront account. Only the display fields are needed by the
// catalog (reviews render the reviewer's name and avatar).
type User struct {
	shared.BaseEntity
	Name   string `gorm:"type:varchar(100);not null"`
	Email  string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Avatar string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}
