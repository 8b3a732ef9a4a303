package catalog

import (
	"github.com/cubemart/backend/internal/domain/shared"
)

// Category represents a product category in the storefront catalog
type Category struct {
	shared.BaseEntity
	Name        string    `gorm:"type:varchar(100);not null"`
	Slug        string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:varchar(500)"`
	Products    []Product `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category, deriving its slug from the name
func NewCategory(name, description, image string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name is required")
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name must contain at least one alphanumeric character")
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Slug:        slug,
		Description: description,
		Image:       image,
	}, nil
}
