package catalog

import (
	"github.com/cubemart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the visibility state of a product.
// Only ACTIVE products appear in public listing and detail queries.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// Valid reports whether the status is one of the known states
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return true
	}
	return false
}

// Product represents a sellable item in the storefront catalog.
// It is the aggregate root for product detail, attributes and reviews.
type Product struct {
	shared.BaseEntity
	Name         string             `gorm:"type:varchar(200);not null"`
	Slug         string             `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description  string             `gorm:"type:text"`
	Price        decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	ComparePrice *decimal.Decimal   `gorm:"type:decimal(18,2)"`
	SKU          string             `gorm:"type:varchar(50);index"`
	Inventory    int                `gorm:"not null;default:0"`
	Images       pq.StringArray     `gorm:"type:text[]"`
	Featured     bool               `gorm:"not null;default:false"`
	Status       ProductStatus      `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CategoryID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Category     *Category          `gorm:"foreignKey:CategoryID"`
	Attributes   []ProductAttribute `gorm:"foreignKey:ProductID"`
	Reviews      []Review           `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductAttribute is a name/value pair attached to a product.
// The attribute set is replaced wholesale on product update.
type ProductAttribute struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Value     string    `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (ProductAttribute) TableName() string {
	return "product_attributes"
}

// NewProduct creates a new product, deriving its slug from the name
func NewProduct(name, description string, price decimal.Decimal, categoryID uuid.UUID) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name must contain at least one alphanumeric character")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Slug:        slug,
		Description: description,
		Price:       price,
		Status:      ProductStatusActive,
		CategoryID:  categoryID,
	}, nil
}

// IsActive reports whether the product is publicly visible
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Rename changes the product name and regenerates the slug when the derived
// value differs from the current one. It returns true when the slug changed,
// so the caller can enforce slug uniqueness before persisting.
func (p *Product) Rename(name string) (bool, error) {
	if name == "" {
		return false, shared.NewDomainError("INVALID_INPUT", "Name is required")
	}
	if name == p.Name {
		return false, nil
	}

	p.Name = name
	p.Touch()

	newSlug := Slugify(name)
	if newSlug == "" || newSlug == p.Slug {
		return false, nil
	}
	p.Slug = newSlug
	return true, nil
}

// SetInventory sets the on-hand inventory count
func (p *Product) SetInventory(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Inventory cannot be negative")
	}
	p.Inventory = count
	p.Touch()
	return nil
}

// ReplaceAttributes swaps the entire attribute set for the given pairs
func (p *Product) ReplaceAttributes(pairs []ProductAttribute) {
	attrs := make([]ProductAttribute, len(pairs))
	for i, pair := range pairs {
		attrs[i] = ProductAttribute{
			ID:        uuid.New(),
			ProductID: p.ID,
			Name:      pair.Name,
			Value:     pair.Value,
		}
	}
	p.Attributes = attrs
	p.Touch()
}
