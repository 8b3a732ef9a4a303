package catalog

import (
	"time"

	"github.com/cubemart/backend/internal/domain/identity"
	"github.com/cubemart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Review is a customer review attached to a product
type Review struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	User      *identity.User `gorm:"foreignKey:UserID"`
	Rating    int            `gorm:"not null"`
	Title     string         `gorm:"type:varchar(200)"`
	Comment   string         `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review with a rating between 1 and 5
func NewReview(productID, userID uuid.UUID, rating int, title, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Rating must be between 1 and 5")
	}

	return &Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Title:     title,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}
