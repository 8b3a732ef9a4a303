package catalog

import (
	"time"

	"github.com/cubemart/backend/internal/domain/catalog"
	"github.com/cubemart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListProductsQuery carries the listing parameters after handler-side binding
type ListProductsQuery struct {
	Search    string
	Category  string // category slug
	Featured  *bool
	SortBy    string // name | price | createdAt
	SortOrder string // asc | desc
	Page      int
	Limit     int
}

// DefaultPageSize is the listing page size when the caller does not set one
const DefaultPageSize = 12

// MaxPageSize caps the listing page size
const MaxPageSize = 100

// AttributeInput is a name/value pair supplied on product update
type AttributeInput struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UpdateProductRequest is a partial product patch. Every field is optional;
// a nil field means "leave unchanged". Attributes, when present, replace the
// stored set wholesale.
type UpdateProductRequest struct {
	Name         *string           `json:"name"`
	Description  *string           `json:"description"`
	Price        *decimal.Decimal  `json:"price"`
	ComparePrice *decimal.Decimal  `json:"comparePrice"`
	SKU          *string           `json:"sku"`
	Inventory    *int              `json:"inventory"`
	Images       *[]string         `json:"images"`
	CategoryID   *uuid.UUID        `json:"categoryId"`
	Featured     *bool             `json:"featured"`
	Status       *string           `json:"status"`
	Attributes   *[]AttributeInput `json:"attributes"`
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CategorySummary is the category subset embedded in product responses
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// AttributeResponse is a product attribute in responses
type AttributeResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ReviewResponse is a product review with the reviewer's display data
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductListItem is a product row in the listing response
type ProductListItem struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description"`
	Price        float64          `json:"price"`
	ComparePrice *float64         `json:"comparePrice,omitempty"`
	Images       []string         `json:"images"`
	Category     *CategorySummary `json:"category,omitempty"`
	AvgRating    float64          `json:"avgRating"`
	ReviewCount  int              `json:"reviewCount"`
	Featured     bool             `json:"featured"`
	Inventory    int              `json:"inventory"`
}

// ProductListResult is the listing response body
type ProductListResult struct {
	Products   []ProductListItem `json:"products"`
	Pagination shared.Pagination `json:"pagination"`
}

// ProductDetail is the full product response with joined relations and
// derived rating aggregates
type ProductDetail struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	Price        float64                `json:"price"`
	ComparePrice *float64               `json:"comparePrice,omitempty"`
	SKU          string                 `json:"sku,omitempty"`
	Inventory    int                    `json:"inventory"`
	Images       []string               `json:"images"`
	Featured     bool                   `json:"featured"`
	Status       string                 `json:"status"`
	Category     *CategorySummary       `json:"category,omitempty"`
	Attributes   []AttributeResponse    `json:"attributes"`
	Reviews      []ReviewResponse       `json:"reviews,omitempty"`
	AvgRating    float64                `json:"avgRating"`
	ReviewCount  int                    `json:"reviewCount"`
	Distribution []catalog.RatingBucket `json:"ratingDistribution"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// ProductSample is the product subset embedded in category listings
type ProductSample struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Price    float64   `json:"price"`
	Images   []string  `json:"images"`
	Featured bool      `json:"featured"`
}

// CategoryResponse is a category in list/create responses
type CategoryResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description,omitempty"`
	Image        string          `json:"image,omitempty"`
	ProductCount int64           `json:"productCount"`
	Products     []ProductSample `json:"products,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func toCategorySummary(c *catalog.Category) *CategorySummary {
	if c == nil {
		return nil
	}
	return &CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toComparePrice(p *decimal.Decimal) *float64 {
	if p == nil {
		return nil
	}
	v := p.InexactFloat64()
	return &v
}

func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

// ToProductListItem maps a domain product (with category and review ratings
// loaded) to a listing row
func ToProductListItem(p *catalog.Product) ProductListItem {
	summary := catalog.SummarizeRatings(p.Reviews)
	return ProductListItem{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		ComparePrice: toComparePrice(p.ComparePrice),
		Images:       imagesOrEmpty(p.Images),
		Category:     toCategorySummary(p.Category),
		AvgRating:    summary.Average,
		ReviewCount:  summary.ReviewCount,
		Featured:     p.Featured,
		Inventory:    p.Inventory,
	}
}

// ToProductDetail maps a fully loaded domain product to the detail response
func ToProductDetail(p *catalog.Product) *ProductDetail {
	summary := catalog.SummarizeRatings(p.Reviews)

	attrs := make([]AttributeResponse, len(p.Attributes))
	for i, a := range p.Attributes {
		attrs[i] = AttributeResponse{Name: a.Name, Value: a.Value}
	}

	reviews := make([]ReviewResponse, len(p.Reviews))
	for i, r := range p.Reviews {
		resp := ReviewResponse{
			ID:        r.ID,
			Rating:    r.Rating,
			Title:     r.Title,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
		if r.User != nil {
			resp.UserName = r.User.Name
			resp.UserImage = r.User.Avatar
		}
		reviews[i] = resp
	}

	return &ProductDetail{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		ComparePrice: toComparePrice(p.ComparePrice),
		SKU:          p.SKU,
		Inventory:    p.Inventory,
		Images:       imagesOrEmpty(p.Images),
		Featured:     p.Featured,
		Status:       string(p.Status),
		Category:     toCategorySummary(p.Category),
		Attributes:   attrs,
		Reviews:      reviews,
		AvgRating:    summary.Average,
		ReviewCount:  summary.ReviewCount,
		Distribution: summary.Distribution,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToCategoryResponse maps a category plus its active-product count; samples
// are attached when includeProducts was requested
func ToCategoryResponse(c *catalog.Category, productCount int64, includeProducts bool) CategoryResponse {
	resp := CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		Image:        c.Image,
		ProductCount: productCount,
		CreatedAt:    c.CreatedAt,
	}

	if includeProducts {
		samples := make([]ProductSample, 0, len(c.Products))
		for i := range c.Products {
			p := &c.Products[i]
			samples = append(samples, ProductSample{
				ID:       p.ID,
				Name:     p.Name,
				Slug:     p.Slug,
				Price:    p.Price.InexactFloat64(),
				Images:   imagesOrEmpty(p.Images),
				Featured: p.Featured,
			})
		}
		resp.Products = samples
	}

	return resp
}
