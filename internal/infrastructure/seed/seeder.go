package seed

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cubemart/backend/internal/domain/catalog"
)

// Required product CSV columns. Optional columns: description, compare_price,
// sku, inventory, images (pipe separated), featured, status, attributes
// (name=value pairs separated by semicolons).
var requiredColumns = []string{"name", "price", "category"}

// Result summarizes a seed run
type Result struct {
	Created           int
	CategoriesCreated int
	Skipped           int
	Errors            *ErrorCollection
}

// Seeder loads a product catalog from CSV. Categories referenced by name are
// created on first use; products whose slug already exists are skipped so
// re-running the same file is harmless.
type Seeder struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Run parses the CSV input and persists its rows. Row-level failures are
// collected in the result; only unreadable input returns an error.
func (s *Seeder) Run(ctx context.Context, input io.Reader) (*Result, error) {
	rd, err := newReader(input)
	if err != nil {
		return nil, err
	}

	for _, col := range requiredColumns {
		if !rd.hasColumn(col) {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	result := &Result{Errors: NewErrorCollection(100)}
	categories := make(map[string]uuid.UUID)

	for {
		r, err := rd.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors.Add(RowError{
				Row:     rd.currentRow + 1,
				Code:    ErrCodeMalformedRow,
				Message: err.Error(),
			})
			continue
		}

		if err := s.seedRow(ctx, r, categories, result); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Seed run finished",
		zap.Int("created", result.Created),
		zap.Int("categories_created", result.CategoriesCreated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors.Total()))

	return result, nil
}

func (s *Seeder) seedRow(ctx context.Context, r row, categories map[string]uuid.UUID, result *Result) error {
	name := r.get("name")
	if name == "" {
		result.Errors.Add(RowError{Row: r.number, Column: "name", Code: ErrCodeRequiredField, Message: "name is required"})
		return nil
	}

	price, err := decimal.NewFromString(r.get("price"))
	if err != nil || price.IsNegative() {
		result.Errors.Add(RowError{Row: r.number, Column: "price", Code: ErrCodeInvalidValue, Message: "price must be a non-negative number", Value: r.get("price")})
		return nil
	}

	categoryID, created, err := s.resolveCategory(ctx, r.get("category"), categories)
	if err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		result.Errors.Add(RowError{Row: r.number, Column: "category", Code: ErrCodeUnknownCategory, Message: "category name is required", Value: r.get("category")})
		return nil
	}
	if created {
		result.CategoriesCreated++
	}

	product, err := catalog.NewProduct(name, r.get("description"), price, categoryID)
	if err != nil {
		result.Errors.Add(RowError{Row: r.number, Column: "name", Code: ErrCodeInvalidValue, Message: err.Error(), Value: name})
		return nil
	}

	if v := r.get("compare_price"); v != "" {
		cp, err := decimal.NewFromString(v)
		if err != nil {
			result.Errors.Add(RowError{Row: r.number, Column: "compare_price", Code: ErrCodeInvalidValue, Message: "compare_price must be a number", Value: v})
			return nil
		}
		product.ComparePrice = &cp
	}
	product.SKU = r.get("sku")
	if v := r.get("inventory"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			result.Errors.Add(RowError{Row: r.number, Column: "inventory", Code: ErrCodeInvalidValue, Message: "inventory must be a non-negative integer", Value: v})
			return nil
		}
		product.Inventory = n
	}
	if v := r.get("images"); v != "" {
		for _, img := range strings.Split(v, "|") {
			if img = strings.TrimSpace(img); img != "" {
				product.Images = append(product.Images, img)
			}
		}
	}
	if v := r.get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			result.Errors.Add(RowError{Row: r.number, Column: "featured", Code: ErrCodeInvalidValue, Message: "featured must be true or false", Value: v})
			return nil
		}
		product.Featured = featured
	}
	if v := r.get("status"); v != "" {
		status := catalog.ProductStatus(strings.ToUpper(v))
		if !status.Valid() {
			result.Errors.Add(RowError{Row: r.number, Column: "status", Code: ErrCodeInvalidValue, Message: "status must be ACTIVE, DRAFT or ARCHIVED", Value: v})
			return nil
		}
		product.Status = status
	}
	if v := r.get("attributes"); v != "" {
		product.ReplaceAttributes(parseAttributes(v))
	}

	taken, err := s.productRepo.ExistsBySlug(ctx, product.Slug, uuid.Nil)
	if err != nil {
		return fmt.Errorf("checking slug %q: %w", product.Slug, err)
	}
	if taken {
		s.logger.Debug("Skipping existing product", zap.String("slug", product.Slug))
		result.Skipped++
		return nil
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return fmt.Errorf("saving product %q: %w", product.Slug, err)
	}
	result.Created++
	return nil
}

// resolveCategory returns the id for a category name, creating the category
// on first reference. Already-persisted categories are matched by slug.
func (s *Seeder) resolveCategory(ctx context.Context, name string, cache map[string]uuid.UUID) (uuid.UUID, bool, error) {
	if name == "" {
		return uuid.Nil, false, nil
	}

	slug := catalog.Slugify(name)
	if id, ok := cache[slug]; ok {
		return id, false, nil
	}

	existing, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("listing categories: %w", err)
	}
	for i := range existing {
		if existing[i].Slug == slug {
			cache[slug] = existing[i].ID
			return existing[i].ID, false, nil
		}
	}

	category, err := catalog.NewCategory(name, "", "")
	if err != nil {
		return uuid.Nil, false, nil
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return uuid.Nil, false, fmt.Errorf("saving category %q: %w", name, err)
	}
	cache[slug] = category.ID
	return category.ID, true, nil
}

// parseAttributes parses "name=value;name=value" pairs
func parseAttributes(raw string) []catalog.ProductAttribute {
	var attrs []catalog.ProductAttribute
	for _, pair := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			continue
		}
		attrs = append(attrs, catalog.ProductAttribute{Name: name, Value: value})
	}
	return attrs
}
