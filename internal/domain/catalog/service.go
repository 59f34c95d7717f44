// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product id or slug does not resolve
// to an active product.
var ErrProductNotFound = errors.New("product not found")

// Service handles catalog read operations
type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
	sfg    singleflight.Group // collapses concurrent lookups for the same product
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// ListParams holds filtering and pagination for product listings
type ListParams struct {
	CategorySlug string
	FeaturedOnly bool
	Page         int
	PerPage      int
}

// ListResult is one page of a product listing
type ListResult struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}

// ListProducts returns a page of active products
func (s *Service) ListProducts(params ListParams) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}

	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if params.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", params.CategorySlug)
	}
	if params.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := (params.Page - 1) * params.PerPage
	err := query.Preload("Category").
		Order("created_at DESC").
		Limit(params.PerPage).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ListResult{
		Products: products,
		Total:    total,
		Page:     params.Page,
		PerPage:  params.PerPage,
	}, nil
}

// GetProduct returns a single active product by id
func (s *Service) GetProduct(id string) (*Product, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		var prod Product
		result := s.db.Preload("Category").
			Where("id = ? AND is_active = ?", id, true).
			First(&prod)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to load product %s: %w", id, result.Error)
		}
		return &prod, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}

// GetProductBySlug returns a single active product by slug
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	var prod Product
	result := s.db.Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product by slug %s: %w", slug, result.Error)
	}
	return &prod, nil
}

// ListCategories returns all active categories in display order
func (s *Service) ListCategories() ([]Category, error) {
	var categories []Category
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
