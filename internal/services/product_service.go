package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ProductInput is the writable part of a product. Pointers distinguish an
// explicit zero from a missing value.
type ProductInput struct {
	Name              string           `json:"name" validate:"required,max=255"`
	Description       string           `json:"description" validate:"required,max=255"`
	Price             *decimal.Decimal `json:"price" validate:"required,gte=0"`
	AvailableQuantity *int             `json:"available_quantity" validate:"required,gte=0"`
	CategoryID        uint             `json:"category_id" validate:"required"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	validate   *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		validate:   newValidator(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(in ProductInput) (*models.Product, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	product := &models.Product{}
	apply(product, in)
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the writable fields of an existing product.
func (s *ProductService) UpdateProduct(id uint, in ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	apply(product, in)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.repo.Delete(id)
}

func (s *ProductService) check(in ProductInput) error {
	verr := validateStruct(s.validate, in)
	if in.CategoryID != 0 {
		if err := checkExists(verr, "category_id", func() error {
			_, err := s.categories.GetByID(in.CategoryID)
			return err
		}); err != nil {
			return err
		}
	}
	return verr.orNil()
}

func apply(p *models.Product, in ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = *in.Price
	p.AvailableQuantity = *in.AvailableQuantity
	p.CategoryID = in.CategoryID
}
