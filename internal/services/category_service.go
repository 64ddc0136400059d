package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CategoryInput is the writable part of a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	validate *validator.Validate
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, validate: newValidator()}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategoryByID retrieves a single category.
func (s *CategoryService) GetCategoryByID(id uint) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// CreateCategory validates and stores a new category.
func (s *CategoryService) CreateCategory(in CategoryInput) (*models.Category, error) {
	if err := validateStruct(s.validate, in).orNil(); err != nil {
		return nil, err
	}
	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory replaces the writable fields of an existing category.
func (s *CategoryService) UpdateCategory(id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in).orNil(); err != nil {
		return nil, err
	}
	category.Name = in.Name
	category.Description = in.Description
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category by its ID.
func (s *CategoryService) DeleteCategory(id uint) error {
	return s.repo.Delete(id)
}
