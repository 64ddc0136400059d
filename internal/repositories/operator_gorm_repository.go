package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMOperatorRepository is a GORM implementation of OperatorRepository.
type GORMOperatorRepository struct {
	db *gorm.DB
}

// NewGORMOperatorRepository creates a new instance of GORMOperatorRepository.
func NewGORMOperatorRepository(db *gorm.DB) *GORMOperatorRepository {
	return &GORMOperatorRepository{
		db: db,
	}
}

// Create creates a new operator in the database.
func (r *GORMOperatorRepository) Create(operator *models.Operator) error {
	if err := r.db.Create(operator).Error; err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

// GetByUsername retrieves an operator by username.
func (r *GORMOperatorRepository) GetByUsername(username string) (*models.Operator, error) {
	return r.firstWhere("username = ?", username)
}

// GetByEmail retrieves an operator by email.
func (r *GORMOperatorRepository) GetByEmail(email string) (*models.Operator, error) {
	return r.firstWhere("email = ?", email)
}

// GetByID retrieves an operator by ID.
func (r *GORMOperatorRepository) GetByID(id uint) (*models.Operator, error) {
	return r.firstWhere("id = ?", id)
}

func (r *GORMOperatorRepository) firstWhere(query string, arg any) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.Where(query, arg).First(&operator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("operator %v not found", arg)
		}
		return nil, fmt.Errorf("failed to get operator %v: %w", arg, err)
	}
	return &operator, nil
}
