package repositories

import "storefront/internal/models"

// OperatorRepository defines the interface for operator data access.
type OperatorRepository interface {
	Create(operator *models.Operator) error
	GetByUsername(username string) (*models.Operator, error)
	GetByEmail(email string) (*models.Operator, error)
	GetByID(id uint) (*models.Operator, error)
}
