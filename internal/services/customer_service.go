package services

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CustomerInput is the writable part of a customer.
type CustomerInput struct {
	Name          string `json:"name" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Address       string `json:"address" validate:"required,max=255"`
	ContactNumber string `json:"contact_number" validate:"required,max=20"`
}

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	validate *validator.Validate
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo, validate: newValidator()}
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// GetCustomerByID retrieves a single customer.
func (s *CustomerService) GetCustomerByID(id uint) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// CreateCustomer validates and stores a new customer.
func (s *CustomerService) CreateCustomer(in CustomerInput) (*models.Customer, error) {
	if err := s.check(in, 0); err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Name:          in.Name,
		Email:         in.Email,
		Address:       in.Address,
		ContactNumber: in.ContactNumber,
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer replaces the writable fields of an existing customer.
func (s *CustomerService) UpdateCustomer(id uint, in CustomerInput) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.check(in, id); err != nil {
		return nil, err
	}
	customer.Name = in.Name
	customer.Email = in.Email
	customer.Address = in.Address
	customer.ContactNumber = in.ContactNumber
	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer by its ID.
func (s *CustomerService) DeleteCustomer(id uint) error {
	return s.repo.Delete(id)
}

// check validates in; selfID is the customer being updated, whose own email
// does not count as taken.
func (s *CustomerService) check(in CustomerInput, selfID uint) error {
	verr := validateStruct(s.validate, in)
	if _, bad := verr.Fields["email"]; !bad {
		existing, err := s.repo.GetByEmail(in.Email)
		switch {
		case err == nil && existing.ID != selfID:
			verr.Add("email", "The email has already been taken.")
		case err != nil && !errors.Is(err, repositories.ErrNotFound):
			return err
		}
	}
	return verr.orNil()
}
