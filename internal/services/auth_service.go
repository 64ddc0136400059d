package services

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the body of an operator registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthService handles operator registration, login and token checks.
type AuthService struct {
	operatorRepo repositories.OperatorRepository
	jwtSecret    []byte
	tokenTTL     time.Duration
	validate     *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(operatorRepo repositories.OperatorRepository, jwtSecret string) *AuthService {
	return &AuthService{
		operatorRepo: operatorRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     24 * time.Hour,
		validate:     newValidator(),
	}
}

// RegisterOperator validates the input, hashes the password and stores the operator.
func (s *AuthService) RegisterOperator(in RegisterInput) (*models.Operator, error) {
	if err := validateStruct(s.validate, in).orNil(); err != nil {
		return nil, err
	}
	if existing, err := s.operatorRepo.GetByUsername(in.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("username '%s' already taken: %w", in.Username, ErrConflict)
	}
	if existing, err := s.operatorRepo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' already registered: %w", in.Email, ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	operator := &models.Operator{Username: in.Username, Email: in.Email, Password: string(hashed)}
	if err := s.operatorRepo.Create(operator); err != nil {
		return nil, fmt.Errorf("failed to register operator: %w", err)
	}
	return operator, nil
}

// Login checks the credentials and returns a signed JWT.
func (s *AuthService) Login(username, password string) (string, error) {
	operator, err := s.operatorRepo.GetByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"operator_id": operator.ID,
		"username":    operator.Username,
		"exp":         now.Add(s.tokenTTL).Unix(),
		"iat":         now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
