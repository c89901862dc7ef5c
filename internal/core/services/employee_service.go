package services

import (
	"context"
	"errors"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/core/domain"

	"github.com/google/uuid"
)

// Employee errors
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeEmailExists = errors.New("employee email already exists")
)

// EmployeeService handles employee CRUD scoped to the calling admin's
// partition. The admin ID always comes from the session guard, never
// from request input.
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// List returns the admin's employees, newest first
func (s *EmployeeService) List(ctx context.Context, adminID uuid.UUID) ([]*models.Employee, error) {
	return s.employeeRepo.List(ctx, adminID)
}

// Create creates an employee in the admin's partition
func (s *EmployeeService) Create(ctx context.Context, adminID uuid.UUID, employee *models.Employee) (*models.Employee, error) {
	employee.Email = NormalizeEmail(employee.Email)

	if err := s.employeeRepo.Create(ctx, adminID, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, ErrEmployeeEmailExists
		}
		return nil, err
	}
	return employee, nil
}

// Update applies a partial update to an employee in the admin's partition
func (s *EmployeeService) Update(ctx context.Context, adminID uuid.UUID, id uint, updates map[string]interface{}) (*models.Employee, error) {
	if email, ok := updates["email"].(string); ok {
		updates["email"] = NormalizeEmail(email)
	}

	employee, err := s.employeeRepo.Update(ctx, adminID, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, ErrEmployeeNotFound
		case errors.Is(err, domain.ErrDuplicateEmail):
			return nil, ErrEmployeeEmailExists
		default:
			return nil, err
		}
	}
	return employee, nil
}

// Delete deletes an employee from the admin's partition
func (s *EmployeeService) Delete(ctx context.Context, adminID uuid.UUID, id uint) error {
	err := s.employeeRepo.Delete(ctx, adminID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}
