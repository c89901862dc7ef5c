package repositories

import (
	"context"
	"errors"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/core/domain"
	"staffhub/internal/pkg/partition"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface. All queries
// run through a table scope derived from the admin ID, so one admin's
// queries can never reach another admin's partition.
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// table returns a query scoped to the admin's partition
func (r *employeeRepository) table(ctx context.Context, adminID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Table(partition.TableName(adminID))
}

// EnsurePartition creates the admin's employee table if it does not exist
func (r *employeeRepository) EnsurePartition(ctx context.Context, adminID uuid.UUID) error {
	return r.db.WithContext(ctx).Table(partition.TableName(adminID)).AutoMigrate(&models.Employee{})
}

// List lists the admin's employees, newest first
func (r *employeeRepository) List(ctx context.Context, adminID uuid.UUID) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.table(ctx, adminID).Order("created_at DESC").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// Create creates an employee in the admin's partition
func (r *employeeRepository) Create(ctx context.Context, adminID uuid.UUID, employee *models.Employee) error {
	err := r.table(ctx, adminID).Create(employee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmail
	}
	return err
}

// Update applies a partial update to an employee in the admin's partition
func (r *employeeRepository) Update(ctx context.Context, adminID uuid.UUID, id uint, updates map[string]interface{}) (*models.Employee, error) {
	var employee models.Employee
	err := r.table(ctx, adminID).Where("id = ?", id).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	err = r.table(ctx, adminID).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	err = r.table(ctx, adminID).Where("id = ?", id).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Delete deletes an employee from the admin's partition
func (r *employeeRepository) Delete(ctx context.Context, adminID uuid.UUID, id uint) error {
	result := r.table(ctx, adminID).Where("id = ?", id).Delete(&models.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPartitions returns the admin IDs of every employee partition that
// currently exists in the database
func (r *employeeRepository) ListPartitions(ctx context.Context) ([]uuid.UUID, error) {
	tables, err := r.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, table := range tables {
		if id, ok := partition.AdminID(table); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DropPartition drops the admin's employee table
func (r *employeeRepository) DropPartition(ctx context.Context, adminID uuid.UUID) error {
	return r.db.WithContext(ctx).Migrator().DropTable(partition.TableName(adminID))
}
