package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"github.com/google/uuid"
)

// AdminRepository defines admin credential store access
type AdminRepository interface {
	// Create inserts a new admin. Returns domain.ErrDuplicateEmail when the
	// email is already taken; the unique index resolves concurrent
	// registrations, there is no pre-check.
	Create(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	List(ctx context.Context) ([]*models.Admin, error)
	Count(ctx context.Context) (int64, error)
	// DeleteAll removes every admin. Irreversible; used only by the reset flow.
	DeleteAll(ctx context.Context) error
}

// EmployeeRepository defines access to the per-admin employee partitions.
// Every operation takes the owning admin's ID and is confined to that
// admin's partition.
type EmployeeRepository interface {
	// EnsurePartition creates the admin's employee table if missing.
	EnsurePartition(ctx context.Context, adminID uuid.UUID) error
	// List returns the admin's employees newest-first.
	List(ctx context.Context, adminID uuid.UUID) ([]*models.Employee, error)
	Create(ctx context.Context, adminID uuid.UUID, employee *models.Employee) error
	Update(ctx context.Context, adminID uuid.UUID, id uint, updates map[string]interface{}) (*models.Employee, error)
	Delete(ctx context.Context, adminID uuid.UUID, id uint) error
	// ListPartitions returns the admin IDs of all existing partitions.
	ListPartitions(ctx context.Context) ([]uuid.UUID, error)
	DropPartition(ctx context.Context, adminID uuid.UUID) error
}
