package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/core/domain"

	"github.com/google/uuid"
)

// fakeAdminRepo is an in-memory AdminRepository. Like the real store it
// enforces email uniqueness atomically inside Create.
type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.Admin)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[admin.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	admin.CreatedAt = time.Now()
	stored := *admin
	r.admins[admin.Email] = &stored
	return nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := *admin
	return &found, nil
}

func (r *fakeAdminRepo) List(ctx context.Context) ([]*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins := make([]*models.Admin, 0, len(r.admins))
	for _, admin := range r.admins {
		found := *admin
		admins = append(admins, &found)
	}
	return admins, nil
}

func (r *fakeAdminRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.admins)), nil
}

func (r *fakeAdminRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins = make(map[string]*models.Admin)
	return nil
}

// fakeEmployeeRepo is an in-memory EmployeeRepository with one map per
// partition, mirroring the one-table-per-admin layout.
type fakeEmployeeRepo struct {
	mu         sync.Mutex
	partitions map[uuid.UUID]map[uint]*models.Employee
	nextID     uint
	clock      time.Time
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		partitions: make(map[uuid.UUID]map[uint]*models.Employee),
		clock:      time.Now(),
	}
}

func (r *fakeEmployeeRepo) EnsurePartition(ctx context.Context, adminID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.partitions[adminID]; !ok {
		r.partitions[adminID] = make(map[uint]*models.Employee)
	}
	return nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context, adminID uuid.UUID) ([]*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, ok := r.partitions[adminID]
	if !ok {
		return nil, fmt.Errorf("partition for admin %s does not exist", adminID)
	}

	employees := make([]*models.Employee, 0, len(part))
	for _, e := range part {
		found := *e
		employees = append(employees, &found)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].CreatedAt.Equal(employees[j].CreatedAt) {
			return employees[i].ID > employees[j].ID
		}
		return employees[i].CreatedAt.After(employees[j].CreatedAt)
	})
	return employees, nil
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, adminID uuid.UUID, employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, ok := r.partitions[adminID]
	if !ok {
		return fmt.Errorf("partition for admin %s does not exist", adminID)
	}

	for _, e := range part {
		if e.Email == employee.Email {
			return domain.ErrDuplicateEmail
		}
	}

	r.nextID++
	r.clock = r.clock.Add(time.Millisecond)
	employee.ID = r.nextID
	employee.CreatedAt = r.clock
	employee.UpdatedAt = r.clock
	stored := *employee
	part[employee.ID] = &stored
	return nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, adminID uuid.UUID, id uint, updates map[string]interface{}) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, ok := r.partitions[adminID]
	if !ok {
		return nil, fmt.Errorf("partition for admin %s does not exist", adminID)
	}

	employee, ok := part[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if email, ok := updates["email"].(string); ok {
		for otherID, e := range part {
			if otherID != id && e.Email == email {
				return nil, domain.ErrDuplicateEmail
			}
		}
	}

	for column, value := range updates {
		switch column {
		case "name":
			employee.Name = value.(string)
		case "email":
			employee.Email = value.(string)
		case "department":
			employee.Department = value.(string)
		case "position":
			employee.Position = value.(string)
		case "salary":
			employee.Salary = value.(float64)
		case "join_date":
			employee.JoinDate = value.(string)
		}
	}
	employee.UpdatedAt = time.Now()

	found := *employee
	return &found, nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, adminID uuid.UUID, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, ok := r.partitions[adminID]
	if !ok {
		return fmt.Errorf("partition for admin %s does not exist", adminID)
	}

	if _, ok := part[id]; !ok {
		return domain.ErrNotFound
	}
	delete(part, id)
	return nil
}

func (r *fakeEmployeeRepo) ListPartitions(ctx context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(r.partitions))
	for id := range r.partitions {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeEmployeeRepo) DropPartition(ctx context.Context, adminID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.partitions, adminID)
	return nil
}
