package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/config"
	"staffhub/internal/core/domain"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// In-memory repositories mirroring the store semantics the handlers
// depend on: atomic email uniqueness for admins, one isolated partition
// per admin for employees.

type memAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*models.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[string]*models.Admin)}
}

func (r *memAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
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

func (r *memAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := *admin
	return &found, nil
}

func (r *memAdminRepo) List(ctx context.Context) ([]*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins := make([]*models.Admin, 0, len(r.admins))
	for _, admin := range r.admins {
		found := *admin
		admins = append(admins, &found)
	}
	return admins, nil
}

func (r *memAdminRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.admins)), nil
}

func (r *memAdminRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins = make(map[string]*models.Admin)
	return nil
}

type memEmployeeRepo struct {
	mu         sync.Mutex
	partitions map[uuid.UUID]map[uint]*models.Employee
	nextID     uint
	clock      time.Time
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{
		partitions: make(map[uuid.UUID]map[uint]*models.Employee),
		clock:      time.Now(),
	}
}

func (r *memEmployeeRepo) EnsurePartition(ctx context.Context, adminID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.partitions[adminID]; !ok {
		r.partitions[adminID] = make(map[uint]*models.Employee)
	}
	return nil
}

func (r *memEmployeeRepo) List(ctx context.Context, adminID uuid.UUID) ([]*models.Employee, error) {
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

func (r *memEmployeeRepo) Create(ctx context.Context, adminID uuid.UUID, employee *models.Employee) error {
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

func (r *memEmployeeRepo) Update(ctx context.Context, adminID uuid.UUID, id uint, updates map[string]interface{}) (*models.Employee, error) {
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

func (r *memEmployeeRepo) Delete(ctx context.Context, adminID uuid.UUID, id uint) error {
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

func (r *memEmployeeRepo) ListPartitions(ctx context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(r.partitions))
	for id := range r.partitions {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *memEmployeeRepo) DropPartition(ctx context.Context, adminID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.partitions, adminID)
	return nil
}

// newTestApp wires the full request path (guards, handlers, services)
// over the in-memory repositories, mirroring routes.Setup without the
// rate limiters.
func newTestApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		AppMode:        "dev",
		MasterPassword: "master-secret",
		JWT: config.JWTConfig{
			Secret:     "handler-secret",
			SessionTTL: time.Hour,
			SignupTTL:  5 * time.Minute,
		},
		Cookie: config.CookieConfig{SameSite: "lax"},
	}

	adminRepo := newMemAdminRepo()
	employeeRepo := newMemEmployeeRepo()

	authService := services.NewAuthService(adminRepo, employeeRepo, cfg)
	employeeService := services.NewEmployeeService(employeeRepo)

	authHandler := NewAuthHandler(authService, cfg)
	employeeHandler := NewEmployeeHandler(employeeService)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})

	admin := app.Group("/api/admin")
	admin.Get("/check-auth", middleware.SessionGuard(cfg), authHandler.CheckAuth)
	admin.Post("/login", authHandler.Login)
	admin.Post("/register", middleware.RegistrationGuard(adminRepo, cfg), authHandler.Register)
	admin.Post("/check-password", authHandler.CheckPassword)
	admin.Get("/check-access", authHandler.CheckAccess)
	admin.Get("/check-admin", authHandler.CheckAdmin)
	admin.Post("/logout", authHandler.Logout)

	employees := app.Group("/api/employees", middleware.SessionGuard(cfg))
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})

	return app, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.NoError(t, resp.Body.Close())
	return env
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerAdmin(t *testing.T, app *fiber.App, email, password string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	return doJSON(t, app, http.MethodPost, "/api/admin/register", fiber.Map{
		"email":    email,
		"password": password,
	}, cookies...)
}

func loginAdmin(t *testing.T, app *fiber.App, email, password string) *http.Cookie {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := findCookie(resp, middleware.SessionCookie)
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	return cookie
}
