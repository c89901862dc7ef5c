package handlers

import (
	"errors"
	"strings"
	"time"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const joinDateLayout = "2006-01-02"

// EmployeeHandler handles employee CRUD endpoints. All routes sit behind
// the session guard; the partition is resolved from the guard's context,
// never from request input.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployeeRequest represents the create request body
type CreateEmployeeRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Salary     *float64 `json:"salary"`
	JoinDate   string   `json:"join_date"`
}

// UpdateEmployeeRequest represents the partial update request body
type UpdateEmployeeRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Department *string  `json:"department"`
	Position   *string  `json:"position"`
	Salary     *float64 `json:"salary"`
	JoinDate   *string  `json:"join_date"`
}

// List returns all employees of the calling admin, newest first
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	adminID, ok := middleware.AdminIDFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	employees, err := h.employeeService.List(c.Context(), adminID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch employees")
	}

	return response.Success(c, "", fiber.Map{
		"employees": employees,
	})
}

// Create adds an employee to the calling admin's partition
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	adminID, ok := middleware.AdminIDFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Department) == "" ||
		strings.TrimSpace(req.Position) == "" ||
		req.Salary == nil ||
		strings.TrimSpace(req.JoinDate) == "" {
		return response.BadRequest(c, "All fields are required")
	}
	if *req.Salary < 0 {
		return response.BadRequest(c, "Salary must not be negative")
	}
	if _, err := time.Parse(joinDateLayout, req.JoinDate); err != nil {
		return response.BadRequest(c, "Join date must be a valid YYYY-MM-DD date")
	}

	employee := &models.Employee{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		Salary:     *req.Salary,
		JoinDate:   req.JoinDate,
	}

	created, err := h.employeeService.Create(c.Context(), adminID, employee)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeEmailExists) {
			return response.Conflict(c, "Email already exists")
		}
		return response.InternalServerError(c, "Error adding employee")
	}

	return response.Created(c, "Employee created", fiber.Map{
		"employee": created,
	})
}

// Update applies a partial update to an employee in the calling admin's
// partition
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	adminID, ok := middleware.AdminIDFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid employee id")
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates, err := buildEmployeeUpdates(&req)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	employee, err := h.employeeService.Update(c.Context(), adminID, uint(id), updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrEmployeeEmailExists):
			return response.Conflict(c, "Email already exists")
		default:
			return response.InternalServerError(c, "Error updating employee")
		}
	}

	return response.Success(c, "Employee updated", fiber.Map{
		"employee": employee,
	})
}

// Delete removes an employee from the calling admin's partition
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	adminID, ok := middleware.AdminIDFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid employee id")
	}

	if err := h.employeeService.Delete(c.Context(), adminID, uint(id)); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Error deleting employee")
	}

	return response.Success(c, "Employee deleted", nil)
}

// buildEmployeeUpdates validates the provided fields and maps them to
// column updates
func buildEmployeeUpdates(req *UpdateEmployeeRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.New("Name must not be empty")
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, errors.New("Email must not be empty")
		}
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Department != nil {
		if strings.TrimSpace(*req.Department) == "" {
			return nil, errors.New("Department must not be empty")
		}
		updates["department"] = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		if strings.TrimSpace(*req.Position) == "" {
			return nil, errors.New("Position must not be empty")
		}
		updates["position"] = strings.TrimSpace(*req.Position)
	}
	if req.Salary != nil {
		if *req.Salary < 0 {
			return nil, errors.New("Salary must not be negative")
		}
		updates["salary"] = *req.Salary
	}
	if req.JoinDate != nil {
		if _, err := time.Parse(joinDateLayout, *req.JoinDate); err != nil {
			return nil, errors.New("Join date must be a valid YYYY-MM-DD date")
		}
		updates["join_date"] = *req.JoinDate
	}

	return updates, nil
}
