package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const joinDateLayout = "2006-01-02"

// EmployeesHandler manages employee CRUD and statistics endpoints. All routes
// sit behind the bearer middleware.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List handles GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	filter := repository.EmployeeFilter{}

	// Status defaults to active so deactivated employees stay hidden unless
	// asked for. An explicitly empty status disables the filter.
	if c.Context().QueryArgs().Has("status") {
		if status := c.Query("status"); status != "" {
			s := domain.EmployeeStatus(status)
			filter.Status = &s
		}
	} else {
		s := domain.EmployeeStatusActive
		filter.Status = &s
	}

	if deptStr := c.Query("department_id"); deptStr != "" {
		deptID, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid department ID")
		}
		filter.DepartmentID = &deptID
	}
	filter.Search = c.Query("search")

	employees, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := dto.NewEmployeeResponses(employees)
	return c.JSON(fiber.Map{
		"status":    "success",
		"count":     len(items),
		"employees": items,
	})
}

// Get handles GET /api/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	emp, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":   "success",
		"employee": dto.NewEmployeeResponse(emp),
	})
}

// Create handles POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.DepartmentID == nil {
		return apperrors.NewValidationError("missing required fields: name, email, department_id")
	}

	var joinDate *time.Time
	if req.JoinDate != nil && *req.JoinDate != "" {
		parsed, err := time.Parse(joinDateLayout, *req.JoinDate)
		if err != nil {
			return apperrors.NewValidationError("invalid join date, use YYYY-MM-DD")
		}
		joinDate = &parsed
	}

	input := service.CreateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: *req.DepartmentID,
		Salary:       req.Salary,
		JoinDate:     joinDate,
		Status:       domain.EmployeeStatus(req.Status),
	}
	id, err := h.service.Create(c.Context(), actorFromContext(c), input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status":      "success",
		"message":     "Employee created successfully",
		"employee_id": id,
	})
}

// Update handles PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("no data provided")
	}

	if err := h.service.Update(c.Context(), actorFromContext(c), id, body); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Employee updated successfully",
	})
}

// Delete handles DELETE /api/employees/:id. Soft delete only.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	if err := h.service.Deactivate(c.Context(), actorFromContext(c), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Employee deactivated successfully",
	})
}

// Stats handles GET /api/employees/stats.
func (h *EmployeesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"stats":  stats,
	})
}

func parseEmployeeID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("employee")
	}
	return id, nil
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return events.Actor{UserID: principal.UserID, Username: principal.Username}
	}
	return events.Actor{}
}
