package ses

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const employeesPath = "/api/employees"

type Employee struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	YearsExperience int             `json:"years_experience"`
	MainRole        string          `json:"main_role"`
	UnitPriceMin    *int            `json:"unit_price_min,omitempty"`
	UnitPriceMax    *int            `json:"unit_price_max,omitempty"`
	DesiredCareer   *string         `json:"desired_career,omitempty"`
	CreatedAt       Timestamp       `json:"created_at"`
	UpdatedAt       Timestamp       `json:"updated_at"`
	Skills          []EmployeeSkill `json:"skills"`
	Projects        []Project       `json:"projects"`
	Availability    *Availability   `json:"availability,omitempty"`
	OneOnOnes       []OneOnOne      `json:"one_on_ones"`
}

// EmployeeSummary is the shape returned by list, search and matching.
type EmployeeSummary struct {
	ID                 int                 `json:"id"`
	Name               string              `json:"name"`
	YearsExperience    int                 `json:"years_experience"`
	MainRole           string              `json:"main_role"`
	UnitPriceMin       *int                `json:"unit_price_min,omitempty"`
	UnitPriceMax       *int                `json:"unit_price_max,omitempty"`
	AvailabilityStatus *AvailabilityStatus `json:"availability_status,omitempty"`
	MainSkills         []string            `json:"main_skills"`
}

type EmployeeSkill struct {
	SkillID         int    `json:"skill_id"`
	SkillName       string `json:"skill_name"`
	SkillCategory   string `json:"skill_category"`
	Level           int    `json:"level"`
	YearsExperience int    `json:"years_experience"`
}

// EmployeeSkillInput links an existing skill when creating an employee.
type EmployeeSkillInput struct {
	SkillID         int `json:"skill_id" validate:"required,gt=0"`
	Level           int `json:"level" validate:"gte=1,lte=5"`
	YearsExperience int `json:"years_experience" validate:"gte=0"`
}

type EmployeeCreate struct {
	Name            string               `json:"name" validate:"required"`
	YearsExperience int                  `json:"years_experience" validate:"gte=0"`
	MainRole        string               `json:"main_role" validate:"required"`
	UnitPriceMin    *int                 `json:"unit_price_min,omitempty" validate:"omitempty,gte=0"`
	UnitPriceMax    *int                 `json:"unit_price_max,omitempty" validate:"omitempty,gte=0"`
	DesiredCareer   *string              `json:"desired_career,omitempty"`
	Skills          []EmployeeSkillInput `json:"skills,omitempty" validate:"dive"`
}

// EmployeeUpdate carries only the fields to change.
type EmployeeUpdate struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1"`
	YearsExperience *int    `json:"years_experience,omitempty" validate:"omitempty,gte=0"`
	MainRole        *string `json:"main_role,omitempty" validate:"omitempty,min=1"`
	UnitPriceMin    *int    `json:"unit_price_min,omitempty" validate:"omitempty,gte=0"`
	UnitPriceMax    *int    `json:"unit_price_max,omitempty" validate:"omitempty,gte=0"`
	DesiredCareer   *string `json:"desired_career,omitempty"`
}

// Message is the acknowledgement body of delete endpoints.
type Message struct {
	Message string `json:"message"`
}

func (r *EmployeeCreate) Validate() error {
	return validatePriceRange(r.UnitPriceMin, r.UnitPriceMax)
}

func (r *EmployeeUpdate) Validate() error {
	return validatePriceRange(r.UnitPriceMin, r.UnitPriceMax)
}

func validatePriceRange(lower, upper *int) error {
	if lower != nil && upper != nil && *lower > *upper {
		return fmt.Errorf("unit price min %d is greater than max %d", *lower, *upper)
	}
	return nil
}

// HasSkill reports whether one of the main skills contains name,
// case-insensitively.
func (e *EmployeeSummary) HasSkill(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, skill := range e.MainSkills {
		if strings.Contains(strings.ToLower(skill), name) {
			return true
		}
	}
	return false
}

func (c *Client) ListEmployees(ctx context.Context, params *ListParams) ([]EmployeeSummary, error) {
	var employees []EmployeeSummary
	if err := c.Request(ctx, employeesPath, &RequestOptions{Query: buildQuery(params)}, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) SearchEmployees(ctx context.Context, params *EmployeeSearchParams) ([]EmployeeSummary, error) {
	var employees []EmployeeSummary
	if err := c.Request(ctx, employeesPath+"/search", &RequestOptions{Query: buildQuery(params)}, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int) (*Employee, error) {
	var employee Employee
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", employeesPath, id), nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) CreateEmployee(ctx context.Context, data *EmployeeCreate) (*Employee, error) {
	var employee Employee
	opts := &RequestOptions{Method: http.MethodPost, Body: data}
	if err := c.Request(ctx, employeesPath, opts, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int, data *EmployeeUpdate) (*Employee, error) {
	var employee Employee
	opts := &RequestOptions{Method: http.MethodPut, Body: data}
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", employeesPath, id), opts, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int) (*Message, error) {
	return c.delete(ctx, fmt.Sprintf("%s/%d", employeesPath, id))
}

func (c *Client) delete(ctx context.Context, endpoint string) (*Message, error) {
	var msg Message
	if err := c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodDelete}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
