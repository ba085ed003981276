package ses

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const projectsPath = "/api/projects"

type Project struct {
	ID                  int        `json:"id"`
	EmployeeID          int        `json:"employee_id"`
	Title               string     `json:"title"`
	Role                string     `json:"role"`
	StartDate           Timestamp  `json:"start_date"`
	EndDate             *Timestamp `json:"end_date,omitempty"`
	Description         *string    `json:"description,omitempty"`
	TechTags            *string    `json:"tech_tags,omitempty"`
	PhaseRequirements   *string    `json:"phase_requirements,omitempty"`
	PhaseDesign         *string    `json:"phase_design,omitempty"`
	PhaseImplementation *string    `json:"phase_implementation,omitempty"`
	PhaseTesting        *string    `json:"phase_testing,omitempty"`
	CreatedAt           Timestamp  `json:"created_at"`
	UpdatedAt           Timestamp  `json:"updated_at"`
}

type ProjectCreate struct {
	EmployeeID          int        `json:"employee_id" validate:"required,gt=0"`
	Title               string     `json:"title" validate:"required"`
	Role                string     `json:"role" validate:"required"`
	StartDate           Timestamp  `json:"start_date"`
	EndDate             *Timestamp `json:"end_date,omitempty"`
	Description         *string    `json:"description,omitempty"`
	TechTags            *string    `json:"tech_tags,omitempty"`
	PhaseRequirements   *string    `json:"phase_requirements,omitempty"`
	PhaseDesign         *string    `json:"phase_design,omitempty"`
	PhaseImplementation *string    `json:"phase_implementation,omitempty"`
	PhaseTesting        *string    `json:"phase_testing,omitempty"`
}

type ProjectUpdate struct {
	Title               *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Role                *string    `json:"role,omitempty" validate:"omitempty,min=1"`
	StartDate           *Timestamp `json:"start_date,omitempty"`
	EndDate             *Timestamp `json:"end_date,omitempty"`
	Description         *string    `json:"description,omitempty"`
	TechTags            *string    `json:"tech_tags,omitempty"`
	PhaseRequirements   *string    `json:"phase_requirements,omitempty"`
	PhaseDesign         *string    `json:"phase_design,omitempty"`
	PhaseImplementation *string    `json:"phase_implementation,omitempty"`
	PhaseTesting        *string    `json:"phase_testing,omitempty"`
}

func (r *ProjectCreate) Validate() error {
	if r.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	return validateDateRange(&r.StartDate, r.EndDate)
}

func (r *ProjectUpdate) Validate() error {
	return validateDateRange(r.StartDate, r.EndDate)
}

func validateDateRange(start, end *Timestamp) error {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start.Time) {
		return fmt.Errorf("end_date %s is before start_date %s", end.Date(), start.Date())
	}
	return nil
}

// Tags splits the comma separated tech_tags field.
func (p *Project) Tags() []string {
	if p.TechTags == nil {
		return nil
	}

	tags := make([]string, 0)
	for _, tag := range strings.Split(*p.TechTags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Ongoing reports whether the project has no end date.
func (p *Project) Ongoing() bool {
	return p.EndDate == nil || p.EndDate.IsZero()
}

func (c *Client) ListProjects(ctx context.Context, params *ProjectListParams) ([]Project, error) {
	var projects []Project
	if err := c.Request(ctx, projectsPath, &RequestOptions{Query: buildQuery(params)}, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	var project Project
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", projectsPath, id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, data *ProjectCreate) (*Project, error) {
	var project Project
	if err := c.Request(ctx, projectsPath, &RequestOptions{Method: http.MethodPost, Body: data}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int, data *ProjectUpdate) (*Project, error) {
	var project Project
	opts := &RequestOptions{Method: http.MethodPut, Body: data}
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", projectsPath, id), opts, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int) (*Message, error) {
	return c.delete(ctx, fmt.Sprintf("%s/%d", projectsPath, id))
}
