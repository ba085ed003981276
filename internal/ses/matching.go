package ses

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const matchingPath = employeesPath + "/matching"

// MatchingRequest describes a project to staff. Scoring happens on the
// backend; the client only carries the request.
type MatchingRequest struct {
	RequiredSkills  []string   `json:"required_skills" validate:"required,min=1,dive,required"`
	PreferredSkills []string   `json:"preferred_skills,omitempty" validate:"dive,required"`
	RequiredPhases  []string   `json:"required_phases,omitempty"`
	StartDate       *Timestamp `json:"start_date,omitempty"`
	UnitPriceMin    *int       `json:"unit_price_min,omitempty" validate:"omitempty,gte=0"`
	UnitPriceMax    *int       `json:"unit_price_max,omitempty" validate:"omitempty,gte=0"`
}

// MatchingResult is one candidate as ranked by the backend.
type MatchingResult struct {
	Employee       EmployeeSummary `json:"employee"`
	Score          float64         `json:"score"`
	MatchingSkills []string        `json:"matching_skills"`
	RecentProjects []string        `json:"recent_projects"`
}

func (r *MatchingRequest) Validate() error {
	if len(r.RequiredSkills) == 0 {
		return errors.New("at least one required skill is needed")
	}
	for _, skill := range append(append([]string{}, r.RequiredSkills...), r.PreferredSkills...) {
		if strings.TrimSpace(skill) == "" {
			return errors.New("skill names must not be blank")
		}
	}
	return validatePriceRange(r.UnitPriceMin, r.UnitPriceMax)
}

// Summary renders the result as a single human readable line.
func (r *MatchingResult) Summary() string {
	return fmt.Sprintf("%d %s / %s / score %.1f / %s",
		r.Employee.ID, r.Employee.Name, r.Employee.MainRole, r.Score, strings.Join(r.MatchingSkills, ", "))
}

// MatchEmployees sends exactly one POST and returns the candidates in the
// order the backend ranked them.
func (c *Client) MatchEmployees(ctx context.Context, data *MatchingRequest) ([]MatchingResult, error) {
	var results []MatchingResult
	if err := c.Request(ctx, matchingPath, &RequestOptions{Method: http.MethodPost, Body: data}, &results); err != nil {
		return nil, err
	}
	return results, nil
}
