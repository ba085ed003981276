package filtering

import (
	"slices"
	"strings"

	"github.com/spigell/sesctl/internal/ses"
)

// NewEmployeeText keeps employees whose name or main role contains term.
func NewEmployeeText(term string) Filter[ses.EmployeeSummary] {
	term = strings.TrimSpace(term)
	return &predicateFilter[ses.EmployeeSummary]{
		name:    "employee_text",
		enabled: term != "",
		details: map[string]string{"term": term},
		keep: func(e ses.EmployeeSummary) bool {
			return containsFold(e.Name, term) || containsFold(e.MainRole, term)
		},
	}
}

// NewEmployeeSkills keeps employees having every selected skill among their
// main skills, matching by substring.
func NewEmployeeSkills(skills []string) Filter[ses.EmployeeSummary] {
	skills = normalizeTerms(skills)
	return &predicateFilter[ses.EmployeeSummary]{
		name:    "employee_skills",
		enabled: len(skills) > 0,
		details: map[string]string{"skills": strings.Join(skills, ",")},
		keep: func(e ses.EmployeeSummary) bool {
			for _, skill := range skills {
				if !e.HasSkill(skill) {
					return false
				}
			}
			return true
		},
	}
}

// NewEmployeeAvailability keeps employees whose availability status is one
// of statuses. Employees without a status are dropped.
func NewEmployeeAvailability(statuses []ses.AvailabilityStatus) Filter[ses.EmployeeSummary] {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	return &predicateFilter[ses.EmployeeSummary]{
		name:    "employee_availability",
		enabled: len(statuses) > 0,
		details: map[string]string{"statuses": strings.Join(names, ",")},
		validate: func() error {
			for _, s := range names {
				if _, err := ses.ParseAvailabilityStatus(s); err != nil {
					return err
				}
			}
			return nil
		},
		keep: func(e ses.EmployeeSummary) bool {
			return e.AvailabilityStatus != nil && slices.Contains(statuses, *e.AvailabilityStatus)
		},
	}
}
