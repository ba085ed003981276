package filtering

import (
	"fmt"
	"strings"
	"time"

	"github.com/spigell/sesctl/internal/ses"
)

// NewOneOnOneEmployee keeps check-ins whose employee name contains term.
func NewOneOnOneEmployee(term string) Filter[ses.OneOnOne] {
	term = strings.TrimSpace(term)
	return &predicateFilter[ses.OneOnOne]{
		name:    "one_on_one_employee",
		enabled: term != "",
		details: map[string]string{"term": term},
		keep: func(o ses.OneOnOne) bool {
			return containsFold(o.EmployeeName, term)
		},
	}
}

func NewOneOnOneStatus(status ses.OneOnOneStatus) Filter[ses.OneOnOne] {
	return &predicateFilter[ses.OneOnOne]{
		name:    "one_on_one_status",
		enabled: status != "",
		details: map[string]string{"status": string(status)},
		validate: func() error {
			_, err := ses.ParseOneOnOneStatus(string(status))
			return err
		},
		keep: func(o ses.OneOnOne) bool {
			return o.Status == status
		},
	}
}

// NewOneOnOneMonth keeps check-ins held in month, given as YYYY-MM.
func NewOneOnOneMonth(month string) Filter[ses.OneOnOne] {
	month = strings.TrimSpace(month)
	return &predicateFilter[ses.OneOnOne]{
		name:    "one_on_one_month",
		enabled: month != "",
		details: map[string]string{"month": month},
		validate: func() error {
			if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("month %q must look like YYYY-MM", month)
			}
			return nil
		},
		keep: func(o ses.OneOnOne) bool {
			return o.Date.Month() == month
		},
	}
}

// NewSkillName keeps catalog skills whose name contains term.
func NewSkillName(term string) Filter[ses.Skill] {
	term = strings.TrimSpace(term)
	return &predicateFilter[ses.Skill]{
		name:    "skill_name",
		enabled: term != "",
		details: map[string]string{"term": term},
		keep: func(s ses.Skill) bool {
			return containsFold(s.Name, term)
		},
	}
}
