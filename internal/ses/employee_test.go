package ses

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeesFixture = `[{"id":1,"name":"Taro Yamada","years_experience":7,"main_role":"Backend Engineer","unit_price_min":600000,"unit_price_max":800000,"availability_status":"working","main_skills":["Go","AWS","Docker"]}]`

func TestListEmployeesReturnsBackendArrayUnmodified(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/employees", r.URL.Path)
		_, _ = io.WriteString(w, employeesFixture)
	})

	var raw json.RawMessage
	require.NoError(t, client.Request(context.Background(), "/api/employees", nil, &raw))
	assert.Equal(t, employeesFixture, string(raw))

	employees, err := client.ListEmployees(context.Background(), nil)
	require.NoError(t, err)

	lower, upper := 600000, 800000
	status := StatusWorking
	expected := []EmployeeSummary{{
		ID:                 1,
		Name:               "Taro Yamada",
		YearsExperience:    7,
		MainRole:           "Backend Engineer",
		UnitPriceMin:       &lower,
		UnitPriceMax:       &upper,
		AvailabilityStatus: &status,
		MainSkills:         []string{"Go", "AWS", "Docker"},
	}}
	assert.Equal(t, expected, employees)

	encoded, err := json.Marshal(employees)
	require.NoError(t, err)
	assert.JSONEq(t, employeesFixture, string(encoded))
}

func TestListEmployeesPaging(t *testing.T) {
	var query url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = io.WriteString(w, `[]`)
	})

	employees, err := client.ListEmployees(context.Background(), &ListParams{Skip: 20, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, employees)
	assert.Equal(t, "20", query.Get("skip"))
	assert.Equal(t, "10", query.Get("limit"))
}

func TestSearchEmployeesBuildsCommaSeparatedFilters(t *testing.T) {
	var (
		path  string
		query url.Values
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := client.SearchEmployees(context.Background(), &EmployeeSearchParams{
		SkillTags:          []string{"Go", "AWS"},
		YearsExperienceMin: 3,
		AvailabilityStatus: []AvailabilityStatus{StatusAvailableNextMonth, StatusImmediatelyAvailable},
		UnitPriceMax:       700000,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/employees/search", path)
	assert.Equal(t, url.Values{
		"skill_tags":           []string{"Go,AWS"},
		"years_experience_min": []string{"3"},
		"availability_status":  []string{"available_next_month,immediately_available"},
		"unit_price_max":       []string{"700000"},
	}, query)
}

func TestGetEmployeeDecodesNestedRecords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/employees/5", r.URL.Path)
		_, _ = io.WriteString(w, `{
			"id": 5, "name": "Hanako", "years_experience": 3, "main_role": "Frontend",
			"desired_career": "Tech lead",
			"created_at": "2024-01-15T09:30:00", "updated_at": "2024-02-01T10:00:00.123456",
			"skills": [{"skill_id": 2, "skill_name": "React", "skill_category": "Frontend", "level": 4, "years_experience": 3}],
			"projects": [{"id": 9, "employee_id": 5, "title": "EC site", "role": "Developer", "start_date": "2023-04-01T00:00:00", "end_date": null, "tech_tags": "React, TypeScript ,", "created_at": "2023-04-01T00:00:00", "updated_at": "2023-04-01T00:00:00"}],
			"availability": {"id": 1, "employee_id": 5, "status": "available_next_month", "available_from": "2024-03-01T00:00:00", "memo": null, "created_at": "2024-01-15T09:30:00", "updated_at": "2024-01-15T09:30:00"},
			"one_on_ones": [{"id": 4, "employee_id": 5, "date": "2024-02-10T00:00:00", "memo": "ok", "status": "good", "created_at": "2024-02-10T00:00:00", "updated_at": "2024-02-10T00:00:00"}]
		}`)
	})

	employee, err := client.GetEmployee(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "Hanako", employee.Name)
	require.NotNil(t, employee.DesiredCareer)
	assert.Equal(t, "Tech lead", *employee.DesiredCareer)
	assert.Equal(t, "2024-01-15", employee.CreatedAt.Date())
	require.Len(t, employee.Skills, 1)
	assert.Equal(t, "React", employee.Skills[0].SkillName)
	require.Len(t, employee.Projects, 1)
	assert.Equal(t, []string{"React", "TypeScript"}, employee.Projects[0].Tags())
	assert.True(t, employee.Projects[0].Ongoing())
	require.NotNil(t, employee.Availability)
	assert.Equal(t, StatusAvailableNextMonth, employee.Availability.Status)
	assert.Equal(t, "2024-03-01", employee.Availability.AvailableFrom.Date())
	require.Len(t, employee.OneOnOnes, 1)
	assert.Equal(t, OneOnOneGood, employee.OneOnOnes[0].Status)
}

func TestCreateUpdateDeleteEmployee(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&c.body)
		}
		calls = append(calls, c)

		switch r.Method {
		case http.MethodDelete:
			_, _ = io.WriteString(w, `{"message":"Employee deleted successfully"}`)
		default:
			_, _ = io.WriteString(w, `{"id":11,"name":"Jiro","years_experience":2,"main_role":"QA","created_at":"2024-01-01T00:00:00","updated_at":"2024-01-01T00:00:00","skills":[],"projects":[],"one_on_ones":[]}`)
		}
	})

	ctx := context.Background()

	created, err := client.CreateEmployee(ctx, &EmployeeCreate{Name: "Jiro", YearsExperience: 2, MainRole: "QA"})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)

	role := "QA Lead"
	_, err = client.UpdateEmployee(ctx, 11, &EmployeeUpdate{MainRole: &role})
	require.NoError(t, err)

	msg, err := client.DeleteEmployee(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "Employee deleted successfully", msg.Message)

	require.Len(t, calls, 3)
	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(t, "/api/employees", calls[0].path)
	assert.Equal(t, map[string]any{"name": "Jiro", "years_experience": float64(2), "main_role": "QA"}, calls[0].body)

	assert.Equal(t, http.MethodPut, calls[1].method)
	assert.Equal(t, "/api/employees/11", calls[1].path)
	assert.Equal(t, map[string]any{"main_role": "QA Lead"}, calls[1].body)

	assert.Equal(t, http.MethodDelete, calls[2].method)
	assert.Equal(t, "/api/employees/11", calls[2].path)
}

func TestEmployeeSummaryHasSkill(t *testing.T) {
	e := &EmployeeSummary{MainSkills: []string{"TypeScript", "React"}}

	assert.True(t, e.HasSkill("script"))
	assert.True(t, e.HasSkill(" react "))
	assert.False(t, e.HasSkill("Go"))
}

func TestEmployeeCreateValidatePriceRange(t *testing.T) {
	lower, upper := 900000, 500000
	err := (&EmployeeCreate{Name: "a", MainRole: "b", UnitPriceMin: &lower, UnitPriceMax: &upper}).Validate()
	assert.Error(t, err)

	upper = 1000000
	assert.NoError(t, (&EmployeeCreate{Name: "a", MainRole: "b", UnitPriceMin: &lower, UnitPriceMax: &upper}).Validate())
	assert.NoError(t, (&EmployeeUpdate{UnitPriceMin: &lower}).Validate())
}
