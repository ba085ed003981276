package ses

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEmployeesSendsSinglePost(t *testing.T) {
	var (
		calls  atomic.Int32
		method string
		path   string
		body   string
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		method = r.Method
		path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		_, _ = io.WriteString(w, `[]`)
	})

	results, err := client.MatchEmployees(context.Background(), &MatchingRequest{RequiredSkills: []string{"Go"}})
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/employees/matching", path)
	assert.JSONEq(t, `{"required_skills":["Go"]}`, body)
}

func TestMatchEmployeesKeepsBackendOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[
			{"employee": {"id": 2, "name": "B", "years_experience": 1, "main_role": "Dev", "main_skills": ["Go"]}, "score": 1.0, "matching_skills": ["Go"], "recent_projects": []},
			{"employee": {"id": 1, "name": "A", "years_experience": 9, "main_role": "Dev", "main_skills": ["Go", "AWS"]}, "score": 4.5, "matching_skills": ["Go", "AWS"], "recent_projects": ["Billing", "Search"]},
			{"employee": {"id": 3, "name": "C", "years_experience": 4, "main_role": "Dev", "main_skills": ["Go"]}, "score": 1.0, "matching_skills": ["Go"], "recent_projects": ["Portal"]}
		]`)
	})

	results, err := client.MatchEmployees(context.Background(), &MatchingRequest{RequiredSkills: []string{"Go"}, PreferredSkills: []string{"AWS"}})
	require.NoError(t, err)
	require.Len(t, results, 3)

	ids := []int{results[0].Employee.ID, results[1].Employee.ID, results[2].Employee.ID}
	assert.Equal(t, []int{2, 1, 3}, ids)
	assert.Equal(t, []string{"Billing", "Search"}, results[1].RecentProjects)
	assert.Equal(t, "1 A / Dev / score 4.5 / Go, AWS", results[1].Summary())
}

func TestMatchEmployeesSerializesOptionalFilters(t *testing.T) {
	var body string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		_, _ = io.WriteString(w, `[]`)
	})

	start, err := ParseTimestamp("2024-04-01")
	require.NoError(t, err)
	lower, upper := 500000, 800000

	_, err = client.MatchEmployees(context.Background(), &MatchingRequest{
		RequiredSkills:  []string{"Go", "PostgreSQL"},
		PreferredSkills: []string{"Kubernetes"},
		RequiredPhases:  []string{"design", "implementation"},
		StartDate:       &start,
		UnitPriceMin:    &lower,
		UnitPriceMax:    &upper,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"required_skills": ["Go", "PostgreSQL"],
		"preferred_skills": ["Kubernetes"],
		"required_phases": ["design", "implementation"],
		"start_date": "2024-04-01T00:00:00",
		"unit_price_min": 500000,
		"unit_price_max": 800000
	}`, body)
}

func TestMatchingRequestValidate(t *testing.T) {
	lower, upper := 800000, 500000

	tests := []struct {
		name    string
		request MatchingRequest
		wantErr bool
	}{
		{name: "valid", request: MatchingRequest{RequiredSkills: []string{"Go"}}},
		{name: "no required skills", request: MatchingRequest{}, wantErr: true},
		{name: "blank required skill", request: MatchingRequest{RequiredSkills: []string{" "}}, wantErr: true},
		{name: "blank preferred skill", request: MatchingRequest{RequiredSkills: []string{"Go"}, PreferredSkills: []string{""}}, wantErr: true},
		{name: "inverted price range", request: MatchingRequest{RequiredSkills: []string{"Go"}, UnitPriceMin: &lower, UnitPriceMax: &upper}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
