package ses

import (
	"net/url"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params any
		expect url.Values
	}{
		{
			name:   "nil params",
			params: nil,
			expect: url.Values{},
		},
		{
			name:   "nil pointer",
			params: (*ListParams)(nil),
			expect: url.Values{},
		},
		{
			name:   "zero values are skipped",
			params: &OneOnOneListParams{},
			expect: url.Values{},
		},
		{
			name:   "ints and strings",
			params: &SkillListParams{Limit: 20, Category: " Backend "},
			expect: url.Values{"limit": {"20"}, "category": {"Backend"}},
		},
		{
			name:   "comma joined slices drop blanks",
			params: &EmployeeSearchParams{SkillTags: []string{"Go", " ", "AWS"}},
			expect: url.Values{"skill_tags": {"Go,AWS"}},
		},
		{
			name: "repeated keys without comma option",
			params: &struct {
				Areas []int `query:"area"`
				Skip  bool  `query:"-"`
			}{Areas: []int{1, 2}, Skip: true},
			expect: url.Values{"area": {"1", "2"}},
		},
		{
			name:   "one-on-one month filter",
			params: &OneOnOneListParams{EmployeeID: 3, Year: 2024, Month: 2},
			expect: url.Values{"employee_id": {"3"}, "year": {"2024"}, "month": {"2"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := buildQuery(tt.params)
			if got.Encode() != tt.expect.Encode() {
				t.Fatalf("expected %q, got %q", tt.expect.Encode(), got.Encode())
			}
		})
	}
}
