package ses

import (
	"context"
	"net/url"
	"strconv"
)

const dashboardPath = "/api/dashboard"

// StatusNone is reported by the availability breakdown for employees
// without an availability record.
const StatusNone = "no_status"

type DashboardStats struct {
	TotalEmployees         int     `json:"total_employees"`
	NextMonthAvailable     int     `json:"next_month_available"`
	OneOnOneCompletionRate float64 `json:"one_on_one_completion_rate"`
	AttentionEmployees     int     `json:"attention_employees"`
}

type SkillDistribution struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type SkillCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AvailabilityCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RecentOneOnOne struct {
	ID           int            `json:"id"`
	EmployeeName string         `json:"employee_name"`
	Date         Timestamp      `json:"date"`
	Status       OneOnOneStatus `json:"status"`
	Memo         *string        `json:"memo,omitempty"`
}

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.Request(ctx, dashboardPath+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) SkillDistribution(ctx context.Context) ([]SkillDistribution, error) {
	var items []SkillDistribution
	if err := c.Request(ctx, dashboardPath+"/skill-distribution", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) SkillDistributionByCategory(ctx context.Context, category string) ([]SkillCount, error) {
	var items []SkillCount
	endpoint := dashboardPath + "/skill-distribution/" + url.PathEscape(category)
	if err := c.Request(ctx, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AvailabilityBreakdown(ctx context.Context) ([]AvailabilityCount, error) {
	var items []AvailabilityCount
	if err := c.Request(ctx, dashboardPath+"/availability-status", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RecentOneOnOnes lists the latest check-ins. A non-positive limit leaves
// the backend default in place.
func (c *Client) RecentOneOnOnes(ctx context.Context, limit int) ([]RecentOneOnOne, error) {
	opts := &RequestOptions{}
	if limit > 0 {
		opts.Query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	var items []RecentOneOnOne
	if err := c.Request(ctx, dashboardPath+"/recent-one-on-ones", opts, &items); err != nil {
		return nil, err
	}
	return items, nil
}
