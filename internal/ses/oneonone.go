package ses

import (
	"context"
	"fmt"
	"net/http"
)

const oneOnOnesPath = "/api/one-on-ones"

type OneOnOneStatus string

const (
	OneOnOneGood      OneOnOneStatus = "good"
	OneOnOneNormal    OneOnOneStatus = "normal"
	OneOnOneAttention OneOnOneStatus = "attention"
)

var oneOnOneLabels = map[OneOnOneStatus]string{
	OneOnOneGood:      "Good",
	OneOnOneNormal:    "Normal",
	OneOnOneAttention: "Attention",
}

func (s OneOnOneStatus) Valid() bool {
	_, ok := oneOnOneLabels[s]
	return ok
}

func (s OneOnOneStatus) Label() string {
	if label, ok := oneOnOneLabels[s]; ok {
		return label
	}
	return string(s)
}

func ParseOneOnOneStatus(s string) (OneOnOneStatus, error) {
	status := OneOnOneStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown one-on-one status %q (want one of %s, %s, %s)",
			s, OneOnOneGood, OneOnOneNormal, OneOnOneAttention)
	}
	return status, nil
}

// OneOnOne is a recorded check-in. EmployeeName is only filled by the list
// endpoint.
type OneOnOne struct {
	ID           int            `json:"id"`
	EmployeeID   int            `json:"employee_id"`
	EmployeeName string         `json:"employee_name,omitempty"`
	Date         Timestamp      `json:"date"`
	Memo         *string        `json:"memo,omitempty"`
	Status       OneOnOneStatus `json:"status"`
	CreatedAt    Timestamp      `json:"created_at"`
	UpdatedAt    Timestamp      `json:"updated_at"`
}

// OneOnOneCreate defaults to the normal status when Status is empty.
type OneOnOneCreate struct {
	EmployeeID int            `json:"employee_id" validate:"required,gt=0"`
	Date       Timestamp      `json:"date"`
	Memo       *string        `json:"memo,omitempty"`
	Status     OneOnOneStatus `json:"status,omitempty" validate:"omitempty,oneof=good normal attention"`
}

type OneOnOneUpdate struct {
	Date   *Timestamp      `json:"date,omitempty"`
	Memo   *string         `json:"memo,omitempty"`
	Status *OneOnOneStatus `json:"status,omitempty" validate:"omitempty,oneof=good normal attention"`
}

type CompletionRate struct {
	Year               int     `json:"year"`
	Month              int     `json:"month"`
	TotalEmployees     int     `json:"total_employees"`
	CompletedOneOnOnes int     `json:"completed_one_on_ones"`
	CompletionRate     float64 `json:"completion_rate"`
}

func (r *OneOnOneCreate) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

func (c *Client) ListOneOnOnes(ctx context.Context, params *OneOnOneListParams) ([]OneOnOne, error) {
	var items []OneOnOne
	if err := c.Request(ctx, oneOnOnesPath, &RequestOptions{Query: buildQuery(params)}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetOneOnOne(ctx context.Context, id int) (*OneOnOne, error) {
	var item OneOnOne
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", oneOnOnesPath, id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateOneOnOne(ctx context.Context, data *OneOnOneCreate) (*OneOnOne, error) {
	var item OneOnOne
	if err := c.Request(ctx, oneOnOnesPath, &RequestOptions{Method: http.MethodPost, Body: data}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateOneOnOne(ctx context.Context, id int, data *OneOnOneUpdate) (*OneOnOne, error) {
	var item OneOnOne
	opts := &RequestOptions{Method: http.MethodPut, Body: data}
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", oneOnOnesPath, id), opts, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteOneOnOne(ctx context.Context, id int) (*Message, error) {
	return c.delete(ctx, fmt.Sprintf("%s/%d", oneOnOnesPath, id))
}

func (c *Client) OneOnOneCompletionRate(ctx context.Context, params *CompletionRateParams) (*CompletionRate, error) {
	var rate CompletionRate
	opts := &RequestOptions{Query: buildQuery(params)}
	if err := c.Request(ctx, oneOnOnesPath+"/stats/completion-rate", opts, &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}
