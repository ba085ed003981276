package ses

import (
	"context"
	"fmt"
	"net/http"
)

const availabilityPath = "/api/availability"

type AvailabilityStatus string

const (
	StatusWorking              AvailabilityStatus = "working"
	StatusAvailableNextMonth   AvailabilityStatus = "available_next_month"
	StatusImmediatelyAvailable AvailabilityStatus = "immediately_available"
)

var availabilityLabels = map[AvailabilityStatus]string{
	StatusWorking:              "Working",
	StatusAvailableNextMonth:   "Available next month",
	StatusImmediatelyAvailable: "Immediately available",
}

func (s AvailabilityStatus) Valid() bool {
	_, ok := availabilityLabels[s]
	return ok
}

func (s AvailabilityStatus) Label() string {
	if label, ok := availabilityLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseAvailabilityStatus accepts the wire value of a status.
func ParseAvailabilityStatus(s string) (AvailabilityStatus, error) {
	status := AvailabilityStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown availability status %q (want one of %s, %s, %s)",
			s, StatusWorking, StatusAvailableNextMonth, StatusImmediatelyAvailable)
	}
	return status, nil
}

type Availability struct {
	ID            int                `json:"id"`
	EmployeeID    int                `json:"employee_id"`
	Status        AvailabilityStatus `json:"status"`
	AvailableFrom *Timestamp         `json:"available_from,omitempty"`
	Memo          *string            `json:"memo,omitempty"`
	CreatedAt     Timestamp          `json:"created_at"`
	UpdatedAt     Timestamp          `json:"updated_at"`
}

type AvailabilityCreate struct {
	EmployeeID    int                `json:"employee_id" validate:"required,gt=0"`
	Status        AvailabilityStatus `json:"status" validate:"required,oneof=working available_next_month immediately_available"`
	AvailableFrom *Timestamp         `json:"available_from,omitempty"`
	Memo          *string            `json:"memo,omitempty"`
}

type AvailabilityUpdate struct {
	Status        *AvailabilityStatus `json:"status,omitempty" validate:"omitempty,oneof=working available_next_month immediately_available"`
	AvailableFrom *Timestamp          `json:"available_from,omitempty"`
	Memo          *string             `json:"memo,omitempty"`
}

func (c *Client) ListAvailability(ctx context.Context, params *ListParams) ([]Availability, error) {
	var items []Availability
	if err := c.Request(ctx, availabilityPath, &RequestOptions{Query: buildQuery(params)}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetAvailability(ctx context.Context, employeeID int) (*Availability, error) {
	var availability Availability
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", availabilityPath, employeeID), nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

func (c *Client) CreateAvailability(ctx context.Context, data *AvailabilityCreate) (*Availability, error) {
	var availability Availability
	opts := &RequestOptions{Method: http.MethodPost, Body: data}
	if err := c.Request(ctx, availabilityPath, opts, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

func (c *Client) UpdateAvailability(ctx context.Context, employeeID int, data *AvailabilityUpdate) (*Availability, error) {
	var availability Availability
	opts := &RequestOptions{Method: http.MethodPut, Body: data}
	if err := c.Request(ctx, fmt.Sprintf("%s/%d", availabilityPath, employeeID), opts, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

func (c *Client) DeleteAvailability(ctx context.Context, employeeID int) (*Message, error) {
	return c.delete(ctx, fmt.Sprintf("%s/%d", availabilityPath, employeeID))
}
