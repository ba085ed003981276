package ses

import (
	"context"
	"fmt"
	"net/http"
)

const skillsPath = "/api/skills"

type Skill struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt Timestamp `json:"created_at"`
}

type SkillCreate struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

func (c *Client) ListSkills(ctx context.Context, params *SkillListParams) ([]Skill, error) {
	var skills []Skill
	if err := c.Request(ctx, skillsPath, &RequestOptions{Query: buildQuery(params)}, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (c *Client) SkillCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.Request(ctx, skillsPath+"/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateSkill(ctx context.Context, data *SkillCreate) (*Skill, error) {
	var skill Skill
	if err := c.Request(ctx, skillsPath, &RequestOptions{Method: http.MethodPost, Body: data}, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

func (c *Client) DeleteSkill(ctx context.Context, id int) (*Message, error) {
	return c.delete(ctx, fmt.Sprintf("%s/%d", skillsPath, id))
}
