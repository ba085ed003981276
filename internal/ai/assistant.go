package ai

import (
	"context"

	"github.com/spigell/sesctl/internal/ses"
)

// CandidateReview is a model's opinion on one matching result.
type CandidateReview struct {
	Fit      bool   `json:"fit"`
	Summary  string `json:"summary,omitempty"`
	Concerns string `json:"concerns,omitempty"`
	Raw      string `json:"-"`
	// Error is set when the review could not be produced.
	Error string `json:"error,omitempty"`
}

type Reviewer interface {
	Review(ctx context.Context, request *ses.MatchingRequest, result *ses.MatchingResult, employee *ses.Employee) (*CandidateReview, error)
	Model() string
}
