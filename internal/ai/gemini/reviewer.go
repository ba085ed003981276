package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/ai"
	"github.com/spigell/sesctl/internal/logger"
	"github.com/spigell/sesctl/internal/ses"
	"github.com/spigell/sesctl/internal/utils"
)

const (
	defaultMaxLogLength = 200
	maxNotesRunes       = 500

	systemInstruction = "You assist an engineering staffing company. You review candidates proposed by a matching engine and answer strictly in JSON."
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	notes     string
}

var _ ai.Reviewer = (*Reviewer)(nil)

func NewReviewer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reviewer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// SetNotes attaches free-form reviewer notes to every prompt.
func (r *Reviewer) SetNotes(notes string) {
	r.notes = notes
}

func (r *Reviewer) Model() string {
	if r.generator == nil {
		return ""
	}
	return r.generator.Model()
}

type candidatePayload struct {
	Score          float64             `json:"score"`
	MatchingSkills []string            `json:"matching_skills"`
	RecentProjects []string            `json:"recent_projects"`
	Summary        ses.EmployeeSummary `json:"summary"`
	Details        *ses.Employee       `json:"details,omitempty"`
}

// Review asks the model about one candidate. employee may be nil when the
// full record was not fetched.
func (r *Reviewer) Review(ctx context.Context, request *ses.MatchingRequest, result *ses.MatchingResult, employee *ses.Employee) (*ai.CandidateReview, error) {
	if request == nil {
		return nil, errors.New("matching request is required")
	}
	if result == nil {
		return nil, errors.New("matching result is required")
	}
	if r.generator == nil {
		return nil, errors.New("reviewer has no generator")
	}

	requestJSON, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal matching request: %w", err)
	}

	candidateJSON, err := json.MarshalIndent(candidatePayload{
		Score:          result.Score,
		MatchingSkills: result.MatchingSkills,
		RecentProjects: result.RecentProjects,
		Summary:        result.Employee,
		Details:        employee,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate: %w", err)
	}

	prompt := buildPrompt(string(requestJSON), string(candidateJSON), r.notes)

	log := r.logger.With(logger.Employee(result.Employee.ID))
	log.Debug("gemini review request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.Preview(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.Preview(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	review.Raw = raw

	return review, nil
}

func buildPrompt(requestJSON, candidateJSON, notes string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Notes:\n{{NOTES}}\n\nRequest:\n{{REQUEST_JSON}}\n\nCandidate:\n{{CANDIDATE_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{NOTES}}", notesBlock(notes))
	prompt = strings.ReplaceAll(prompt, "{{REQUEST_JSON}}", requestJSON)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_JSON}}", candidateJSON)
	return prompt
}

// notesBlock renders notes as an indented list. Square brackets are replaced
// so notes cannot open a new prompt section.
func notesBlock(notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "  - none"
	}

	runes := []rune(notes)
	if len(runes) > maxNotesRunes {
		notes = string(runes[:maxNotesRunes])
	}

	replacer := strings.NewReplacer("[", "(", "]", ")", "\t", " ")
	lines := make([]string, 0)
	for _, line := range strings.Split(notes, "\n") {
		line = strings.Join(strings.Fields(replacer.Replace(line)), " ")
		if line == "" {
			continue
		}
		lines = append(lines, "  - "+line)
	}
	return strings.Join(lines, "\n")
}

func parseResponse(raw string) (*ai.CandidateReview, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	return &ai.CandidateReview{
		Fit:      coerceBool(data["fit"]),
		Summary:  coerceString(data["summary"]),
		Concerns: coerceString(data["concerns"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
