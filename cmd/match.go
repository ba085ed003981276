package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/sesctl/internal/ai"
	"github.com/spigell/sesctl/internal/ai/gemini"
	"github.com/spigell/sesctl/internal/logger"
	"github.com/spigell/sesctl/internal/payload"
	"github.com/spigell/sesctl/internal/secrets"
	"github.com/spigell/sesctl/internal/ses"
)

const PromptExit = "exit"

var errExit = errors.New("exit requested")

// candidate is one matching result with its optional AI review.
type candidate struct {
	Result ses.MatchingResult  `json:"result"`
	Review *ai.CandidateReview `json:"review,omitempty"`
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find engineers for a project",
	Long: `Find engineers for a project. The backend scores and ranks the candidates;
results are shown in the order it returns them.

The request comes from flags or from a payload file (-f) with the keys
required_skills, preferred_skills, required_phases, start_date,
unit_price_min and unit_price_max.`,
	Args: cobra.NoArgs,
	RunE: run(match),
}

func init() {
	rootCmd.AddCommand(matchCmd)

	flags := matchCmd.Flags()
	flags.StringP("file", "f", "", "YAML or JSON matching request, - for stdin")
	flags.StringSliceP("required", "r", nil, "required skills")
	flags.StringSliceP("preferred", "p", nil, "preferred skills")
	flags.StringSlice("phase", nil, "required phases (requirements, design, implementation, testing)")
	flags.String("start-date", "", "project start date (YYYY-MM-DD)")
	flags.Int("price-min", 0, "minimum unit price in yen")
	flags.Int("price-max", 0, "maximum unit price in yen")
	flags.BoolP("interactive", "i", false, "browse candidates and open their full records")
	flags.Bool("ai-review", false, "ask Gemini to review every candidate")
	flags.String("notes", "", "notes passed to the AI reviewer")

	viper.BindPFlag("ai.enabled", flags.Lookup("ai-review"))
	viper.BindPFlag("ai.notes", flags.Lookup("notes"))

	for _, name := range []string{"required", "preferred", "phase", "start-date", "price-min", "price-max"} {
		matchCmd.MarkFlagsMutuallyExclusive("file", name)
	}
}

func match(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
	request, err := matchingRequest(cmd)
	if err != nil {
		return err
	}

	if err := payload.Validate(request); err != nil {
		return err
	}

	s.logger.Info("starting the matching", zap.Strings("required_skills", request.RequiredSkills))

	results, err := s.client.MatchEmployees(ctx, request)
	if err != nil {
		return fmt.Errorf("matching employees: %w", err)
	}

	s.logger.Info("got candidates", zap.Int("count", len(results)))

	candidates := make([]candidate, len(results))
	for i := range results {
		candidates[i] = candidate{Result: results[i]}
	}

	if s.config.AI != nil && s.config.AI.Enabled && len(candidates) > 0 {
		reviewer, err := newReviewer(ctx, s.config.AI, s.logger)
		if err != nil {
			return fmt.Errorf("building ai reviewer: %w", err)
		}
		reviewCandidates(ctx, s, reviewer, request, candidates, s.config.AI.Concurrency)
	}

	if err := printCandidates(s.out, candidates); err != nil {
		return err
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive && len(candidates) > 0 {
		if err := browse(ctx, s, candidates); err != nil && !errors.Is(err, errExit) {
			return err
		}
	}

	return nil
}

func matchingRequest(cmd *cobra.Command) (*ses.MatchingRequest, error) {
	flags := cmd.Flags()

	request := &ses.MatchingRequest{}
	if path, _ := flags.GetString("file"); path != "" {
		if err := payload.Load(path, request); err != nil {
			return nil, err
		}
		return request, nil
	}

	request.RequiredSkills, _ = flags.GetStringSlice("required")
	request.PreferredSkills, _ = flags.GetStringSlice("preferred")
	request.RequiredPhases, _ = flags.GetStringSlice("phase")

	if value, _ := flags.GetString("start-date"); value != "" {
		start, err := ses.ParseTimestamp(value)
		if err != nil {
			return nil, fmt.Errorf("start-date: %w", err)
		}
		request.StartDate = &start
	}

	if flags.Changed("price-min") {
		v, _ := flags.GetInt("price-min")
		request.UnitPriceMin = &v
	}
	if flags.Changed("price-max") {
		v, _ := flags.GetInt("price-max")
		request.UnitPriceMax = &v
	}

	return request, nil
}

var newReviewer = func(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Reviewer, error) {
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai review is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
		log.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)))
	if err != nil {
		return nil, err
	}

	reviewer := gemini.NewReviewer(generator, cfg.Gemini.MaxLogLength,
		logger.ForModel(log, "gemini", generator.Model()))
	reviewer.SetNotes(cfg.Notes)

	return reviewer, nil
}

// reviewCandidates attaches a review to every candidate, running at most
// concurrency reviews at once. A failed review is recorded on the candidate
// and never aborts the matching.
func reviewCandidates(ctx context.Context, s *session, reviewer ai.Reviewer, request *ses.MatchingRequest, candidates []candidate, concurrency int) {
	if concurrency < 1 {
		concurrency = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := range candidates {
		c := &candidates[i]
		g.Go(func() error {
			c.Review = reviewCandidate(ctx, s, reviewer, request, &c.Result)
			return nil
		})
	}

	_ = g.Wait()
}

func reviewCandidate(ctx context.Context, s *session, reviewer ai.Reviewer, request *ses.MatchingRequest, result *ses.MatchingResult) *ai.CandidateReview {
	log := s.logger.With(logger.Employee(result.Employee.ID))

	employee, err := s.client.GetEmployee(ctx, result.Employee.ID)
	if err != nil {
		log.Warn("reviewing without full record", zap.Error(err))
	}

	review, err := reviewer.Review(ctx, request, result, employee)
	if err != nil {
		log.Warn("ai review failed", zap.Error(err))
		return &ai.CandidateReview{Error: err.Error()}
	}

	log.Debug("ai review", zap.Bool("fit", review.Fit))
	return review
}

func reviewCell(r *ai.CandidateReview) string {
	switch {
	case r == nil:
		return emptyCell
	case r.Error != "":
		return "review failed"
	case r.Fit:
		return "fit: " + r.Summary
	default:
		return "no fit: " + r.Summary
	}
}

func printCandidates(out *printer, candidates []candidate) error {
	return out.render(candidates, func(w *tabwriter.Writer) {
		reviewed := false
		for _, c := range candidates {
			if c.Review != nil {
				reviewed = true
				break
			}
		}

		header := []string{"#", "ID", "NAME", "ROLE", "SCORE", "MATCHING SKILLS", "RECENT PROJECTS", "AVAILABILITY"}
		if reviewed {
			header = append(header, "AI REVIEW")
		}
		row(w, header...)

		for i, c := range candidates {
			cells := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(c.Result.Employee.ID),
				c.Result.Employee.Name,
				c.Result.Employee.MainRole,
				strconv.FormatFloat(c.Result.Score, 'f', 1, 64),
				strings.Join(c.Result.MatchingSkills, ", "),
				strings.Join(c.Result.RecentProjects, ", "),
				availabilityLabel(c.Result.Employee.AvailabilityStatus),
			}
			if reviewed {
				cells = append(cells, reviewCell(c.Review))
			}
			row(w, cells...)
		}
	})
}

var selectCandidate = func(items []string) (string, error) {
	prompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: items,
		Size:  10,
	}
	_, selected, err := prompt.Run()
	return selected, err
}

// browse lets the user open full records of candidates until exit.
func browse(ctx context.Context, s *session, candidates []candidate) error {
	items := make([]string, 0, len(candidates)+1)
	for i := range candidates {
		items = append(items, candidates[i].Result.Summary())
	}
	items = append(items, PromptExit)

	for {
		selected, err := selectCandidate(items)
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return errExit
			}
			return err
		}

		if selected == PromptExit {
			return errExit
		}

		id, err := strconv.Atoi(strings.SplitN(selected, " ", 2)[0])
		if err != nil {
			return fmt.Errorf("there is no such candidate %q", selected)
		}

		employee, err := s.client.GetEmployee(ctx, id)
		if err != nil {
			return fmt.Errorf("getting employee %d: %w", id, err)
		}

		if err := printBrowsed(s.out, employee, reviewOf(candidates, id)); err != nil {
			return err
		}
	}
}

func reviewOf(candidates []candidate, id int) *ai.CandidateReview {
	for i := range candidates {
		if candidates[i].Result.Employee.ID == id {
			return candidates[i].Review
		}
	}
	return nil
}

// printBrowsed shows a full record opened from the candidate browser with
// its AI review, as one JSON document in json mode.
func printBrowsed(out *printer, employee *ses.Employee, review *ai.CandidateReview) error {
	if out.json() {
		return out.writeJSON(struct {
			Employee *ses.Employee       `json:"employee"`
			Review   *ai.CandidateReview `json:"review,omitempty"`
		}{employee, review})
	}

	if err := printEmployee(out, employee); err != nil {
		return err
	}

	if review == nil || review.Error != "" {
		return nil
	}

	return out.render(review, func(w *tabwriter.Writer) {
		row(w)
		row(w, "AI review:", reviewCell(review))
		row(w, "Concerns:", orEmpty(&review.Concerns))
	})
}
