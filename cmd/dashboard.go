package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spigell/sesctl/internal/ses"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show aggregated statistics",
}

var dashboardStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline numbers",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, _ *cobra.Command, s *session, _ []string) error {
		stats, err := s.client.DashboardStats(ctx)
		if err != nil {
			return fmt.Errorf("getting dashboard stats: %w", err)
		}

		return s.out.render(stats, func(w *tabwriter.Writer) {
			row(w, "Engineers:", strconv.Itoa(stats.TotalEmployees))
			row(w, "Available next month:", strconv.Itoa(stats.NextMonthAvailable))
			row(w, "One-on-one completion:", percent(stats.OneOnOneCompletionRate))
			row(w, "Needing attention:", strconv.Itoa(stats.AttentionEmployees))
		})
	}),
}

var dashboardSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show how many engineers hold skills per category, or per skill within --category",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		category, _ := cmd.Flags().GetString("category")

		if category == "" {
			distribution, err := s.client.SkillDistribution(ctx)
			if err != nil {
				return fmt.Errorf("getting skill distribution: %w", err)
			}
			return s.out.render(distribution, func(w *tabwriter.Writer) {
				row(w, "CATEGORY", "COUNT")
				for _, d := range distribution {
					row(w, d.Category, strconv.Itoa(d.Count))
				}
			})
		}

		counts, err := s.client.SkillDistributionByCategory(ctx, category)
		if err != nil {
			return fmt.Errorf("getting skill distribution for %q: %w", category, err)
		}
		return s.out.render(counts, func(w *tabwriter.Writer) {
			row(w, "SKILL", "COUNT")
			for _, c := range counts {
				row(w, c.Name, strconv.Itoa(c.Count))
			}
		})
	}),
}

var dashboardAvailabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Show engineers per availability status",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, _ *cobra.Command, s *session, _ []string) error {
		breakdown, err := s.client.AvailabilityBreakdown(ctx)
		if err != nil {
			return fmt.Errorf("getting availability breakdown: %w", err)
		}

		return s.out.render(breakdown, func(w *tabwriter.Writer) {
			row(w, "STATUS", "COUNT")
			for _, b := range breakdown {
				label := ses.AvailabilityStatus(b.Status).Label()
				if b.Status == ses.StatusNone {
					label = "No status"
				}
				row(w, label, strconv.Itoa(b.Count))
			}
		})
	}),
}

var dashboardRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the latest one-on-ones",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		recent, err := s.client.RecentOneOnOnes(ctx, limit)
		if err != nil {
			return fmt.Errorf("getting recent one-on-ones: %w", err)
		}

		return s.out.render(recent, func(w *tabwriter.Writer) {
			row(w, "ID", "EMPLOYEE", "DATE", "STATUS", "MEMO")
			for _, r := range recent {
				row(w, strconv.Itoa(r.ID), r.EmployeeName, r.Date.Date(), r.Status.Label(), orEmpty(r.Memo))
			}
		})
	}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.AddCommand(dashboardStatsCmd, dashboardSkillsCmd, dashboardAvailabilityCmd, dashboardRecentCmd)

	dashboardSkillsCmd.Flags().String("category", "", "break a category down by skill")
	dashboardRecentCmd.Flags().Int("limit", 0, "number of check-ins (backend default 10)")
}
