package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/filtering"
	"github.com/spigell/sesctl/internal/logger"
	"github.com/spigell/sesctl/internal/ses"
)

var oneOnOnesCmd = &cobra.Command{
	Use:     "one-on-ones",
	Aliases: []string{"1on1", "oneonones"},
	Short:   "Manage one-on-one check-ins",
}

var oneOnOnesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one-on-ones, optionally narrowed by engineer name, status or month",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		flags := cmd.Flags()
		paging := pagingFlags(cmd)

		params := ses.OneOnOneListParams{Skip: paging.Skip, Limit: paging.Limit}
		params.EmployeeID, _ = flags.GetInt("employee-id")
		params.Year, _ = flags.GetInt("year")
		params.Month, _ = flags.GetInt("month")

		name, _ := flags.GetString("name")
		status, _ := flags.GetString("status")
		month, _ := flags.GetString("in")

		items, err := s.client.ListOneOnOnes(ctx, &params)
		if err != nil {
			return fmt.Errorf("listing one-on-ones: %w", err)
		}

		items, err = applyFilters(ctx, s, items,
			filtering.NewOneOnOneEmployee(name),
			filtering.NewOneOnOneStatus(ses.OneOnOneStatus(status)),
			filtering.NewOneOnOneMonth(month),
		)
		if err != nil {
			return fmt.Errorf("filtering one-on-ones: %w", err)
		}

		return printOneOnOnes(s.out, items)
	}),
}

var oneOnOnesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a one-on-one",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, _ *cobra.Command, s *session, id int) error {
		item, err := s.client.GetOneOnOne(ctx, id)
		if err != nil {
			return fmt.Errorf("getting one-on-one %d: %w", id, err)
		}
		return printOneOnOnes(s.out, []ses.OneOnOne{*item})
	}),
}

var oneOnOnesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a one-on-one from a payload file",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		var data ses.OneOnOneCreate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		item, err := s.client.CreateOneOnOne(ctx, &data)
		if err != nil {
			return fmt.Errorf("creating one-on-one: %w", err)
		}

		s.logger.Info("one-on-one created", zap.Int("id", item.ID), logger.Employee(item.EmployeeID))
		return printOneOnOnes(s.out, []ses.OneOnOne{*item})
	}),
}

var oneOnOnesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a one-on-one from a payload file with the fields to change",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, id int) error {
		var data ses.OneOnOneUpdate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		item, err := s.client.UpdateOneOnOne(ctx, id, &data)
		if err != nil {
			return fmt.Errorf("updating one-on-one %d: %w", id, err)
		}

		s.logger.Info("one-on-one updated", zap.Int("id", item.ID))
		return printOneOnOnes(s.out, []ses.OneOnOne{*item})
	}),
}

var oneOnOnesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a one-on-one",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, id int) error {
		return deleteWith(cmd, s, fmt.Sprintf("one-on-one %d", id), func() (*ses.Message, error) {
			return s.client.DeleteOneOnOne(ctx, id)
		})
	}),
}

var oneOnOnesCompletionCmd = &cobra.Command{
	Use:   "completion-rate",
	Short: "Show the share of engineers with a one-on-one in a month",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		var params ses.CompletionRateParams
		params.Year, _ = cmd.Flags().GetInt("year")
		params.Month, _ = cmd.Flags().GetInt("month")

		if params.Month < 0 || params.Month > 12 {
			return fmt.Errorf("month %d is out of range", params.Month)
		}

		rate, err := s.client.OneOnOneCompletionRate(ctx, &params)
		if err != nil {
			return fmt.Errorf("getting completion rate: %w", err)
		}

		return s.out.render(rate, func(w *tabwriter.Writer) {
			row(w, "Month:", fmt.Sprintf("%04d-%02d", rate.Year, rate.Month))
			row(w, "Engineers:", strconv.Itoa(rate.TotalEmployees))
			row(w, "Completed:", strconv.Itoa(rate.CompletedOneOnOnes))
			row(w, "Rate:", percent(rate.CompletionRate))
		})
	}),
}

func init() {
	rootCmd.AddCommand(oneOnOnesCmd)
	oneOnOnesCmd.AddCommand(oneOnOnesListCmd, oneOnOnesGetCmd, oneOnOnesCreateCmd,
		oneOnOnesUpdateCmd, oneOnOnesDeleteCmd, oneOnOnesCompletionCmd)

	addPagingFlags(oneOnOnesListCmd)
	oneOnOnesListCmd.Flags().Int("employee-id", 0, "only check-ins of this engineer")
	oneOnOnesListCmd.Flags().Int("year", 0, "only check-ins in this year")
	oneOnOnesListCmd.Flags().Int("month", 0, "only check-ins in this month (1-12)")
	oneOnOnesListCmd.Flags().String("name", "", "keep check-ins whose engineer name contains the text")
	oneOnOnesListCmd.Flags().String("status", "", "keep check-ins with this status (good, normal, attention)")
	oneOnOnesListCmd.Flags().String("in", "", "keep check-ins held in this month (YYYY-MM)")

	oneOnOnesCompletionCmd.Flags().Int("year", 0, "year (default current)")
	oneOnOnesCompletionCmd.Flags().Int("month", 0, "month 1-12 (default current)")

	addFileFlag(oneOnOnesCreateCmd)
	addFileFlag(oneOnOnesUpdateCmd)
	addYesFlag(oneOnOnesDeleteCmd)
}

func printOneOnOnes(out *printer, items []ses.OneOnOne) error {
	return out.render(items, func(w *tabwriter.Writer) {
		row(w, "ID", "EMPLOYEE", "DATE", "STATUS", "MEMO")
		for _, o := range items {
			employee := strconv.Itoa(o.EmployeeID)
			if o.EmployeeName != "" {
				employee = o.EmployeeName
			}
			row(w, strconv.Itoa(o.ID), employee, o.Date.Date(), o.Status.Label(), orEmpty(o.Memo))
		}
	})
}
