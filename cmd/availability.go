package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/logger"
	"github.com/spigell/sesctl/internal/ses"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Manage engineers' availability records",
}

var availabilityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List availability records",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		params := pagingFlags(cmd)
		records, err := s.client.ListAvailability(ctx, &params)
		if err != nil {
			return fmt.Errorf("listing availability: %w", err)
		}

		return s.out.render(records, func(w *tabwriter.Writer) {
			row(w, "EMPLOYEE", "STATUS", "AVAILABLE FROM", "MEMO", "UPDATED")
			for i := range records {
				writeAvailabilityRow(w, &records[i])
			}
		})
	}),
}

var availabilityGetCmd = &cobra.Command{
	Use:   "get <employee-id>",
	Short: "Show the availability of an engineer",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, _ *cobra.Command, s *session, employeeID int) error {
		record, err := s.client.GetAvailability(ctx, employeeID)
		if err != nil {
			if ses.IsNotFound(err) {
				return fmt.Errorf("employee %d has no availability record", employeeID)
			}
			return fmt.Errorf("getting availability of employee %d: %w", employeeID, err)
		}
		return printAvailability(s.out, record)
	}),
}

var availabilityCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an availability record from a payload file",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		var data ses.AvailabilityCreate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		record, err := s.client.CreateAvailability(ctx, &data)
		if err != nil {
			return fmt.Errorf("creating availability: %w", err)
		}

		s.logger.Info("availability created", logger.Employee(record.EmployeeID), zap.String("status", string(record.Status)))
		return printAvailability(s.out, record)
	}),
}

var availabilityUpdateCmd = &cobra.Command{
	Use:   "update <employee-id>",
	Short: "Update the availability of an engineer from a payload file",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, employeeID int) error {
		var data ses.AvailabilityUpdate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		record, err := s.client.UpdateAvailability(ctx, employeeID, &data)
		if err != nil {
			return fmt.Errorf("updating availability of employee %d: %w", employeeID, err)
		}

		s.logger.Info("availability updated", logger.Employee(record.EmployeeID))
		return printAvailability(s.out, record)
	}),
}

var availabilityDeleteCmd = &cobra.Command{
	Use:   "delete <employee-id>",
	Short: "Delete the availability record of an engineer",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, employeeID int) error {
		return deleteWith(cmd, s, fmt.Sprintf("availability of employee %d", employeeID), func() (*ses.Message, error) {
			return s.client.DeleteAvailability(ctx, employeeID)
		})
	}),
}

func init() {
	rootCmd.AddCommand(availabilityCmd)
	availabilityCmd.AddCommand(availabilityListCmd, availabilityGetCmd, availabilityCreateCmd,
		availabilityUpdateCmd, availabilityDeleteCmd)

	addPagingFlags(availabilityListCmd)
	addFileFlag(availabilityCreateCmd)
	addFileFlag(availabilityUpdateCmd)
	addYesFlag(availabilityDeleteCmd)
}

func writeAvailabilityRow(w *tabwriter.Writer, a *ses.Availability) {
	row(w, strconv.Itoa(a.EmployeeID), a.Status.Label(), dateOrEmpty(a.AvailableFrom), orEmpty(a.Memo), a.UpdatedAt.Date())
}

func printAvailability(out *printer, a *ses.Availability) error {
	return out.render(a, func(w *tabwriter.Writer) {
		row(w, "EMPLOYEE", "STATUS", "AVAILABLE FROM", "MEMO", "UPDATED")
		writeAvailabilityRow(w, a)
	})
}
