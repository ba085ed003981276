package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/filtering"
	"github.com/spigell/sesctl/internal/payload"
	"github.com/spigell/sesctl/internal/ses"
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "YAML or JSON payload file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
}

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("skip", 0, "number of records to skip")
	cmd.Flags().Int("limit", 0, "maximum number of records to return (backend default 100)")
}

func pagingFlags(cmd *cobra.Command) ses.ListParams {
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	return ses.ListParams{Skip: skip, Limit: limit}
}

// loadPayload reads and validates the --file payload into target before any
// request is made.
func loadPayload(cmd *cobra.Command, target any) error {
	path, _ := cmd.Flags().GetString("file")
	return payload.LoadAndValidate(path, target)
}

func addYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

// deleteWith confirms and performs a delete of the resource named by what.
func deleteWith(cmd *cobra.Command, s *session, what string, del func() (*ses.Message, error)) error {
	yes, _ := cmd.Flags().GetBool("yes")
	ok, err := confirm(fmt.Sprintf("Delete %s", what), yes)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return nil
	}

	msg, err := del()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", what, err)
	}

	s.logger.Info("deleted", zap.String("resource", what))
	return s.out.message(msg)
}

// idCommand builds a handler for commands taking a single id argument.
func idCommand(fn func(ctx context.Context, cmd *cobra.Command, s *session, id int) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
			return fn(ctx, cmd, s, id)
		})(cmd, args)
	}
}

// applyFilters runs the client-side filters over items fetched from the
// backend.
func applyFilters[T any](ctx context.Context, s *session, items []T, steps ...filtering.Filter[T]) ([]T, error) {
	filters := filtering.New(steps, s.logger)
	for _, status := range filters.Describe() {
		if status.Enabled {
			s.logger.Debug("client filter", zap.String("name", status.Name), zap.Any("details", status.Details))
		}
	}

	return filters.Run(ctx, items)
}
