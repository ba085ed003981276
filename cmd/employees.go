package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/filtering"
	"github.com/spigell/sesctl/internal/ses"
)

var employeesCmd = &cobra.Command{
	Use:     "employees",
	Aliases: []string{"employee", "emp"},
	Short:   "Manage engineers",
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List engineers, optionally narrowed by name, role, skills or availability",
	Args:  cobra.NoArgs,
	RunE:  run(listEmployees),
}

var employeesSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search engineers on the backend by skills, experience, availability and price",
	Args:  cobra.NoArgs,
	RunE:  run(searchEmployees),
}

var employeesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an engineer with skills, projects, availability and one-on-ones",
	Args:  cobra.ExactArgs(1),
	RunE:  idCommand(getEmployee),
}

var employeesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an engineer from a payload file",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		var data ses.EmployeeCreate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		employee, err := s.client.CreateEmployee(ctx, &data)
		if err != nil {
			return fmt.Errorf("creating employee: %w", err)
		}

		s.logger.Info("employee created", zap.Int("id", employee.ID))
		return printEmployee(s.out, employee)
	}),
}

var employeesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an engineer from a payload file with the fields to change",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, id int) error {
		var data ses.EmployeeUpdate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		employee, err := s.client.UpdateEmployee(ctx, id, &data)
		if err != nil {
			return fmt.Errorf("updating employee %d: %w", id, err)
		}

		s.logger.Info("employee updated", zap.Int("id", employee.ID))
		return printEmployee(s.out, employee)
	}),
}

var employeesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an engineer",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, id int) error {
		return deleteWith(cmd, s, fmt.Sprintf("employee %d", id), func() (*ses.Message, error) {
			return s.client.DeleteEmployee(ctx, id)
		})
	}),
}

func init() {
	rootCmd.AddCommand(employeesCmd)
	employeesCmd.AddCommand(employeesListCmd, employeesSearchCmd, employeesGetCmd,
		employeesCreateCmd, employeesUpdateCmd, employeesDeleteCmd)

	addPagingFlags(employeesListCmd)
	employeesListCmd.Flags().StringP("query", "q", "", "keep engineers whose name or main role contains the text")
	employeesListCmd.Flags().StringSlice("skill", nil, "keep engineers having every given main skill")
	employeesListCmd.Flags().StringSlice("status", nil, "keep engineers with one of the availability statuses")

	employeesSearchCmd.Flags().StringSlice("skill", nil, "skill tags the engineer must have")
	employeesSearchCmd.Flags().Int("years-min", 0, "minimum years of experience")
	employeesSearchCmd.Flags().Int("years-max", 0, "maximum years of experience")
	employeesSearchCmd.Flags().StringSlice("status", nil, "availability statuses")
	employeesSearchCmd.Flags().Int("price-min", 0, "minimum unit price in yen")
	employeesSearchCmd.Flags().Int("price-max", 0, "maximum unit price in yen")

	addFileFlag(employeesCreateCmd)
	addFileFlag(employeesUpdateCmd)
	addYesFlag(employeesDeleteCmd)
}

func parseStatuses(values []string) ([]ses.AvailabilityStatus, error) {
	statuses := make([]ses.AvailabilityStatus, 0, len(values))
	for _, v := range values {
		status, err := ses.ParseAvailabilityStatus(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func listEmployees(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
	query, _ := cmd.Flags().GetString("query")
	skills, _ := cmd.Flags().GetStringSlice("skill")
	statusFlags, _ := cmd.Flags().GetStringSlice("status")

	statuses := make([]ses.AvailabilityStatus, 0, len(statusFlags))
	for _, v := range statusFlags {
		statuses = append(statuses, ses.AvailabilityStatus(strings.TrimSpace(v)))
	}

	params := pagingFlags(cmd)
	employees, err := s.client.ListEmployees(ctx, &params)
	if err != nil {
		return fmt.Errorf("listing employees: %w", err)
	}

	employees, err = applyFilters(ctx, s, employees,
		filtering.NewEmployeeText(query),
		filtering.NewEmployeeSkills(skills),
		filtering.NewEmployeeAvailability(statuses),
	)
	if err != nil {
		return fmt.Errorf("filtering employees: %w", err)
	}

	s.logger.Debug("employees listed", zap.Int("count", len(employees)))
	return printEmployeeSummaries(s.out, employees)
}

func searchEmployees(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
	flags := cmd.Flags()
	skills, _ := flags.GetStringSlice("skill")
	statusFlags, _ := flags.GetStringSlice("status")

	statuses, err := parseStatuses(statusFlags)
	if err != nil {
		return err
	}

	params := ses.EmployeeSearchParams{SkillTags: skills, AvailabilityStatus: statuses}
	params.YearsExperienceMin, _ = flags.GetInt("years-min")
	params.YearsExperienceMax, _ = flags.GetInt("years-max")
	params.UnitPriceMin, _ = flags.GetInt("price-min")
	params.UnitPriceMax, _ = flags.GetInt("price-max")

	if params.UnitPriceMin > 0 && params.UnitPriceMax > 0 && params.UnitPriceMin > params.UnitPriceMax {
		return fmt.Errorf("price-min %d is greater than price-max %d", params.UnitPriceMin, params.UnitPriceMax)
	}

	employees, err := s.client.SearchEmployees(ctx, &params)
	if err != nil {
		return fmt.Errorf("searching employees: %w", err)
	}

	return printEmployeeSummaries(s.out, employees)
}

func getEmployee(ctx context.Context, _ *cobra.Command, s *session, id int) error {
	employee, err := s.client.GetEmployee(ctx, id)
	if err != nil {
		if ses.IsNotFound(err) {
			return fmt.Errorf("employee %d not found", id)
		}
		return fmt.Errorf("getting employee %d: %w", id, err)
	}
	return printEmployee(s.out, employee)
}

func printEmployeeSummaries(out *printer, employees []ses.EmployeeSummary) error {
	return out.render(employees, func(w *tabwriter.Writer) {
		row(w, "ID", "NAME", "ROLE", "YEARS", "UNIT PRICE", "AVAILABILITY", "MAIN SKILLS")
		for _, e := range employees {
			row(w,
				strconv.Itoa(e.ID),
				e.Name,
				e.MainRole,
				strconv.Itoa(e.YearsExperience),
				formatPriceRange(e.UnitPriceMin, e.UnitPriceMax),
				availabilityLabel(e.AvailabilityStatus),
				strings.Join(e.MainSkills, ", "),
			)
		}
	})
}

func printEmployee(out *printer, e *ses.Employee) error {
	return out.render(e, func(w *tabwriter.Writer) {
		row(w, "ID:", strconv.Itoa(e.ID))
		row(w, "Name:", e.Name)
		row(w, "Role:", e.MainRole)
		row(w, "Experience:", fmt.Sprintf("%d years", e.YearsExperience))
		row(w, "Unit price:", formatPriceRange(e.UnitPriceMin, e.UnitPriceMax))
		row(w, "Desired career:", orEmpty(e.DesiredCareer))

		if e.Availability != nil {
			row(w, "Availability:", e.Availability.Status.Label(),
				"from "+dateOrEmpty(e.Availability.AvailableFrom), orEmpty(e.Availability.Memo))
		} else {
			row(w, "Availability:", emptyCell)
		}

		if len(e.Skills) > 0 {
			row(w)
			row(w, "SKILL", "CATEGORY", "LEVEL", "YEARS")
			for _, sk := range e.Skills {
				row(w, sk.SkillName, sk.SkillCategory, strconv.Itoa(sk.Level), strconv.Itoa(sk.YearsExperience))
			}
		}

		if len(e.Projects) > 0 {
			row(w)
			row(w, "PROJECT", "ROLE", "PERIOD", "TECH")
			for _, p := range e.Projects {
				row(w, p.Title, p.Role, projectPeriod(&p), strings.Join(p.Tags(), ", "))
			}
		}

		if len(e.OneOnOnes) > 0 {
			row(w)
			row(w, "ONE-ON-ONE", "STATUS", "MEMO")
			for _, o := range e.OneOnOnes {
				row(w, o.Date.Date(), o.Status.Label(), orEmpty(o.Memo))
			}
		}
	})
}
