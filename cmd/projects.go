package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/logger"
	"github.com/spigell/sesctl/internal/ses"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "Manage engineers' project history",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		paging := pagingFlags(cmd)
		employeeID, _ := cmd.Flags().GetInt("employee-id")

		projects, err := s.client.ListProjects(ctx, &ses.ProjectListParams{
			Skip:       paging.Skip,
			Limit:      paging.Limit,
			EmployeeID: employeeID,
		})
		if err != nil {
			return fmt.Errorf("listing projects: %w", err)
		}

		return printProjects(s.out, projects)
	}),
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a project",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, _ *cobra.Command, s *session, id int) error {
		project, err := s.client.GetProject(ctx, id)
		if err != nil {
			return fmt.Errorf("getting project %d: %w", id, err)
		}
		return printProject(s.out, project)
	}),
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project from a payload file",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		var data ses.ProjectCreate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		project, err := s.client.CreateProject(ctx, &data)
		if err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		s.logger.Info("project created", zap.Int("id", project.ID), logger.Employee(project.EmployeeID))
		return printProject(s.out, project)
	}),
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a project from a payload file with the fields to change",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, id int) error {
		var data ses.ProjectUpdate
		if err := loadPayload(cmd, &data); err != nil {
			return err
		}

		project, err := s.client.UpdateProject(ctx, id, &data)
		if err != nil {
			return fmt.Errorf("updating project %d: %w", id, err)
		}

		s.logger.Info("project updated", zap.Int("id", project.ID))
		return printProject(s.out, project)
	}),
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, id int) error {
		return deleteWith(cmd, s, fmt.Sprintf("project %d", id), func() (*ses.Message, error) {
			return s.client.DeleteProject(ctx, id)
		})
	}),
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd, projectsGetCmd, projectsCreateCmd, projectsUpdateCmd, projectsDeleteCmd)

	addPagingFlags(projectsListCmd)
	projectsListCmd.Flags().Int("employee-id", 0, "only projects of this engineer")

	addFileFlag(projectsCreateCmd)
	addFileFlag(projectsUpdateCmd)
	addYesFlag(projectsDeleteCmd)
}

func projectPeriod(p *ses.Project) string {
	if p.Ongoing() {
		return p.StartDate.Date() + " - present"
	}
	return p.StartDate.Date() + " - " + p.EndDate.Date()
}

func printProjects(out *printer, projects []ses.Project) error {
	return out.render(projects, func(w *tabwriter.Writer) {
		row(w, "ID", "EMPLOYEE", "TITLE", "ROLE", "PERIOD", "TECH")
		for i := range projects {
			p := &projects[i]
			row(w, strconv.Itoa(p.ID), strconv.Itoa(p.EmployeeID), p.Title, p.Role, projectPeriod(p), strings.Join(p.Tags(), ", "))
		}
	})
}

func printProject(out *printer, p *ses.Project) error {
	return out.render(p, func(w *tabwriter.Writer) {
		row(w, "ID:", strconv.Itoa(p.ID))
		row(w, "Employee:", strconv.Itoa(p.EmployeeID))
		row(w, "Title:", p.Title)
		row(w, "Role:", p.Role)
		row(w, "Period:", projectPeriod(p))
		row(w, "Tech:", strings.Join(p.Tags(), ", "))
		row(w, "Description:", orEmpty(p.Description))
		row(w, "Requirements:", orEmpty(p.PhaseRequirements))
		row(w, "Design:", orEmpty(p.PhaseDesign))
		row(w, "Implementation:", orEmpty(p.PhaseImplementation))
		row(w, "Testing:", orEmpty(p.PhaseTesting))
	})
}
