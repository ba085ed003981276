package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/filtering"
	"github.com/spigell/sesctl/internal/payload"
	"github.com/spigell/sesctl/internal/ses"
)

var skillsCmd = &cobra.Command{
	Use:     "skills",
	Aliases: []string{"skill"},
	Short:   "Manage the skill catalog",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog skills",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		paging := pagingFlags(cmd)
		category, _ := cmd.Flags().GetString("category")
		name, _ := cmd.Flags().GetString("name")
		top, _ := cmd.Flags().GetInt("top")

		skills, err := s.client.ListSkills(ctx, &ses.SkillListParams{
			Skip:     paging.Skip,
			Limit:    paging.Limit,
			Category: category,
		})
		if err != nil {
			return fmt.Errorf("listing skills: %w", err)
		}

		skills, err = applyFilters(ctx, s, skills,
			filtering.NewSkillName(name),
			filtering.NewLimit[ses.Skill](top),
		)
		if err != nil {
			return fmt.Errorf("filtering skills: %w", err)
		}

		return printSkills(s.out, skills)
	}),
}

var skillsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List skill categories",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, _ *cobra.Command, s *session, _ []string) error {
		categories, err := s.client.SkillCategories(ctx)
		if err != nil {
			return fmt.Errorf("listing skill categories: %w", err)
		}

		return s.out.render(categories, func(w *tabwriter.Writer) {
			row(w, "CATEGORY")
			for _, c := range categories {
				row(w, c)
			}
		})
	}),
}

var skillsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a skill to the catalog",
	Long:  "Add a skill to the catalog from --name and --category or from a payload file.",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, cmd *cobra.Command, s *session, _ []string) error {
		var data ses.SkillCreate
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			if err := loadPayload(cmd, &data); err != nil {
				return err
			}
		} else {
			data.Name, _ = cmd.Flags().GetString("name")
			data.Category, _ = cmd.Flags().GetString("category")
			if err := payload.Validate(&data); err != nil {
				return err
			}
		}

		skill, err := s.client.CreateSkill(ctx, &data)
		if err != nil {
			return fmt.Errorf("creating skill: %w", err)
		}

		s.logger.Info("skill created", zap.Int("id", skill.ID), zap.String("name", skill.Name))
		return printSkills(s.out, []ses.Skill{*skill})
	}),
}

var skillsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a catalog skill",
	Args:  cobra.ExactArgs(1),
	RunE: idCommand(func(ctx context.Context, cmd *cobra.Command, s *session, id int) error {
		return deleteWith(cmd, s, fmt.Sprintf("skill %d", id), func() (*ses.Message, error) {
			return s.client.DeleteSkill(ctx, id)
		})
	}),
}

func init() {
	rootCmd.AddCommand(skillsCmd)
	skillsCmd.AddCommand(skillsListCmd, skillsCategoriesCmd, skillsCreateCmd, skillsDeleteCmd)

	addPagingFlags(skillsListCmd)
	skillsListCmd.Flags().String("category", "", "only skills of this category")
	skillsListCmd.Flags().String("name", "", "keep skills whose name contains the text")
	skillsListCmd.Flags().Int("top", 0, "show at most this many skills after filtering")

	skillsCreateCmd.Flags().StringP("file", "f", "", "YAML or JSON payload file, - for stdin")
	skillsCreateCmd.Flags().String("name", "", "skill name")
	skillsCreateCmd.Flags().String("category", "", "skill category")
	skillsCreateCmd.MarkFlagsMutuallyExclusive("file", "name")
	skillsCreateCmd.MarkFlagsMutuallyExclusive("file", "category")

	addYesFlag(skillsDeleteCmd)
}

func printSkills(out *printer, skills []ses.Skill) error {
	return out.render(skills, func(w *tabwriter.Writer) {
		row(w, "ID", "NAME", "CATEGORY")
		for _, sk := range skills {
			row(w, strconv.Itoa(sk.ID), sk.Name, sk.Category)
		}
	})
}
