package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/task"
)

func (a *App) templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage task templates",
		Long: `Templates are named task defaults (title, category, duration,
preferred time) that can be materialized into tasks with "ritmo add
--template=<name>".`,
	}

	cmd.AddCommand(a.templateAddCmd())
	cmd.AddCommand(a.templateListCmd())

	return cmd
}

func (a *App) templateAddCmd() *cobra.Command {
	var (
		title       string
		category    string
		duration    int
		defaultTime string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a template",
		Example: `  ritmo template add standup --title="Daily standup" --category=work --duration=15 --time=09:00
  ritmo template add run --category=fitness --duration=45 --tags=outdoor,cardio`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var tagList []string
			for _, t := range strings.Split(tags, ",") {
				if t = strings.TrimSpace(t); t != "" {
					tagList = append(tagList, t)
				}
			}

			tpl, err := task.NewTemplate(args[0], title, task.Category(category), duration, defaultTime, tagList)
			if err != nil {
				return err
			}
			if err := a.repo.InsertTemplate(context.Background(), tpl); err != nil {
				return fmt.Errorf("saving template: %w", err)
			}

			fmt.Printf("Created template %q: %s %s %s\n",
				tpl.Name, tpl.Title, formatCategory(tpl.Category), FormatDuration(tpl.EstimatedDuration))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (default: template name)")
	cmd.Flags().StringVar(&category, "category", "general", "Category")
	cmd.Flags().IntVar(&duration, "duration", 30, "Estimated duration in minutes")
	cmd.Flags().StringVar(&defaultTime, "time", "", "Preferred start time (HH:MM)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")

	return cmd
}

func (a *App) templateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(_ *cobra.Command, _ []string) error {
			tpls, err := a.repo.ListTemplates(context.Background())
			if err != nil {
				return fmt.Errorf("listing templates: %w", err)
			}
			if len(tpls) == 0 {
				fmt.Println("No templates defined.")
				return nil
			}
			for _, tpl := range tpls {
				line := fmt.Sprintf("  %-15s %s %s %s",
					tpl.Name, formatCategory(tpl.Category), FormatDuration(tpl.EstimatedDuration), tpl.Title)
				if tpl.DefaultTime != "" {
					line += formatMuted(" @" + tpl.DefaultTime)
				}
				if tpl.UsageCount > 0 {
					line += formatMuted(fmt.Sprintf(" (used %d×)", tpl.UsageCount))
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
