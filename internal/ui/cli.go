package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/config"
	"github.com/ritmoapp/ritmo/internal/sched"
	"github.com/ritmoapp/ritmo/internal/task"
	"github.com/ritmoapp/ritmo/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	svc     *sched.Service
	repo    task.Repository
	config  *config.Config
	root    *cobra.Command
	noColor bool
}

// NewApp creates a new CLI application around a scheduling service.
func NewApp(svc *sched.Service, repo task.Repository, cfg *config.Config) *App {
	a := &App{svc: svc, repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "ritmo",
		Short: "A CLI tool for slot-based daily planning",
		Long: `Ritmo plans your day on a 15-minute slot grid.

It schedules tasks between configurable day boundaries, detects
overlaps before they land on your calendar, and suggests how to
resolve them.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(a.svc, a.config)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.postponeCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.templateCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("ritmo %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
