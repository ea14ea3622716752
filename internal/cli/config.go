package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/internal/project"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the workspace configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errors.Config("config: subcommand required (validate)")
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the workspace configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigValidate()
		},
	})
	return cmd
}

func (a *app) runConfigValidate() error {
	proj, err := a.loadProject()
	if err != nil {
		return err
	}
	if proj.ConfigPath() == "" {
		return &errors.Error{Kind: errors.KindConfig, Message: "nothing to validate", Cause: project.ErrNoProjectRoot}
	}

	cfg := proj.Config
	a.out.ValidationSuccess("Configuration is valid.")
	a.out.SummaryItem("Config", proj.ConfigPath())
	a.out.SummaryItem("Journal", proj.JournalPath())
	a.out.SummaryItem("Retention", cfg.Journal.Retention)
	if age := cfg.MaxAge(); age > 0 {
		a.out.SummaryItem("Max age", age.String())
	}
	a.out.SummaryItem("Separator", fmt.Sprintf("%q", proj.Separator()))
	a.out.SummaryItem("Configurations", fmt.Sprintf("%d", len(cfg.Configurations)))
	if len(proj.Warnings) > 0 {
		a.out.SummaryItem("Warnings", fmt.Sprintf("%d", len(proj.Warnings)))
	}
	return nil
}
