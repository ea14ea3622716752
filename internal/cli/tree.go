package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/recenttests/internal/events"
)

func (a *app) newTreeCmd() *cobra.Command {
	var noJournal bool
	cmd := &cobra.Command{
		Use:   "tree [event files...]",
		Short: "Show every configuration, suite and test",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := a.loadProject()
			if err != nil {
				return err
			}
			evs, err := a.collectEvents(proj, args, !noJournal)
			if err != nil {
				return err
			}
			a.out.Tree(events.Build(evs, proj.Config.Names(), proj.Separator()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Only use the given event files")
	return cmd
}
