package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
)

func (a *app) newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List recorded journal sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSessions()
		},
	}
}

func (a *app) runSessions() error {
	proj, err := a.loadProject()
	if err != nil {
		return err
	}

	s, err := a.openJournal(proj)
	if err != nil {
		return err
	}
	defer s.Close()

	sessions, err := s.Sessions()
	if err != nil {
		return errors.Wrap(err, "cannot read journal")
	}
	if len(sessions) == 0 {
		a.out.Info("No sessions recorded.")
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		rows = append(rows, []string{sess.ID, formatTime(sess.Started), strconv.Itoa(sess.Count), sess.Source})
	}
	a.out.Table([]string{"ID", "STARTED", "EVENTS", "SOURCE"}, rows)
	return nil
}
