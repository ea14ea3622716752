package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/internal/events"
)

func (a *app) newRecordCmd() *cobra.Command {
	var noPrune bool
	cmd := &cobra.Command{
		Use:   "record <event files...>",
		Short: "Append event files to the journal",
		Long: "Decodes each event file and appends it to the journal as one session.\n" +
			"Sessions older than journal.retention are pruned afterwards.",
		Args: requireArgs(1, "at least one event file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRecord(args, !noPrune)
		},
	}
	cmd.Flags().BoolVar(&noPrune, "no-prune", false, "Keep sessions older than the retention period")
	return cmd
}

func (a *app) runRecord(files []string, prune bool) error {
	proj, err := a.loadProject()
	if err != nil {
		return err
	}

	// Decode everything before touching the journal so a bad file records nothing.
	results := make([]*events.Result, 0, len(files))
	total := 0
	for _, path := range files {
		res, err := a.decodeFile(path)
		if err != nil {
			return err
		}
		results = append(results, res)
		total += len(res.Events)
	}
	if total == 0 {
		return errors.Newf("no events to record in %s", plural(len(files), "file"))
	}

	s, err := a.openJournal(proj)
	if err != nil {
		return err
	}
	defer s.Close()

	for i, path := range files {
		if len(results[i].Events) == 0 {
			a.out.Warning("%s: no events to record", path)
			continue
		}
		sess, err := s.Append(path, results[i].Events)
		if err != nil {
			return errors.Wrap(err, "cannot record events")
		}
		a.out.Success("Recorded %s from %s (session %s)", plural(sess.Count, "event"), path, sess.ID)
	}

	if !prune {
		return nil
	}
	retention := proj.Config.Retention()
	if retention <= 0 {
		return nil
	}
	removed, err := s.Prune(a.now().Add(-retention))
	if err != nil {
		return errors.Wrap(err, "cannot prune journal")
	}
	if removed > 0 {
		a.out.Info("Pruned %s older than %s", plural(removed, "session"), retention)
	}
	return nil
}
