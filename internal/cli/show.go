package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/recenttests/internal/config"
	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/internal/events"
	"github.com/AndreyAkinshin/recenttests/internal/output"
	"github.com/AndreyAkinshin/recenttests/internal/recent"
)

type showOptions struct {
	json          bool
	noAncestry    bool
	failOnFailure bool
	noJournal     bool
	since         string
	configuration string
}

func (a *app) newShowCmd() *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show [event files...]",
		Short: "Show the most relevant test of every run configuration",
		Long: "Replays the journal and the given event files, then prints one entry per run\n" +
			"configuration: its latest failing test, or the configuration when all passed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.json, "json", false, "Print entries as JSON")
	f.BoolVar(&opts.noAncestry, "no-ancestry", false, "Do not print the enclosing suites and configuration")
	f.BoolVar(&opts.failOnFailure, "fail-on-failure", false, "Exit with code 4 when a failing test is shown")
	f.BoolVar(&opts.noJournal, "no-journal", false, "Only use the given event files")
	f.StringVar(&opts.since, "since", "", "Hide configurations not run within this duration (e.g. 24h)")
	f.StringVar(&opts.configuration, "configuration", "", "Only show the configuration with this ID")
	return cmd
}

func (a *app) runShow(files []string, opts showOptions) error {
	proj, err := a.loadProject()
	if err != nil {
		return err
	}

	maxAge := proj.Config.MaxAge()
	if opts.since != "" {
		maxAge, err = config.ParseDuration(opts.since)
		if err != nil {
			return errors.Configf("--since: %v", err)
		}
	}
	var cutoff time.Time
	if maxAge > 0 {
		cutoff = a.now().Add(-maxAge)
	}

	evs, err := a.collectEvents(proj, files, !opts.noJournal)
	if err != nil {
		return err
	}
	d := events.Build(evs, proj.Config.Names(), proj.Separator())
	entries := d.TestsToShowSince(cutoff)

	if opts.configuration != "" {
		entries, err = onlyConfiguration(d, entries, opts.configuration)
		if err != nil {
			return err
		}
	}

	if opts.json {
		if err := a.out.JSON(entries); err != nil {
			return errors.Wrap(err, "cannot write output")
		}
	} else {
		a.out.RecentTable(entries, output.RecentOptions{
			Ancestry: proj.Config.Display.ShowAncestry() && !opts.noAncestry,
			Now:      a.now(),
		})
	}

	if opts.failOnFailure {
		if failing := countFailing(entries); failing > 0 {
			return errors.TestsFailing(failing)
		}
	}
	return nil
}

// onlyConfiguration keeps the entry shown for configID.
func onlyConfiguration(d *recent.Data, entries []*recent.Entry, configID string) ([]*recent.Entry, error) {
	if _, ok := d.Lookup(configID, configID); !ok {
		return nil, errors.NotFound("configuration", configID)
	}
	for _, e := range entries {
		if root := e.Configuration(); root != nil && root.ID == configID {
			return []*recent.Entry{e}, nil
		}
	}
	return nil, errors.ConfigurationError(configID, "show", "no runs within the display window")
}

func countFailing(entries []*recent.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Failed {
			n++
		}
	}
	return n
}
