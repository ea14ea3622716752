package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/internal/metrics"
	"github.com/AndreyAkinshin/recenttests/internal/model"
	"github.com/AndreyAkinshin/recenttests/internal/output"
	"github.com/AndreyAkinshin/recenttests/internal/recent"
	"github.com/AndreyAkinshin/recenttests/internal/watch"
)

type watchOptions struct {
	metricsAddr string
	noJournal   bool
}

func (a *app) newWatchCmd() *cobra.Command {
	var opts watchOptions
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Show recent tests live while event files in a directory change",
		Args:  requireArgs(1, "event directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().BoolVar(&opts.noJournal, "no-journal", false, "Ignore the journal")
	return cmd
}

func (a *app) runWatch(ctx context.Context, dir string, opts watchOptions) error {
	proj, err := a.loadProject()
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return errors.Configf("watch: %s is not a directory", dir)
	}

	var base []model.Event
	if !opts.noJournal {
		base, err = a.journalEvents(proj)
		if err != nil {
			return err
		}
	}

	m := metrics.New(prometheus.NewRegistry())
	if opts.metricsAddr != "" {
		srv, err := a.serveMetrics(opts.metricsAddr, m)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	ancestry := proj.Config.Display.ShowAncestry()
	maxAge := proj.Config.MaxAge()
	rebuilder := watch.NewRebuilder(dir, watch.RebuilderOptions{
		Separator: proj.Separator(),
		Names:     proj.Config.Names(),
		Base:      base,
		Logger:    a.logger,
	}, func(d *recent.Data, evs []model.Event) {
		var cutoff time.Time
		if maxAge > 0 {
			cutoff = a.now().Add(-maxAge)
		}
		entries := d.TestsToShowSince(cutoff)
		m.Observe(evs)
		m.ObserveSelection(entries)

		a.out.Info("--- %s ---", formatTime(a.now()))
		a.out.RecentTable(entries, output.RecentOptions{Ancestry: ancestry, Now: a.now()})
	})

	w, err := watch.NewWatcher(a.logger)
	if err != nil {
		return errors.Environmentf("cannot watch %s: %v", dir, err)
	}
	defer w.Stop()
	if err := w.Watch(ctx, dir, rebuilder.OnChange); err != nil {
		return errors.Environmentf("cannot watch %s: %v", dir, err)
	}

	a.out.Hint("Watching %s (Ctrl+C to stop)", dir)
	if err := rebuilder.Run(ctx); err != nil {
		return errors.Wrap(err, "cannot load events")
	}
	return nil
}

// serveMetrics starts the /metrics endpoint in the background.
func (a *app) serveMetrics(addr string, m *metrics.Metrics) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Environmentf("cannot serve metrics on %s: %v", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", ln.Addr().String())
	return srv, nil
}
