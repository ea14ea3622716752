package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/recenttests/internal/model"
	"github.com/AndreyAkinshin/recenttests/internal/recent"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func sampleEvents() []model.Event {
	cfg := model.Configuration{ID: "C"}
	return []model.Event{
		{Kind: model.EventSuite, ID: "S", Time: t0, Configuration: cfg},
		{Kind: model.EventTest, ID: "S.a", Outcome: "failed", Time: t0, Configuration: cfg},
		{Kind: model.EventTest, ID: "S.b", Outcome: "passed", Time: t0, Configuration: cfg},
		{Kind: model.EventTest, ID: "S.c", Outcome: "passed", Time: t0, Configuration: cfg},
	}
}

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe(sampleEvents())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rebuildsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsLoaded.WithLabelValues("suite", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsLoaded.WithLabelValues("test", "failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsLoaded.WithLabelValues("test", "passed")))
}

func TestObserve_ReplacesPreviousCounts(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe(sampleEvents())
	m.Observe(sampleEvents()[:2])

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rebuildsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(m.eventsLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsLoaded.WithLabelValues("test", "failed")))
}

func TestObserveSelection(t *testing.T) {
	m := New(prometheus.NewRegistry())

	d := recent.New()
	d.AddTest("S.a", recent.OutcomeFailed, t0, model.Configuration{ID: "unit"})
	d.AddTest("S.b", recent.OutcomePassed, t0, model.Configuration{ID: "e2e"})
	d.AddTest("S.c", recent.OutcomePassed, t0, model.Configuration{ID: "lint"})

	m.ObserveSelection(d.TestsToShow())

	assert.Equal(t, 3.0, testutil.ToFloat64(m.configurations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failingConfigurations))
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.Observe(sampleEvents())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "recenttests_rebuilds_total 1"), body)
	assert.Contains(t, body, `recenttests_events_loaded{kind="test",outcome="passed"} 2`)
}

func TestHandler_ServesCallerRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveSelection(nil)

	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	reg.MustRegister(extra)
	extra.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "recenttests_configurations 0")
	assert.Contains(t, body, "extra_total 1")
	assert.NotContains(t, body, "go_goroutines")
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
