package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/internal/events"
)

func TestMissingEventFile(t *testing.T) {
	dir := copyFixture(t, "minimal")

	code, _, stderr := runIn(t, dir, "show", "--no-journal", filepath.Join(dir, "missing.jsonl"))
	assert.Equal(t, errors.ExitRuntimeError, code)
	assert.Contains(t, stderr, "cannot read events")
}

func TestUnsupportedEventFile(t *testing.T) {
	dir := copyFixture(t, "minimal")
	path := filepath.Join(dir, "events.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

	code, _, stderr := runIn(t, dir, "show", "--no-journal", path)
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, stderr, "unsupported event file")
}

func TestInvalidLinesAreSkipped(t *testing.T) {
	res, err := events.DecodeFile(eventFile("with-errors.jsonl"))
	require.NoError(t, err)
	assert.Len(t, res.Events, 2)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 2, res.Skipped[0].Line)
	assert.Equal(t, 3, res.Skipped[1].Line)

	dir := copyFixture(t, "minimal")
	code, stdout, stderr := runIn(t, dir, "show", "--no-journal", eventFile("with-errors.jsonl"))
	require.Equal(t, errors.ExitSuccess, code, stderr)
	assert.Contains(t, stderr, "skipped 2 invalid events")
	assert.Contains(t, stdout, "C")
}

func TestRecordWithoutEvents(t *testing.T) {
	dir := copyFixture(t, "minimal")
	path := filepath.Join(dir, "empty.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	code, _, stderr := runIn(t, dir, "record", path)
	assert.Equal(t, errors.ExitRuntimeError, code)
	assert.Contains(t, stderr, "no events to record")
}

func TestQuietAndVerboseConflict(t *testing.T) {
	dir := copyFixture(t, "minimal")

	code, _, _ := runIn(t, dir, "-q", "-v", "show")
	assert.Equal(t, errors.ExitConfigError, code)
}
