package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
)

func TestRecordThenShow(t *testing.T) {
	dir := copyFixture(t, "minimal")

	code, stdout, stderr := runIn(t, dir, "record", eventFile("one-failed.jsonl"))
	require.Equal(t, errors.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Recorded 5 events")
	assert.FileExists(t, filepath.Join(dir, ".recenttests", "journal.db"))

	code, stdout, stderr = runIn(t, dir, "record", eventFile("mixed.yaml"))
	require.Equal(t, errors.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Recorded 3 events")

	code, stdout, stderr = runIn(t, dir, "show", "--json")
	require.Equal(t, errors.ExitSuccess, code, stderr)

	var entries []struct {
		Name          string `json:"name"`
		Failed        bool   `json:"failed"`
		Configuration string `json:"configuration"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "JFSDTest.testItMakesMeSadToFixIt", entries[0].Name)
	assert.True(t, entries[0].Failed)
	assert.Equal(t, "S.a", entries[1].Name)
	assert.Equal(t, "C", entries[1].Configuration)

	code, stdout, stderr = runIn(t, dir, "sessions")
	require.Equal(t, errors.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "one-failed.jsonl")
	assert.Contains(t, stdout, "mixed.yaml")
}

func TestJournalReplayMatchesFiles(t *testing.T) {
	dir := copyFixture(t, "minimal")

	code, fromFiles, stderr := runIn(t, dir, "show", "--no-journal", "--json",
		eventFile("all-passed.jsonl"), eventFile("one-failed.jsonl"))
	require.Equal(t, errors.ExitSuccess, code, stderr)

	code, _, stderr = runIn(t, dir, "record", eventFile("all-passed.jsonl"), eventFile("one-failed.jsonl"))
	require.Equal(t, errors.ExitSuccess, code, stderr)

	code, fromJournal, stderr := runIn(t, dir, "show", "--json")
	require.Equal(t, errors.ExitSuccess, code, stderr)
	assert.JSONEq(t, fromFiles, fromJournal)
}

func TestShowDoesNotCreateJournal(t *testing.T) {
	dir := copyFixture(t, "minimal")

	code, _, stderr := runIn(t, dir, "show")
	require.Equal(t, errors.ExitSuccess, code, stderr)

	_, err := os.Stat(filepath.Join(dir, ".recenttests", "journal.db"))
	assert.True(t, os.IsNotExist(err))
}
