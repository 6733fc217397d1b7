package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/store"
)

// seed writes a fixed task list with stable ids into cfg's data directory.
func seed(t *testing.T, cfg config.Config) {
	t.Helper()
	ctx := context.Background()
	backend, err := storage.Open(storage.KindJSON, cfg.DataPath)
	require.NoError(t, err)
	defer backend.Close()

	ids := []string{"t1", "t2", "t3"}
	next := 0
	s, err := store.Open(ctx, store.NewKeyPersister(backend, cfg.StorageKey), store.WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	require.NoError(t, err)

	report, err := s.Add(ctx, "Write report")
	require.NoError(t, err)
	milk, err := s.Add(ctx, "Buy milk")
	require.NoError(t, err)
	call, err := s.Add(ctx, "Call mom")
	require.NoError(t, err)

	report.Priority = model.PriorityHigh
	report.DueDate = model.DatePtr("2026-01-05")
	report.Labels = []string{"Work"}
	report.Subtasks = []model.Subtask{
		{ID: "s1", Text: "Outline", Completed: true},
		{ID: "s2", Text: "Draft"},
	}
	require.NoError(t, s.Replace(ctx, report))
	require.NoError(t, s.ToggleCompleted(ctx, milk.ID))
	call.Priority = model.PriorityLow
	require.NoError(t, s.Replace(ctx, call))
}

func listIDs(t *testing.T, cfg config.Config) []string {
	t.Helper()
	out, err := execute(t, cfg, "list", "--format", "json")
	require.NoError(t, err)
	var tasks []model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestListTextOutput(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	out, err := execute(t, cfg, "list")
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "list_text", []byte(out))
}

func TestListFilterKeepsStoreIndices(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	out, err := execute(t, cfg, "list", "--filter", "active")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], " 0 [ ] Write report"))
	assert.True(t, strings.HasPrefix(lines[1], " 2 [ ] Call mom"))
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, testConfig(t), "list")
	require.NoError(t, err)
	assert.Equal(t, "No tasks here!\n", out)
}

func TestListRejectsBadFlags(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "list", "--filter", "someday")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, cfg, "list", "--format", "csv")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAddPersistsAcrossInvocations(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, cfg, "add", "Plan", "the", "trip")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = execute(t, cfg, "list", "--format", "json")
	require.NoError(t, err)
	var tasks []model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, id, tasks[0].ID)
	assert.Equal(t, "Plan the trip", tasks[0].Text)
	assert.Equal(t, model.PriorityMedium, tasks[0].Priority)
	assert.False(t, tasks[0].Completed)

	assert.FileExists(t, filepath.Join(cfg.DataPath, cfg.StorageKey+".json"))
}

func TestAddBlankTextIsCommandError(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "add", "   ")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, listIDs(t, cfg))
}

func TestAddWithSQLiteBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend = "sqlite"

	_, err := execute(t, cfg, "add", "Stored in sqlite")
	require.NoError(t, err)

	out, err := execute(t, cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored in sqlite")
	assert.FileExists(t, filepath.Join(cfg.DataPath, sqliteFile))
}

func TestToggleAndRemove(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	out, err := execute(t, cfg, "toggle", "t2")
	require.NoError(t, err)
	assert.Equal(t, "t2 active\n", out)

	_, err = execute(t, cfg, "rm", "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3"}, listIDs(t, cfg))
}

func TestUnknownIDIsFailure(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	_, err := execute(t, cfg, "toggle", "nope")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = execute(t, cfg, "rm", "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMove(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	_, err := execute(t, cfg, "move", "0", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3", "t1"}, listIDs(t, cfg))

	_, err = execute(t, cfg, "move", "2", "0")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2", "t3"}, listIDs(t, cfg))
}

func TestMoveRejectsBadIndices(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	for _, args := range [][]string{{"0", "3"}, {"-1", "0"}, {"x", "1"}} {
		_, err := execute(t, cfg, append([]string{"move"}, args...)...)
		assert.Equal(t, ExitCommandError, GetExitCode(err), args)
	}
	assert.Equal(t, []string{"t1", "t2", "t3"}, listIDs(t, cfg))
}

func TestExportYAMLToFile(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)
	path := filepath.Join(t.TempDir(), "tasks.yaml")

	out, err := execute(t, cfg, "export", "--format", "yaml", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var tasks []model.Task
	require.NoError(t, yaml.Unmarshal(raw, &tasks))
	require.Len(t, tasks, 3)
	assert.Equal(t, "Write report", tasks[0].Text)
	assert.Equal(t, []string{"Work"}, tasks[0].Labels)
}

func TestExportTOMLToStdout(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	out, err := execute(t, cfg, "export", "--format", "toml")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "[[tasks]]"))
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := execute(t, testConfig(t), "export", "--format", "csv")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestResetRequiresConfirmation(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg)

	_, err := execute(t, cfg, "reset")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, []string{"t1", "t2", "t3"}, listIDs(t, cfg))
}

func TestResetDeletesStoredList(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Backend = backend
			_, err := execute(t, cfg, "add", "Temporary")
			require.NoError(t, err)

			out, err := execute(t, cfg, "reset", "--yes")
			require.NoError(t, err)
			assert.Equal(t, "removed \"tasks\"\n", out)
			assert.Empty(t, listIDs(t, cfg))

			_, err = execute(t, cfg, "reset", "--yes")
			require.NoError(t, err, "resetting an empty list is not an error")
		})
	}
}
