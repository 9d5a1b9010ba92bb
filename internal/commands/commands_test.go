package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planline/planline/internal/config"
)

const sampleRecords = `creator: dana
records:
  - record_id: "1"
    content: "Design review"
    project: "atlas"
    people: "Alice, Bob"
    start_time: "2024-03-04"
    time: "2024-03-06"
  - record_id: "2"
    content: "Rollout"
    project: "borealis"
    people: "Alice"
    time: "2024-03-12"
    completed: true
  - record_id: "3"
    content: "No dates, dropped"
    project: "atlas"
    people: "Bob"
`

func writeRecords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRecords), 0o644))
	return path
}

func run(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetContext(WithConfig(context.Background(), cfg))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testConfig(file string) *config.Config {
	cfg := config.Default()
	cfg.File = file
	return cfg
}

func TestRecordsCmd(t *testing.T) {
	path := writeRecords(t)

	out, err := run(t, NewRecordsCmd(), testConfig(path))
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2, "the record without dates is dropped")

	assert.Equal(t, "Design review", items[0]["content"])
	assert.Equal(t, "2024-03-04", items[0]["start"])
	assert.Equal(t, "2024-03-06", items[0]["end"])
	assert.Equal(t, []any{"Alice", "Bob"}, items[0]["people"])

	// A single date fills both ends of the span.
	assert.Equal(t, "2024-03-12", items[1]["start"])
	assert.Equal(t, "2024-03-12", items[1]["end"])
	assert.Equal(t, true, items[1]["completed"])
}

func TestRecordsCmdProjectFilter(t *testing.T) {
	path := writeRecords(t)

	out, err := run(t, NewRecordsCmd(), testConfig(path), "--project", "atlas")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "atlas", items[0]["project"])
}

func TestRecordsCmdJQ(t *testing.T) {
	path := writeRecords(t)

	out, err := run(t, NewRecordsCmd(), testConfig(path), "--jq", ".[].content")
	require.NoError(t, err)
	assert.Contains(t, out, `"Design review"`)
	assert.Contains(t, out, `"Rollout"`)
	assert.NotContains(t, out, "project")
}

func TestRecordsCmdBadJQ(t *testing.T) {
	path := writeRecords(t)

	_, err := run(t, NewRecordsCmd(), testConfig(path), "--jq", ".[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse jq expression")
}

func TestRecordsCmdMissingFile(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := run(t, NewRecordsCmd(), cfg)
	require.Error(t, err)
}

func TestExportCmdStdout(t *testing.T) {
	path := writeRecords(t)

	out, err := run(t, NewExportCmd(), testConfig(path))
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Design review")
	assert.Contains(t, out, "dana")
}

func TestExportCmdFile(t *testing.T) {
	path := writeRecords(t)
	dest := filepath.Join(t.TempDir(), "chart.svg")

	out, err := run(t, NewExportCmd(), testConfig(path), "-o", dest, "--view", "person")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Person")
}

func TestExportCmdBadView(t *testing.T) {
	path := writeRecords(t)
	_, err := run(t, NewExportCmd(), testConfig(path), "--view", "quarter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view mode")
}

func TestExportCmdDayWidthOutOfRange(t *testing.T) {
	path := writeRecords(t)
	_, err := run(t, NewExportCmd(), testConfig(path), "--day-width", "500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestInitCmdCreates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planline.yaml")

	out, err := run(t, NewInitCmd(), testConfig(path))
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "records:")
	assert.Contains(t, string(data), "start_time:")
}

func TestInitCmdForceOverwrites(t *testing.T) {
	path := writeRecords(t)

	_, err := run(t, NewInitCmd(), testConfig(path), "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Kick-off")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, NewVersionCmd(), testConfig(""))
	require.NoError(t, err)
	assert.Contains(t, out, "planline version")
}

func TestResolveEnvNoFile(t *testing.T) {
	cmd := &cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.SetContext(WithConfig(context.Background(), testConfig("")))
	require.NoError(t, cmd.Execute())

	_, err := ResolveEnv(cmd)
	require.Error(t, err)
}

func TestEnvIdentityPrefersConfig(t *testing.T) {
	env := &Env{Config: &config.Config{Identity: "pat"}}
	assert.Equal(t, "pat", env.Identity())
}

func TestEnvStatePathStable(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	env := &Env{Config: &config.Config{File: "/data/team.yaml"}}

	a, err := env.StatePath()
	require.NoError(t, err)
	b, err := env.StatePath()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, ".json", filepath.Ext(a))
}
