package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/greenline/internal/backup"
	"github.com/roach88/greenline/internal/content"
	"github.com/roach88/greenline/internal/query"
	"github.com/roach88/greenline/internal/testutil"
)

// 2026-10-18T09:30:00Z in Unix milliseconds.
const epochMillis = 1792315800000

var epoch = time.UnixMilli(epochMillis).UTC()

// console runs CLI commands against one temporary SQLite database.
type console struct {
	t     *testing.T
	db    string
	clock *testutil.ManualClock
}

func newConsole(t *testing.T) *console {
	t.Helper()
	return &console{
		t:     t,
		db:    filepath.Join(t.TempDir(), "greenline.db"),
		clock: testutil.NewManualClock(epoch),
	}
}

type result struct {
	stdout string
	stderr string
	err    error
}

func (c *console) run(args ...string) result {
	c.t.Helper()
	opts := &RootOptions{
		Clock:  c.clock,
		Traces: testutil.NewFixedTraceGenerator("trace-test"),
	}
	cmd := newRootCommand(opts)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--db", c.db}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// ok runs a command that must succeed.
func (c *console) ok(args ...string) string {
	c.t.Helper()
	r := c.run(args...)
	require.NoError(c.t, r.err, "stderr: %s", r.stderr)
	return r.stdout
}

type response struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   *CLIError       `json:"error"`
	TraceID string          `json:"trace_id"`
}

// jsonData runs a command with --format json and decodes its data payload.
func jsonData[T any](c *console, args ...string) T {
	c.t.Helper()
	out := c.ok(append([]string{"--format", "json"}, args...)...)
	var resp response
	require.NoError(c.t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(c.t, "ok", resp.Status)
	assert.Equal(c.t, "trace-test", resp.TraceID)

	var data T
	require.NoError(c.t, json.Unmarshal(resp.Data, &data))
	return data
}

func (c *console) addPicture(alt, page string) {
	c.t.Helper()
	c.ok("picture", "add", "--url", "https://cdn.example.com/"+page+".jpg", "--alt", alt,
		"--page", page, "--section", "banner", "--tags", "field, green")
	c.clock.Advance(time.Minute)
}

func TestPictureCommands(t *testing.T) {
	c := newConsole(t)

	out := c.ok("picture", "add", "--url", "https://cdn.example.com/a.webp", "--alt", "Green field",
		"--page", "home", "--section", "banner", "--tags", "agriculture,field", "--size", "800x600")
	assert.Equal(t, "Added picture 1792315800000 (WEBP) to home/banner\n", out)
	c.clock.Advance(time.Minute)
	c.addPicture("Harvest", "about")

	pictures := jsonData[[]content.Picture](c, "picture", "ls")
	require.Len(t, pictures, 2)
	assert.Equal(t, "Harvest", pictures[0].Alt, "newest first by default")
	assert.Equal(t, []string{"agriculture", "field"}, pictures[1].Tags)
	assert.Equal(t, epoch, pictures[1].DateAdded)

	pictures = jsonData[[]content.Picture](c, "picture", "ls", "--page", "home")
	require.Len(t, pictures, 1)
	assert.Equal(t, "Green field", pictures[0].Alt)

	pictures = jsonData[[]content.Picture](c, "picture", "ls", "--search", "HARV")
	require.Len(t, pictures, 1)

	text := c.ok("picture", "ls", "--sort", "oldest")
	assert.Contains(t, text, "ALT")
	assert.Contains(t, text, "Green field")
	assert.Contains(t, text, "2026-10-18")

	out = c.ok("picture", "rm", "1792315800000")
	assert.Equal(t, "Removed 1 picture: 1792315800000\n", out)

	pictures = jsonData[[]content.Picture](c, "picture", "ls")
	require.Len(t, pictures, 1)
	assert.Equal(t, "Harvest", pictures[0].Alt)
}

func TestPictureAdd_ValidationFailure(t *testing.T) {
	c := newConsole(t)

	r := c.run("picture", "add", "--url", "https://cdn.example.com/a.jpg")
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.True(t, IsReported(r.err))
	assert.Contains(t, r.stderr, "Error [VALIDATION]")
	assert.Contains(t, r.stderr, "alt")

	pictures := jsonData[[]content.Picture](c, "picture", "ls")
	assert.Empty(t, pictures)
}

func TestPictureRemove_Errors(t *testing.T) {
	c := newConsole(t)
	c.addPicture("Field", "home")

	r := c.run("--format", "json", "picture", "rm", "42")
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	var resp response
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "trace-test", resp.TraceID)

	r = c.run("picture", "rm", "abc")
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
	assert.Contains(t, r.err.Error(), `invalid id "abc"`)

	r = c.run("picture", "rm")
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
}

func TestLeaderCommands(t *testing.T) {
	c := newConsole(t)

	c.ok("leader", "add", "--name", "Zed", "--title", "CFO", "--bio", "Money.", "--department", "finance", "--order", "3")
	c.clock.Advance(time.Minute)
	out := c.ok("leader", "add", "--name", "Ada Okafor", "--title", "CEO", "--bio", "Leads.", "--department", "executive")
	assert.Contains(t, out, "Added Ada Okafor (CEO)")
	assert.Contains(t, out, "position 1")
	c.clock.Advance(time.Minute)

	leaders := jsonData[[]content.Leader](c, "leader", "ls")
	require.Len(t, leaders, 2)
	assert.Equal(t, "Ada Okafor", leaders[0].Name)
	assert.Equal(t, content.PlaceholderPhoto("Ada Okafor"), leaders[0].Photo)

	leaders = jsonData[[]content.Leader](c, "leader", "ls", "--department", "finance")
	require.Len(t, leaders, 1)
	assert.Equal(t, "Zed", leaders[0].Name)

	leaders = jsonData[[]content.Leader](c, "leader", "ls", "--sort", string(query.SortNewest))
	assert.Equal(t, "Ada Okafor", leaders[0].Name)

	out = c.ok("leader", "rm", "1792315800000")
	assert.Contains(t, out, "Removed 1 leader")
	leaders = jsonData[[]content.Leader](c, "leader", "ls")
	require.Len(t, leaders, 1)
}

func TestLeaderAdd_Template(t *testing.T) {
	c := newConsole(t)

	leader := jsonData[content.Leader](c, "leader", "add", "--name", "Kofi Mensah", "--template", "2")
	tmpl := content.LeaderTemplates()[1]
	assert.Equal(t, "Kofi Mensah", leader.Name)
	assert.Equal(t, tmpl.Title, leader.Title)
	assert.Equal(t, tmpl.Bio, leader.Bio)
	assert.Equal(t, tmpl.Department, leader.Department)
	assert.Equal(t, tmpl.Expertise, leader.Expertise)

	r := c.run("leader", "add", "--template", "9")
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
	assert.Contains(t, r.err.Error(), "unknown template 9")
}

func TestLeaderTemplates(t *testing.T) {
	c := newConsole(t)

	templates := jsonData[[]content.Leader](c, "leader", "templates")
	assert.Len(t, templates, 3)

	text := c.ok("leader", "templates")
	assert.Contains(t, text, "Head of Sustainable Agriculture")
}

func TestActivityList(t *testing.T) {
	c := newConsole(t)
	c.addPicture("Field", "home")
	c.ok("picture", "rm", "1792315800000")

	records := jsonData[[]content.Activity](c, "activity", "ls")
	require.Len(t, records, 2)
	assert.Equal(t, "Image Added", records[0].Title)
	assert.Equal(t, "Image Removed", records[1].Title)
	assert.Equal(t, content.CategoryWarning, records[1].Category)

	records = jsonData[[]content.Activity](c, "activity", "ls", "-n", "1")
	require.Len(t, records, 1)
	assert.Equal(t, "Image Removed", records[0].Title)

	assert.Contains(t, c.ok("activity", "ls"), "just now")
}

func TestActivityList_RespectsConfiguredCapacity(t *testing.T) {
	c := newConsole(t)
	t.Setenv("GREENLINE_ACTIVITY_CAPACITY", "2")
	for _, alt := range []string{"a", "b", "c"} {
		c.addPicture(alt, "home")
	}

	records := jsonData[[]content.Activity](c, "activity", "ls")
	require.Len(t, records, 2)
	assert.Equal(t, `Added "b..." to home page`, records[0].Description)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newConsole(t)
	src.addPicture("Field", "home")
	src.ok("leader", "add", "--name", "Ada", "--title", "CEO", "--bio", "Leads.")

	dir := t.TempDir()
	out := src.ok("export", "-o", dir)
	file := filepath.Join(dir, "greenline-backup-2026-10-18.json")
	assert.Contains(t, out, file)

	blob, err := os.ReadFile(file)
	require.NoError(t, err)
	var snap backup.Snapshot
	require.NoError(t, json.Unmarshal(blob, &snap))
	assert.Equal(t, backup.Version, snap.Version)
	assert.Len(t, snap.Pictures, 1)
	assert.Len(t, snap.Leaders, 1)
	assert.Nil(t, snap.Activities)

	assert.Contains(t, src.ok("check", file), "ok")

	dst := newConsole(t)
	dst.addPicture("Old", "about")
	counts := jsonData[importResult](dst, "import", file)
	assert.Equal(t, importResult{Pictures: 1, Leaders: 1, Activities: 1}, counts)

	pictures := jsonData[[]content.Picture](dst, "picture", "ls")
	require.Len(t, pictures, 1)
	assert.Equal(t, "Field", pictures[0].Alt)
}

func TestExport_Stdout(t *testing.T) {
	c := newConsole(t)
	c.addPicture("Field", "home")

	out := c.ok("export", "pictures")
	var pictures []content.Picture
	require.NoError(t, json.Unmarshal([]byte(out), &pictures))
	assert.Len(t, pictures, 1)

	snap := jsonData[backup.Snapshot](c, "export", "activity")
	assert.Len(t, snap.Activities, 1)

	r := c.run("export", "settings")
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
}

func TestImport_MalformedBackup(t *testing.T) {
	c := newConsole(t)
	c.addPicture("Field", "home")

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"pictures": []}`), 0o644))

	r := c.run("import", file)
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.Contains(t, r.stderr, "Error [FORMAT]")

	pictures := jsonData[[]content.Picture](c, "picture", "ls")
	assert.Len(t, pictures, 1)

	r = c.run("import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
}

func TestCheck_ReportsProblems(t *testing.T) {
	c := newConsole(t)
	file := filepath.Join(t.TempDir(), "suspect.json")
	blob := `{"pictures": [], "leaders": [{"id": 1, "name": "", "title": "CEO", "bio": "b", "department": "x", "order": 1, "dateAdded": "2026-10-18T09:30:00Z"}]}`
	require.NoError(t, os.WriteFile(file, []byte(blob), 0o644))

	r := c.run("check", file)
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.True(t, IsReported(r.err))
	assert.Contains(t, r.stdout, "problems")
	assert.Contains(t, r.stdout, "leaders.0.name")
}

func TestSeedAndStats(t *testing.T) {
	c := newConsole(t)

	counts := jsonData[importResult](c, "seed")
	assert.Equal(t, importResult{Pictures: 3, Leaders: 2, Activities: 2}, counts)

	r := c.run("seed")
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.Contains(t, r.stderr, "--force")

	c.ok("seed", "--force")

	dash := jsonData[query.Dashboard](c, "stats")
	assert.Equal(t, 3, dash.PictureCount)
	assert.Equal(t, 2, dash.LeaderCount)
	assert.Len(t, dash.LatestPictures, 3)
	assert.Len(t, dash.LatestLeaders, 2)
	assert.Len(t, dash.RecentActivity, 2)

	text := c.ok("stats")
	assert.Contains(t, text, "Pictures: 3")
	assert.Contains(t, text, "Recent activity")

	// Seeded ids are observed, so new pictures never collide with them.
	c.addPicture("Fresh", "home")
	pictures := jsonData[[]content.Picture](c, "picture", "ls")
	assert.Len(t, pictures, 4)
}

func TestBackendSelection(t *testing.T) {
	c := newConsole(t)

	r := c.run("--backend", "postgres", "stats")
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
	assert.Contains(t, r.stderr, "invalid configuration")

	// The memory backend starts empty on every invocation.
	c.ok("--backend", "memory", "picture", "add", "--url", "https://x/a.png", "--alt", "a")
	out := c.ok("--backend", "memory", "picture", "ls")
	assert.Contains(t, out, "No pictures found.")
}

func TestConfigFile(t *testing.T) {
	c := newConsole(t)
	cfg := filepath.Join(t.TempDir(), "greenline.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("backend: memory\nlocale: sv\n"), 0o644))

	out := c.ok("--config", cfg, "picture", "ls")
	assert.Contains(t, out, "No pictures found.")

	r := c.run("--config", filepath.Join(t.TempDir(), "missing.yaml"), "stats")
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
}
