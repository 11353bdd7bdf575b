package drinklog

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupEnv isolates config lookup and pins the calendar to Tokyo.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"DRINKLOG_CONFIG", "DRINKLOG_DB_PATH", "DRINKLOG_DB_DRIVER", "DRINKLOG_WEEK_START", "DRINKLOG_NOTIFY", "DRINKLOG_SENTRY_DSN"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("DRINKLOG_TIMEZONE", "Asia/Tokyo")
	t.Setenv("DRINKLOG_LOCALE", "ja-JP")
	t.Setenv("DRINKLOG_LOG_LEVEL", "error")
	return dir
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command in-process and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("drinklog %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	setupEnv(t)
	out := mustRun(t, "--help")
	if !strings.Contains(out, "drinklog") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "drinklog.db")
	for i := 0; i < 2; i++ {
		out, err := runCLI(t, "--db", path, "init")
		if err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
		if !strings.Contains(out, "schema 1/1") {
			t.Fatalf("unexpected init output: %q", out)
		}
	}
}

func TestDayInTheLifeFlow(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "drinklog.db")

	mustRun(t, "--db", db, "init")

	out := mustRun(t, "--db", db, "beverage", "list")
	if !strings.Contains(out, "Sake (1 go)") {
		t.Fatalf("expected built-in templates, got:\n%s", out)
	}

	out = mustRun(t, "--db", db, "drink", "add", "--beverage", "Beer", "--date", "2025-01-06", "--time", "20:00")
	if !strings.Contains(out, "= 14.0g pure alcohol") {
		t.Fatalf("unexpected drink add output: %q", out)
	}
	out = mustRun(t, "--db", db, "drink", "add", "--beverage", "Sake (1 go)", "--date", "2025-01-06", "--time", "21:00", "--note", "with dinner")
	if !strings.Contains(out, "Today: 35.6g / 40g (approaching)") {
		t.Fatalf("unexpected day evaluation: %q", out)
	}

	out = mustRun(t, "--db", db, "drink", "list", "--from", "2025-01-01", "--to", "2025-01-31", "--json")
	var events []eventView
	if err := json.Unmarshal([]byte(out), &events); err != nil {
		t.Fatalf("decode drink list: %v\n%s", err, out)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 drinks, got %d", len(events))
	}
	if !strings.HasSuffix(events[0].OccurredAt, "+09:00") {
		t.Fatalf("expected Tokyo offset, got %s", events[0].OccurredAt)
	}

	out = mustRun(t, "--db", db, "stats", "week", "--date", "2025-01-08", "--json")
	var weekly struct {
		FromDate   string `json:"from_date"`
		RestDays   int    `json:"rest_days"`
		Statistics struct {
			Total float64 `json:"total_pure_alcohol_g"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal([]byte(out), &weekly); err != nil {
		t.Fatalf("decode stats week: %v\n%s", err, out)
	}
	if weekly.FromDate != "2025-01-05" {
		t.Fatalf("expected Sunday week start, got %s", weekly.FromDate)
	}
	if math.Abs(weekly.Statistics.Total-35.6) > 1e-9 {
		t.Fatalf("expected 35.6 g, got %v", weekly.Statistics.Total)
	}
	if weekly.RestDays != 6 {
		t.Fatalf("expected 6 rest days, got %d", weekly.RestDays)
	}

	reportPath := filepath.Join(dir, "reports", "jan.md")
	promPath := filepath.Join(dir, "drinklog.prom")
	mustRun(t, "--db", db, "stats", "month", "--month", "2025-01", "--out", reportPath, "--out-format", "markdown", "--metrics-out", promPath)
	md, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(md), "Beer") {
		t.Fatalf("markdown report missing beverage rows:\n%s", md)
	}
	prom, err := os.ReadFile(promPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), `drinklog_records{period="month"} 2`) {
		t.Fatalf("unexpected metrics textfile:\n%s", prom)
	}

	out = mustRun(t, "--db", db, "calendar", "--month", "2025-01")
	if !strings.Contains(out, "January 2025") {
		t.Fatalf("unexpected calendar output:\n%s", out)
	}

	csvPath := filepath.Join(dir, "drinks.csv")
	out = mustRun(t, "--db", db, "export", "--format", "csv", "--out", csvPath)
	if !strings.Contains(out, "Exported 2 drinks") {
		t.Fatalf("unexpected export output: %q", out)
	}

	other := filepath.Join(dir, "other.db")
	out = mustRun(t, "--db", other, "import", "--file", csvPath, "--dry-run")
	if !strings.Contains(out, "2 new") {
		t.Fatalf("unexpected dry run output: %q", out)
	}
	out = mustRun(t, "--db", other, "import", "--file", csvPath)
	if !strings.Contains(out, "2 inserted") {
		t.Fatalf("unexpected import output: %q", out)
	}
	if _, err := runCLI(t, "--db", other, "import", "--file", csvPath); err == nil {
		t.Fatalf("expected duplicate import to fail in fail mode")
	}
	out = mustRun(t, "--db", other, "import", "--file", csvPath, "--mode", "skip")
	if !strings.Contains(out, "2 skipped") {
		t.Fatalf("unexpected skip import output: %q", out)
	}

	mustRun(t, "--db", db, "doctor")

	mustRun(t, "--db", db, "drink", "delete", events[0].ID)
	if _, err := runCLI(t, "--db", db, "drink", "show", events[0].ID); err == nil {
		t.Fatalf("expected deleted drink to be missing")
	}
}

func TestCLIRejectsInvalidInput(t *testing.T) {
	setupEnv(t)
	db := filepath.Join(t.TempDir(), "drinklog.db")
	mustRun(t, "--db", db, "init")

	cases := [][]string{
		{"drink", "add", "--beverage", "Beer", "--volume", "-5"},
		{"drink", "add", "--beverage", "Homebrew", "--volume", "300"},
		{"drink", "add", "--beverage", "Beer", "--time", "25:00"},
		{"stats", "range", "--from", "2025-13-01", "--to", "2025-01-31"},
		{"stats", "week", "--week", "2025-W60"},
		{"goal", "set"},
		{"beverage", "delete", "Beer"},
		{"import", "--mode", "merge"},
	}
	for _, args := range cases {
		if _, err := runCLI(t, append([]string{"--db", db}, args...)...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestGoalAndBeverageCommands(t *testing.T) {
	setupEnv(t)
	db := filepath.Join(t.TempDir(), "drinklog.db")

	out := mustRun(t, "--db", db, "goal", "show")
	if !strings.Contains(out, "Weekly limit: 140g") {
		t.Fatalf("expected default goal, got:\n%s", out)
	}
	out = mustRun(t, "--db", db, "goal", "set", "--weekly-limit", "100", "--rest-days", "3", "--reminder=false")
	if !strings.Contains(out, "Weekly limit: 100g") || !strings.Contains(out, "Reminder: off") {
		t.Fatalf("unexpected goal set output:\n%s", out)
	}

	mustRun(t, "--db", db, "beverage", "add", "--name", "Craft IPA", "--strength", "6.5", "--volume", "330", "--category", "beer")
	out = mustRun(t, "--db", db, "drink", "add", "--beverage", "Craft IPA", "--date", "2025-01-06", "--time", "19:00")
	if !strings.Contains(out, "330ml 6.5%") {
		t.Fatalf("expected custom template defaults, got %q", out)
	}
	mustRun(t, "--db", db, "beverage", "delete", "Craft IPA")
}

func TestBackupAndConfigCommands(t *testing.T) {
	home := setupEnv(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "drinklog.db")
	mustRun(t, "--db", db, "init")

	backups := filepath.Join(dir, "snapshots")
	out := mustRun(t, "--db", db, "backup", "create", "--dir", backups)
	if !strings.Contains(out, "Created backup: "+backups) {
		t.Fatalf("unexpected backup output: %q", out)
	}
	out = mustRun(t, "--db", db, "backup", "list", "--dir", backups)
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected header and one backup, got:\n%s", out)
	}
	if _, err := runCLI(t, "--db", db, "backup", "restore", "latest", "--dir", backups); err == nil {
		t.Fatalf("expected restore over an existing database to require --force")
	}
	out = mustRun(t, "--db", db, "backup", "restore", "latest", "--dir", backups, "--force")
	if !strings.Contains(out, "Restored "+db+" from "+backups) {
		t.Fatalf("unexpected restore output: %q", out)
	}

	cfgPath := filepath.Join(home, "custom.yaml")
	mustRun(t, "--config", cfgPath, "config", "init")
	if _, err := runCLI(t, "--config", cfgPath, "config", "init"); err == nil {
		t.Fatalf("expected config init to refuse overwriting")
	}
	out = mustRun(t, "--config", cfgPath, "config", "show")
	if !strings.Contains(out, "timezone: Asia/Tokyo") {
		t.Fatalf("expected env override in effective config, got:\n%s", out)
	}
	out = mustRun(t, "--config", cfgPath, "config", "path")
	if strings.TrimSpace(out) != cfgPath {
		t.Fatalf("unexpected config path %q", out)
	}
}

func TestResolveWeekRefUsesISOThursday(t *testing.T) {
	setupEnv(t)
	rt = runtimeEnv{}
	ref, err := resolveWeekRef("2025-W02", "")
	if err != nil {
		t.Fatalf("resolve week: %v", err)
	}
	if got := ref.Format(dateLayout); got != "2025-01-09" {
		t.Fatalf("expected Thursday 2025-01-09, got %s", got)
	}
	if _, err := resolveWeekRef("2026-W53", ""); err != nil {
		t.Fatalf("2026 has 53 ISO weeks: %v", err)
	}
	if _, err := resolveWeekRef("2025-W53", ""); err == nil {
		t.Fatalf("expected 2025-W53 to be rejected")
	}
	if _, err := resolveYearRef("20x5"); err == nil {
		t.Fatalf("expected invalid year error")
	}
	if ref, _ := resolveYearRef("2024"); ref.Year() != 2024 || ref.Month() != time.January {
		t.Fatalf("unexpected year ref %v", ref)
	}
}
