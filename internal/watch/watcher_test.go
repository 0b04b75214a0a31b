package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watch.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeRules(t, `
debounce_ms: 250
rules:
  - database: data/app.db
    output: out/app.xlsx
  - database: data/logs.db
    output: out/logs.xlsx
    tables: [events, errors]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DebounceMs != 250 {
		t.Errorf("DebounceMs = %d", cfg.DebounceMs)
	}
	if len(cfg.Rules) != 2 {
		t.Fatalf("rules = %+v", cfg.Rules)
	}
	if cfg.Rules[0].Database != "data/app.db" || cfg.Rules[0].Output != "out/app.xlsx" {
		t.Errorf("rule 0 = %+v", cfg.Rules[0])
	}
	if len(cfg.Rules[1].Tables) != 2 || cfg.Rules[1].Tables[0] != "events" {
		t.Errorf("rule 1 tables = %v", cfg.Rules[1].Tables)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty", "", "no rules"},
		{"no rules", "debounce_ms: 100\n", "no rules"},
		{"missing output", "rules:\n  - database: a.db\n", "needs both"},
		{"missing database", "rules:\n  - output: a.xlsx\n", "needs both"},
		{"bad yaml", "rules: [\n", "invalid"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeRules(t, c.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error = %v, want substring %q", err, c.wantErr)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestMatchRules(t *testing.T) {
	w := New(Config{Rules: []Rule{
		{Database: "a.db", Output: "a.xlsx"},
		{Database: "./a.db", Output: "a2.xlsx"},
		{Database: "b.db", Output: "b.xlsx"},
	}}, nil, nil)

	// Path spellings that resolve to the same file all match.
	matched := w.matchRules("a.db")
	if len(matched) != 2 {
		t.Fatalf("matched = %+v", matched)
	}
	if matched[0].Output != "a.xlsx" || matched[1].Output != "a2.xlsx" {
		t.Errorf("matched = %+v", matched)
	}
	if got := w.matchRules("c.db"); len(got) != 0 {
		t.Errorf("unrelated path matched: %+v", got)
	}
}

func TestRunRecordsEvents(t *testing.T) {
	var handled []string
	w := New(Config{}, func(rule Rule) error {
		handled = append(handled, rule.Database)
		return nil
	}, nil)

	w.run(Rule{Database: "x.db", Output: "x.xlsx"})
	if len(handled) != 1 || handled[0] != "x.db" {
		t.Errorf("handler calls = %v", handled)
	}
	if len(w.Events) != 1 || w.Events[0].Status != "exported" {
		t.Errorf("events = %+v", w.Events)
	}
}

func TestRunRecordsErrors(t *testing.T) {
	w := New(Config{}, func(rule Rule) error {
		return os.ErrPermission
	}, nil)
	w.run(Rule{Database: "x.db", Output: "x.xlsx"})
	if len(w.Events) != 1 || w.Events[0].Status != "error" || w.Events[0].Error == "" {
		t.Errorf("events = %+v", w.Events)
	}
}
