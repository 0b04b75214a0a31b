// Package watch provides a file system watcher that re-exports databases
// to workbooks whenever they change.
package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Rule maps one watched database to its export target.
type Rule struct {
	Database string   `yaml:"database"`
	Output   string   `yaml:"output"`
	Tables   []string `yaml:"tables,omitempty"`
}

// Config holds the complete watcher configuration.
type Config struct {
	Rules      []Rule `yaml:"rules"`
	DebounceMs int    `yaml:"debounce_ms"`
}

// LoadConfig reads a YAML rules file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read watch config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid watch config %s: %w", path, err)
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("watch config %s has no rules", path)
	}
	for i, r := range cfg.Rules {
		if r.Database == "" || r.Output == "" {
			return nil, fmt.Errorf("watch rule %d needs both database and output", i+1)
		}
	}
	return &cfg, nil
}

// Event records one processed change.
type Event struct {
	Time     time.Time `json:"time"`
	Database string    `json:"database"`
	Output   string    `json:"output"`
	Status   string    `json:"status"` // "exported", "error"
	Error    string    `json:"error,omitempty"`
}

// Handler performs the export for a matched rule.
type Handler func(rule Rule) error

// Watcher monitors the configured databases and re-exports on change.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Handler Handler
	Events  []Event

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// New creates a watcher for the given rules.
func New(cfg Config, handler Handler, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.New(os.Stderr, "watch: ", log.LstdFlags)
	}
	return &Watcher{
		Config:   cfg,
		Logger:   logger,
		Handler:  handler,
		debounce: make(map[string]*time.Timer),
	}
}

// Start begins watching. It blocks until stop is closed.
func (w *Watcher) Start(stop <-chan struct{}) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	w.watcher = fw
	defer fw.Close()

	// Watch the parent directories: editors and SQLite replace files
	// rather than writing in place, which drops inode-level watches.
	dirs := make(map[string]bool)
	for _, r := range w.Config.Rules {
		dir := filepath.Dir(r.Database)
		if !dirs[dir] {
			if err := fw.Add(dir); err != nil {
				return fmt.Errorf("could not watch %s: %w", dir, err)
			}
			dirs[dir] = true
			w.Logger.Printf("watching %s", dir)
		}
	}

	for {
		select {
		case <-stop:
			return nil
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("watch error: %v", err)
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			for _, rule := range w.matchRules(ev.Name) {
				w.schedule(rule)
			}
		}
	}
}

func (w *Watcher) matchRules(path string) []Rule {
	var matched []Rule
	for _, r := range w.Config.Rules {
		if sameFile(r.Database, path) {
			matched = append(matched, r)
		}
	}
	return matched
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return a == b
	}
	return aa == bb
}

// schedule debounces rapid successive writes to one database into a single
// export.
func (w *Watcher) schedule(rule Rule) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delay := time.Duration(w.Config.DebounceMs) * time.Millisecond
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	if t, ok := w.debounce[rule.Database]; ok {
		t.Stop()
	}
	w.debounce[rule.Database] = time.AfterFunc(delay, func() {
		w.run(rule)
	})
}

func (w *Watcher) run(rule Rule) {
	ev := Event{Time: time.Now(), Database: rule.Database, Output: rule.Output}
	if err := w.Handler(rule); err != nil {
		ev.Status = "error"
		ev.Error = err.Error()
		w.Logger.Printf("export %s failed: %v", rule.Database, err)
	} else {
		ev.Status = "exported"
		w.Logger.Printf("exported %s -> %s", rule.Database, rule.Output)
	}

	w.mu.Lock()
	w.Events = append(w.Events, ev)
	w.mu.Unlock()
}
