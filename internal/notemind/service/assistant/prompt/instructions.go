package prompt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/echonote/pkg/logger"
)

const (
	instructionsFile     = "INSTRUCTIONS.md"
	instructionsPriority = 350
	reloadDelay          = 300 * time.Millisecond
)

// InstructionLoader serves user supplied prompt text from a directory:
// INSTRUCTIONS.md plus any prompts/*.md. Edits are picked up without a
// restart.
type InstructionLoader struct {
	mu      sync.RWMutex
	dir     string
	names   []string
	content map[string]string

	watcher *fsnotify.Watcher
	timer   *time.Timer
	closeCh chan struct{}
	closed  bool
}

// NewInstructionLoader returns nil when dir is empty or missing.
func NewInstructionLoader(dir string) *InstructionLoader {
	if dir == "" {
		return nil
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		logger.Warn("[InstructionLoader] resolve %q: %v", dir, err)
		return nil
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		logger.Debug("[InstructionLoader] %q is not a directory, skipping", absDir)
		return nil
	}

	l := &InstructionLoader{
		dir:     absDir,
		content: make(map[string]string),
		closeCh: make(chan struct{}),
	}
	l.reload()
	if err := l.watch(); err != nil {
		logger.Warn("[InstructionLoader] watcher unavailable, instructions are static: %v", err)
	}
	return l
}

// Sections returns one section per loaded file. INSTRUCTIONS.md comes first,
// extra prompts follow in file name order.
func (l *InstructionLoader) Sections() []PromptSection {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	sections := make([]PromptSection, 0, len(l.names))
	for i, name := range l.names {
		sections = append(sections, &instructionSection{
			name:     name,
			priority: instructionsPriority + i,
			loader:   l,
		})
	}
	return sections
}

func (l *InstructionLoader) get(name string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.content[name]
}

func (l *InstructionLoader) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.closeCh)
	if l.timer != nil {
		l.timer.Stop()
	}
	if l.watcher != nil {
		_ = l.watcher.Close()
	}
}

func (l *InstructionLoader) reload() {
	content := make(map[string]string)
	var names []string

	if body := readTrimmed(filepath.Join(l.dir, instructionsFile)); body != "" {
		content["instructions"] = body
		names = append(names, "instructions")
	}

	var extra []string
	entries, _ := os.ReadDir(filepath.Join(l.dir, "prompts"))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		body := readTrimmed(filepath.Join(l.dir, "prompts", entry.Name()))
		if body == "" {
			continue
		}
		name := "prompts:" + strings.TrimSuffix(entry.Name(), ".md")
		content[name] = body
		extra = append(extra, name)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	l.mu.Lock()
	l.content = content
	l.names = names
	l.mu.Unlock()

	logger.Debug("[InstructionLoader] loaded %d files from %s", len(names), l.dir)
}

func (l *InstructionLoader) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(l.dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %q: %w", l.dir, err)
	}
	if info, err := os.Stat(filepath.Join(l.dir, "prompts")); err == nil && info.IsDir() {
		_ = w.Add(filepath.Join(l.dir, "prompts"))
	}
	l.watcher = w
	go l.loop()
	return nil
}

func (l *InstructionLoader) loop() {
	for {
		select {
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if strings.HasSuffix(event.Name, ".md") {
				l.scheduleReload()
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("[InstructionLoader] watch error: %v", err)
		case <-l.closeCh:
			return
		}
	}
}

// scheduleReload coalesces bursts of editor writes into one reload.
func (l *InstructionLoader) scheduleReload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(reloadDelay, l.reload)
}

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

type instructionSection struct {
	name     string
	priority int
	loader   *InstructionLoader
}

func (s *instructionSection) Name() string  { return "instructions:" + s.name }
func (s *instructionSection) Priority() int { return s.priority }

func (s *instructionSection) Enabled(_ context.Context, _ *PromptContext) bool {
	return s.loader.get(s.name) != ""
}

func (s *instructionSection) Render(_ context.Context, _ *PromptContext) (string, error) {
	return s.loader.get(s.name), nil
}
