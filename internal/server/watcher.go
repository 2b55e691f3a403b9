package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"talentsift/internal/errors"
	"talentsift/internal/lexicon"
)

// LexiconWatcher watches the lexicon overrides file and swaps in a
// rebuilt pipeline service when it changes.
type LexiconWatcher struct {
	mu sync.Mutex

	overridesFile string
	lastModTime   time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	server *Server
	logger *errors.Logger
}

// startLexiconWatcher starts watching the configured overrides file.
// Returns nil when hot reload is disabled or no overrides file is set.
func (s *Server) startLexiconWatcher() (*LexiconWatcher, error) {
	if s.AppConfig == nil || !s.AppConfig.Lexicon.WatchOverrides ||
		s.AppConfig.Lexicon.OverridesFile == "" {
		return nil, nil
	}

	lw := &LexiconWatcher{
		overridesFile: s.AppConfig.Lexicon.OverridesFile,
		debounceDelay: time.Second,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		server:        s,
		logger:        s.Logger,
	}

	if err := lw.start(); err != nil {
		return nil, err
	}
	return lw, nil
}

func (lw *LexiconWatcher) start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	lw.fsWatcher = watcher

	if stat, err := os.Stat(lw.overridesFile); err == nil {
		lw.lastModTime = stat.ModTime()
	}

	if err := lw.fsWatcher.Add(lw.overridesFile); err != nil {
		if !os.IsNotExist(err) {
			lw.cleanupWatcher()
			return fmt.Errorf("failed to watch file %s: %w", lw.overridesFile, err)
		}
	}
	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(lw.overridesFile)
	if err := lw.fsWatcher.Add(dir); err != nil {
		lw.cleanupWatcher()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	go lw.watchLoop()

	lw.logger.Info("Lexicon overrides watcher started",
		"file", lw.overridesFile,
		"debounce_delay", lw.debounceDelay)
	return nil
}

func (lw *LexiconWatcher) cleanupWatcher() {
	if lw.fsWatcher != nil {
		if closeErr := lw.fsWatcher.Close(); closeErr != nil {
			lw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// Stop stops the overrides file watcher.
func (lw *LexiconWatcher) Stop() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	close(lw.stopChan)
	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}
	lw.cleanupWatcher()

	lw.logger.Info("Lexicon overrides watcher stopped")
}

// watchLoop is the main event loop for file watching
func (lw *LexiconWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-lw.fsWatcher.Events:
			if !ok {
				return
			}
			if lw.shouldProcessEvent(event) {
				lw.scheduleReload()
			}

		case err, ok := <-lw.fsWatcher.Errors:
			if !ok {
				return
			}
			lw.logger.LogError(err, "Lexicon watcher error")

		case <-lw.reloadChan:
			// Debounced reload trigger
			if lw.hasFileChanged() {
				lw.reload()
			}

		case <-lw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (lw *LexiconWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != lw.overridesFile &&
		filepath.Base(event.Name) != filepath.Base(lw.overridesFile) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasFileChanged checks if the overrides file has been modified since last check
func (lw *LexiconWatcher) hasFileChanged() bool {
	stat, err := os.Stat(lw.overridesFile)
	if err != nil {
		return false
	}
	if stat.ModTime().After(lw.lastModTime) {
		lw.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// reload rebuilds the lexicon from the overrides file and swaps the
// pipeline service. A broken overrides file keeps the current lexicon.
func (lw *LexiconWatcher) reload() {
	overrides, err := lexicon.LoadOverrides(lw.overridesFile)
	if err != nil {
		lw.logger.LogError(err, "Failed to reload lexicon overrides, keeping current lexicon",
			"file", lw.overridesFile)
		return
	}

	data := overrides.Apply(lexicon.DefaultData())
	lex := lexicon.New(data)
	lw.server.SwapService(lw.server.Service().WithLexicon(lex))

	lw.logger.Info("Lexicon overrides reloaded", "file", lw.overridesFile)
}

// scheduleReload schedules a debounced reload
func (lw *LexiconWatcher) scheduleReload() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}

	lw.debounceTimer = time.AfterFunc(lw.debounceDelay, func() {
		select {
		case lw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}
