package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last file event before a
// rebuild starts.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Options

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// OnBuild is called after every compile, including the first one.
	OnBuild func(*Result, error)
}

// Watch compiles the project, then recompiles whenever a file in the project
// directory changes, until ctx is cancelled. Compile failures are passed to
// OnBuild and do not stop watching. Rapid events are coalesced into one
// rebuild. Changes inside the output directory and hidden files are ignored.
func Watch(ctx context.Context, projectPath string, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	build := func() {
		res, err := Compile(ctx, projectPath, opts.Options)
		if opts.OnBuild != nil {
			opts.OnBuild(res, err)
		}
	}

	project, err := LoadProject(projectPath)
	if err != nil {
		return err
	}
	outDir, err := filepath.Abs(project.OutputDir())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	w := &projectWatcher{watcher: watcher, outDir: outDir}
	if err := w.addDirectory(project.Dir); err != nil {
		return fmt.Errorf("failed to watch project: %w", err)
	}

	build()

	timer := time.NewTimer(opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addDirectory(event.Name)
				}
			}
			timer.Reset(opts.Debounce)

		case <-timer.C:
			build()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if opts.OnBuild != nil {
				opts.OnBuild(nil, fmt.Errorf("file watcher error: %w", err))
			}
		}
	}
}

type projectWatcher struct {
	watcher *fsnotify.Watcher
	outDir  string
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// inOutput reports whether path is the output directory or inside it.
func (w *projectWatcher) inOutput(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(w.outDir, abs)
	return err == nil && !strings.HasPrefix(rel, "..")
}

// addDirectory watches dir and its subdirectories.
func (w *projectWatcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (isHidden(path) || w.inOutput(path)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		return nil
	})
}

// shouldProcessEvent determines if an event should trigger a rebuild.
func (w *projectWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return !isHidden(event.Name) && !w.inOutput(event.Name)
}
