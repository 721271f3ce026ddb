package tui

import (
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/stefanpenner/bujo/pkg/store"
)

const debounce = 200 * time.Millisecond

// StartWatcher watches the data directory and sends FileChangedMsg when the
// journal file changes.
func StartWatcher(root string, program *tea.Program) (func(), error) {
	return watch(root, func() { program.Send(FileChangedMsg{}) })
}

// watch calls notify, debounced, after writes to the journal file in root.
// The directory is watched rather than the file because saves may replace it.
func watch(root string, notify func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != store.DataFileName {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, notify)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Debug("watcher error", "error", err)

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}
