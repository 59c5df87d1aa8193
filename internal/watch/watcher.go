package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mover/internal/config"
	"mover/internal/log"
)

// FileModification represents a file event detected by the watcher
type FileModification struct {
	Path      string
	Info      os.FileInfo
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher reports regular files created or written directly inside the
// watched directories. Subdirectories are not watched.
type Watcher struct {
	directories []string
	fileModChan chan FileModification
	stopChan    chan struct{}
	done        chan struct{}
	fsWatcher   *fsnotify.Watcher

	// Guards running and directories
	mutex   sync.RWMutex
	running bool
}

// New creates a new directory watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fileModChan: make(chan FileModification, 64),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory starts watching dir
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	for _, existing := range w.directories {
		if existing == dir {
			return nil
		}
	}
	w.directories = append(w.directories, dir)
	log.LogWithFields(log.F("directory", dir)).Info("watching directory")
	return nil
}

// FileChannel returns the channel that delivers file modification events.
// It is closed once the watcher has stopped.
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

// Start begins delivering events. A Watcher can be started once.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.done != nil {
		return fmt.Errorf("watcher already stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop()
	log.Debug("watcher started")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.fileModChan)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if mod, ok := w.inspect(event); ok {
				select {
				case w.fileModChan <- mod:
				case <-w.stopChan:
					return
				default:
					log.LogWithFields(log.F("file", event.Name)).Warn("event channel is full, dropped event")
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// inspect keeps create and write events for regular files other than the
// rule file.
func (w *Watcher) inspect(event fsnotify.Event) (FileModification, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return FileModification{}, false
	}
	if filepath.Base(event.Name) == config.FileName {
		return FileModification{}, false
	}

	// The file may already be gone, often because a pass moved it
	info, err := os.Lstat(event.Name)
	if err != nil {
		if !os.IsNotExist(err) {
			log.LogWithFields(log.F("file", event.Name)).WithError(err).Warn("error inspecting file")
		}
		return FileModification{}, false
	}
	if !info.Mode().IsRegular() {
		return FileModification{}, false
	}

	return FileModification{
		Path:      event.Name,
		Info:      info,
		Timestamp: time.Now(),
		Op:        event.Op,
	}, true
}

// Stop halts the watcher and waits for its event loop to exit
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		started := w.done != nil
		w.mutex.Unlock()
		if !started {
			_ = w.fsWatcher.Close()
		}
		return
	}
	w.running = false
	close(w.stopChan)
	w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithError(err).Error("error closing fsnotify watcher")
	}
	<-w.done
	log.Debug("watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
