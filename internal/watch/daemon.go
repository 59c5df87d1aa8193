package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mover/internal/log"
	"mover/pkg/types"
)

// DefaultQuietPeriod is how long the directory must stay quiet after an
// event before a pass runs.
const DefaultQuietPeriod = 500 * time.Millisecond

// PassFunc organizes the watched directory once. Returning an error stops
// the daemon.
type PassFunc func() (types.Summary, error)

// DaemonStatus represents the current status of the daemon
type DaemonStatus struct {
	Running      bool
	Directory    string
	LastActivity time.Time     // Time of the last file event
	Passes       int           // Passes run since Run started
	Totals       types.Summary // Accumulated over all passes
}

// Option configures a Daemon
type Option func(*Daemon)

// WithQuietPeriod sets the debounce delay between the last event and a pass
func WithQuietPeriod(d time.Duration) Option {
	return func(dm *Daemon) { dm.quiet = d }
}

// WithIgnore skips events for paths where ignore returns true, typically
// files the previous passes moved into place.
func WithIgnore(ignore func(path string) bool) Option {
	return func(dm *Daemon) { dm.ignore = ignore }
}

// Daemon re-organizes a directory whenever files appear in it
type Daemon struct {
	dir    string
	pass   PassFunc
	quiet  time.Duration
	ignore func(path string) bool

	watcher *Watcher

	mutex        sync.RWMutex
	running      bool
	passes       int
	totals       types.Summary
	lastActivity time.Time
}

// NewDaemon creates a Daemon for dir. pass is called on the goroutine that
// calls Run, one pass at a time.
func NewDaemon(dir string, pass PassFunc, opts ...Option) *Daemon {
	d := &Daemon{
		dir:    dir,
		pass:   pass,
		quiet:  DefaultQuietPeriod,
		ignore: func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start begins watching the directory. Events that arrive before Run are
// queued for it, so a caller can start watching, organize the directory once
// and then call Run without missing files created in between. Run calls
// Start itself when it has not been called.
func (d *Daemon) Start() error {
	if d.watcher != nil {
		return nil
	}
	watcher, err := New()
	if err != nil {
		return err
	}
	if err := watcher.AddDirectory(d.dir); err != nil {
		watcher.Stop()
		return err
	}
	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return err
	}
	d.watcher = watcher
	return nil
}

// Stop releases the watcher. Run stops it on return.
func (d *Daemon) Stop() {
	if d.watcher == nil {
		return
	}
	d.watcher.Stop()
	d.watcher = nil
}

// Run watches the directory until ctx is done or a pass fails. Bursts of
// events within the quiet period trigger a single pass.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}
	events := d.watcher.FileChannel()
	defer d.Stop()

	d.setRunning(true)
	defer d.setRunning(false)

	// Reset on a stopped or fired timer never delivers a stale tick
	timer := time.NewTimer(d.quiet)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("watch cancelled")
			return nil

		case mod, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher for %s stopped unexpectedly", d.dir)
			}
			if d.ignore(mod.Path) {
				log.Debugf("ignoring event for %s", mod.Path)
				continue
			}
			d.mutex.Lock()
			d.lastActivity = mod.Timestamp
			d.mutex.Unlock()

			timer.Reset(d.quiet)

		case <-timer.C:
			summary, err := d.pass()
			if err != nil {
				return err
			}
			d.mutex.Lock()
			d.passes++
			d.totals.Add(summary)
			d.mutex.Unlock()
			log.LogWithFields(log.F("processed", summary.Processed), log.F("total", summary.Total)).Info("watch pass complete")
		}
	}
}

func (d *Daemon) setRunning(running bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.running = running
}

// Status returns a snapshot of the daemon's counters
func (d *Daemon) Status() DaemonStatus {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return DaemonStatus{
		Running:      d.running,
		Directory:    d.dir,
		LastActivity: d.lastActivity,
		Passes:       d.passes,
		Totals:       d.totals,
	}
}
