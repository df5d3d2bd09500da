// FILE: shelldeck/settings/watch.go
package settings

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// File watching timing constants.
const (
	SpinWaitInterval    = 5 * time.Millisecond
	MinPollInterval     = 100 * time.Millisecond
	ShutdownTimeout     = 100 * time.Millisecond
	DefaultDebounce     = 500 * time.Millisecond
	DefaultPollInterval = time.Second
	DefaultMaxWatchers  = 100
)

// WatchOptions configures settings file watching.
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to coalesce rapid successive writes, as editors
	// saving a file often produce several events in a row
	Debounce time.Duration

	// MaxWatchers limits concurrent subscriber channels
	MaxWatchers int
}

// DefaultWatchOptions returns sensible defaults for file watching.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval: DefaultPollInterval,
		Debounce:     DefaultDebounce,
		MaxWatchers:  DefaultMaxWatchers,
	}
}

// Watcher polls the user settings file and re-runs the full load
// pipeline when it changes. Subscribers receive the freshly loaded tree;
// a change that fails to load is logged and not delivered, so
// subscribers only ever observe valid settings.
type Watcher struct {
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
	opts          WatchOptions
	path          string
	loaderOpts    []LoaderOption
	lastModTime   time.Time
	lastSize      int64
	watching      atomic.Bool
	reloading     atomic.Bool
	subscribers   map[int64]chan *Settings
	subscriberID  atomic.Int64
	debounceTimer *time.Timer
}

// WatchSettings starts watching the settings file at path. Reloads use
// the same loader options as the original load, so generators and
// fragments stay in effect.
func WatchSettings(path string, opts WatchOptions, loaderOpts ...LoaderOption) *Watcher {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.MaxWatchers <= 0 {
		opts.MaxWatchers = DefaultMaxWatchers
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		ctx:         ctx,
		cancel:      cancel,
		opts:        opts,
		path:        path,
		loaderOpts:  loaderOpts,
		subscribers: make(map[int64]chan *Settings),
	}

	if info, err := os.Stat(path); err == nil {
		w.lastModTime = info.ModTime()
		w.lastSize = info.Size()
	}

	go w.watchLoop()
	return w
}

// Subscribe returns a channel delivering each successfully reloaded
// settings tree. The channel closes when the watcher stops. Past the
// subscriber limit a closed channel is returned.
func (w *Watcher) Subscribe() <-chan *Settings {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.subscribers) >= w.opts.MaxWatchers {
		ch := make(chan *Settings)
		close(ch)
		return ch
	}

	ch := make(chan *Settings, 1)
	id := w.subscriberID.Add(1)
	w.subscribers[id] = ch

	go func() {
		<-w.ctx.Done()
		w.mu.Lock()
		delete(w.subscribers, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// IsWatching reports whether the poll loop is running.
func (w *Watcher) IsWatching() bool {
	return w.watching.Load()
}

// Stop terminates the watcher and waits briefly for the loop to exit.
func (w *Watcher) Stop() {
	w.cancel()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}

func (w *Watcher) watchLoop() {
	if !w.watching.CompareAndSwap(false, true) {
		return
	}
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkForChange()
		}
	}
}

func (w *Watcher) checkForChange() {
	info, err := os.Stat(w.path)
	if err != nil {
		return
	}
	if info.ModTime().Equal(w.lastModTime) && info.Size() == w.lastSize {
		return
	}
	w.lastModTime = info.ModTime()
	w.lastSize = info.Size()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, w.performReload)
	w.mu.Unlock()
}

func (w *Watcher) performReload() {
	if !w.reloading.CompareAndSwap(false, true) {
		return
	}
	defer w.reloading.Store(false)

	s, err := LoadAll(w.path, w.loaderOpts...)
	if err != nil {
		logger.Warn("settings reload failed, keeping previous settings", "error", err)
		return
	}
	w.notify(s)
}

func (w *Watcher) notify(s *Settings) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers {
		select {
		case ch <- s:
		default:
			// subscriber is lagging, drop this update for it
		}
	}
}
