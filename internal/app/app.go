// Package app wires together all adapters and domain logic. It owns
// the host side of the analysis boundary: dictionary lifecycle,
// pre-flight validation, and the single-flight busy flag.
package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/camille/redite/internal/adapters/bbolt"
	"github.com/camille/redite/internal/adapters/bundlefile"
	fsw "github.com/camille/redite/internal/adapters/fsnotify"
	"github.com/camille/redite/internal/domain/analysis"
)

// ErrBusy rejects an analysis request while another is in flight. The
// request is discarded, never queued.
var ErrBusy = errors.New("analysis already in progress")

// ErrNoDictionary means no bundle could be loaded from the store or the
// bundle file; run the build pipeline first.
var ErrNoDictionary = errors.New("no dictionary loaded; run 'redite build' first")

// Config holds app construction parameters.
type Config struct {
	DataDir      string
	StemFallback bool
	Logger       *log.Logger
}

// App is the top-level container wiring all components together.
type App struct {
	cfg    Config
	logger *log.Logger

	Store   *bbolt.Store
	Watcher *fsw.Watcher
	View    *HighlightView

	mu        sync.Mutex
	engine    *analysis.Engine
	dictSize  int
	timestamp string
	busy      bool
}

// New opens the store and loads the dictionary. The dictionary comes
// from the portable bundle file first, falling back to bbolt; if
// neither exists the app still starts, but Analyze fails with
// ErrNoDictionary until a bundle is built.
func New(cfg Config) (*App, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = DataDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "redite: ", log.LstdFlags)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	store, err := bbolt.NewStore(DBPath(cfg.DataDir))
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		logger: cfg.Logger,
		Store:  store,
		View:   NewHighlightView(cfg.Logger),
	}

	if err := a.ReloadDictionary(); err != nil && !errors.Is(err, ErrNoDictionary) {
		store.Close()
		return nil, err
	}
	return a, nil
}

// ReloadDictionary loads the bundle and swaps in a fresh engine built
// around it. The bundle file takes priority over the store: the file
// is the artifact the build pipeline and other processes write, and
// the daemon holds the store's exclusive lock, so a fresh file is
// persisted into the store here. The previous engine keeps serving any
// in-flight analysis; a loaded dictionary is never mutated, only
// replaced whole.
func (a *App) ReloadDictionary() error {
	bundle, err := bundlefile.Read(BundlePath(a.cfg.DataDir))
	if err == nil {
		if err := a.Store.SaveBundle(bundle); err != nil {
			return err
		}
	} else {
		bundle, err = a.Store.LoadBundle()
		if err != nil {
			return err
		}
		if bundle == nil {
			return ErrNoDictionary
		}
	}

	dict := analysis.NewDictionary(bundle)
	engine := analysis.NewEngine(dict, a.cfg.StemFallback)

	a.mu.Lock()
	a.engine = engine
	a.dictSize = len(dict)
	a.timestamp = bundle.Timestamp
	a.mu.Unlock()

	a.logger.Printf("dictionary loaded: %d entries (built %s)", len(dict), bundle.Timestamp)
	return nil
}

// Start begins watching the bundle file for hot reloads.
func (a *App) Start() error {
	w, err := fsw.NewWatcher()
	if err != nil {
		return err
	}
	a.Watcher = w

	return w.Watch(BundlePath(a.cfg.DataDir), func(path string) {
		if err := a.ReloadDictionary(); err != nil {
			a.logger.Printf("bundle reload failed: %v", err)
		}
	})
}

// Stop releases the watcher and the store.
func (a *App) Stop() error {
	if a.Watcher != nil {
		a.Watcher.Stop()
	}
	return a.Store.Close()
}

// DictionaryStats reports the loaded dictionary's size and build time.
func (a *App) DictionaryStats() (entries int, timestamp string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dictSize, a.timestamp
}

// Busy reports whether an analysis is currently in flight.
func (a *App) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Analyze validates the text, claims the busy flag, and starts the
// engine. Validation failures never touch the busy state. A request
// arriving while one is in flight gets ErrBusy — logged and discarded.
// The returned channel relays the engine's events; the busy flag clears
// when the terminal event passes through.
func (a *App) Analyze(text string) (<-chan analysis.Event, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.engine == nil {
		a.mu.Unlock()
		return nil, ErrNoDictionary
	}
	if a.busy {
		a.mu.Unlock()
		a.logger.Printf("analysis request discarded: %v", ErrBusy)
		return nil, ErrBusy
	}
	a.busy = true
	engine := a.engine
	a.mu.Unlock()

	out := make(chan analysis.Event, 8)
	go func() {
		defer close(out)
		for ev := range engine.Analyze(text) {
			out <- ev
			switch ev.(type) {
			case analysis.Complete, analysis.Failure:
				a.mu.Lock()
				a.busy = false
				a.mu.Unlock()
			}
		}
	}()
	return out, nil
}
