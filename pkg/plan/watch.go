package plan

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a plan file whenever it changes on disk. Filesystem events
// are debounced so editors that write in bursts trigger one run, not many.
type Watcher struct {
	*worker.BaseWorker
	path     string
	runner   *Runner
	events   chan<- Event
	logger   *slog.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
}

// NewWatcher creates a watcher for the plan at path. Run outcomes are
// delivered on events.
func NewWatcher(path string, runner *Runner, events chan<- Event, logger *slog.Logger) *Watcher {
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("plan-watcher"),
		path:       filepath.Clean(path),
		runner:     runner,
		events:     events,
		logger:     logger,
		debounce:   50 * time.Millisecond,
	}
}

// Start begins watching. The run loop executes the plan once up front so
// consumers see the current state before the first change. Start itself
// never blocks on event delivery: the caller may attach a consumer to the
// events channel after Start returns.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: editors replace files on save, which would
	// silently drop a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = watcher

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

// Stop requests shutdown and waits for the run loop to exit.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

// State implements worker introspection.
func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// run is the main event loop for the watcher worker.
func (w *Watcher) run(ctx context.Context) error {
	defer w.watcher.Close()

	w.rerun(ctx)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.logger != nil {
				w.logger.Debug("plan changed", "path", event.Name, "op", event.Op)
			}
			pending = time.After(w.debounce)

		case <-pending:
			pending = nil
			w.rerun(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Error("fsnotify error", "error", err)
			}
		}
	}
}

// rerun loads and executes the plan, reporting the outcome as an Event.
func (w *Watcher) rerun(ctx context.Context) {
	p, err := Load(w.path)
	if err != nil {
		w.send(ctx, NewErrorEvent(w.path, err))
		return
	}
	results, _, err := w.runner.Run(ctx, p)
	if err != nil {
		w.send(ctx, NewErrorEvent(w.path, err))
		return
	}
	w.send(ctx, NewRunEvent(w.path, len(results)))
}

func (w *Watcher) send(ctx context.Context, e Event) {
	select {
	case w.events <- e:
	case <-ctx.Done():
	}
}
