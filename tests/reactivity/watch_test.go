package reactivity_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxtools/carve/pkg/plan"
)

const goodPlan = `
structures:
  - id: PTV
  - id: Cord
pipeline:
  - op: ring
    base: ["PTV"]
    start: 10
    end: 20
    output: Shell
`

const badPlan = `
structures:
  - id: PTV
pipeline:
  - op: ring
    base: ["PTV"]
    start: 20
    end: 10
`

// setupWatch writes an initial plan, starts a watcher on it and drains the
// initial run event. It returns the plan path and the event channel.
func setupWatch(t *testing.T) (string, chan plan.Event, *plan.Watcher, context.CancelFunc) {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(goodPlan), 0644))

	events := make(chan plan.Event, 8)
	watcher := plan.NewWatcher(path, plan.NewRunner(nil, nil), events, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	require.NoError(t, watcher.Start(ctx))

	// The watcher runs the plan once up front.
	select {
	case e := <-events:
		require.Equal(t, plan.EventRun, e.Type)
		require.Equal(t, 1, e.Steps)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the initial run")
	}

	return path, events, watcher, cancel
}

func TestWatch_RerunsOnChange(t *testing.T) {
	path, events, watcher, cancel := setupWatch(t)
	defer cancel()
	defer watcher.Stop(context.Background())

	// Give fsnotify a moment before the external write.
	time.Sleep(100 * time.Millisecond)

	updated := goodPlan + `
  - op: union
    a: ["PTV"]
    b: ["Cord"]
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case e := <-events:
		assert.Equal(t, plan.EventRun, e.Type)
		assert.Equal(t, 2, e.Steps, "the re-run should see the appended step")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the re-run")
	}
}

func TestWatch_ReportsPlanErrors(t *testing.T) {
	path, events, watcher, cancel := setupWatch(t)
	defer cancel()
	defer watcher.Stop(context.Background())

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(badPlan), 0644))

	select {
	case e := <-events:
		assert.Equal(t, plan.EventError, e.Type)
		assert.Contains(t, e.Err, "step 0 (ring)")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the error event")
	}

	// A subsequent good save recovers.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(goodPlan), 0644))

	select {
	case e := <-events:
		assert.Equal(t, plan.EventRun, e.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for recovery")
	}
}

func TestWatch_Debounce(t *testing.T) {
	path, events, watcher, cancel := setupWatch(t)
	defer cancel()
	defer watcher.Stop(context.Background())

	time.Sleep(100 * time.Millisecond)

	// Rapid writes within the debounce window should collapse into one run.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(goodPlan), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	count := 0
	timeout := time.After(1 * time.Second)
	for {
		select {
		case <-events:
			count++
		case <-timeout:
			if count == 0 {
				t.Fatal("expected at least one run")
			}
			if count > 1 {
				t.Fatalf("expected 1 debounced run, got %d", count)
			}
			return
		}
	}
}

func TestWatch_StartDoesNotBlockWithoutConsumer(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(goodPlan), 0644))

	// Mirror the CLI wiring: an unbuffered channel whose consumer only
	// attaches after Start has returned. Start must hand the initial run to
	// the worker goroutine instead of delivering it synchronously.
	events := make(chan plan.Event)
	watcher := plan.NewWatcher(path, plan.NewRunner(nil, nil), events, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	started := make(chan error, 1)
	go func() { started <- watcher.Start(ctx) }()

	select {
	case err := <-started:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start blocked waiting for an event consumer")
	}
	defer watcher.Stop(context.Background())

	// The initial run arrives once the consumer shows up.
	select {
	case e := <-events:
		assert.Equal(t, plan.EventRun, e.Type)
		assert.Equal(t, 1, e.Steps)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the initial run")
	}
}

func TestWatch_StopIsClean(t *testing.T) {
	_, _, watcher, cancel := setupWatch(t)
	defer cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, watcher.Stop(stopCtx))

	// A second start on a stopped worker is rejected.
	err := watcher.Start(context.Background())
	assert.Error(t, err)
}
