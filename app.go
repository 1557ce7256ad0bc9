// Package soraterm wires the event injection core: the dispatch queue,
// the workspace that owns UI state, and the optional external event
// source (standard input or a local socket). Producers anywhere in the
// process inject events through the queue; one dispatch loop applies
// them to the workspace strictly in order.
package soraterm

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/soraterm/soraterm/core"
	"github.com/soraterm/soraterm/internal/dispatch"
	"github.com/soraterm/soraterm/internal/extsource"
	"github.com/soraterm/soraterm/schema"
)

// stopTimeout bounds how long shutdown waits for components to finish.
const stopTimeout = 10 * time.Second

// Config configures the event core.
type Config struct {
	// Source selects the external event source. SourceNone leaves only
	// in-process producers.
	Source schema.ExternalSource
	// SocketPath is the local endpoint bound when Source is
	// SourceSocket.
	SocketPath string
	// QueueDepth bounds the dispatch queue; zero means the default.
	QueueDepth int
	// Workspace configures the UI-state owner.
	Workspace core.Config
}

// Deps captures dependencies required to build the app.
type Deps struct {
	// Terminals opens terminals for profiles. Defaults to a logging
	// factory suitable for headless runs.
	Terminals core.TerminalFactory
	// Logger for all components. Defaults to the ambient logger.
	Logger pslog.Logger
	// Stdin overrides the standard-input stream for the stdio source.
	Stdin io.Reader
	// Queue overrides the dispatch queue. When nil, the app constructs
	// one and installs it as the process-wide queue so that events sent
	// through the package-level injection handle reach this app.
	Queue *dispatch.Queue
	// Observers additionally receive every applied event, after the
	// workspace, still on the dispatch loop.
	Observers []dispatch.Applier
}

// App composes the queue, the workspace, and the external source.
type App struct {
	cfg       Config
	queue     *dispatch.Queue
	workspace *core.Workspace
	listener  *extsource.Listener
	stdin     io.Reader
	observers []dispatch.Applier
	log       pslog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	errCh   chan error
	done    sync.WaitGroup
	started bool
}

// New constructs the app. It does not bind sockets or start
// goroutines; Start does.
func New(cfg Config, deps Deps) (*App, error) {
	if cfg.Source == "" {
		cfg.Source = schema.SourceNone
	}
	if !cfg.Source.Valid() {
		return nil, errors.New("unsupported external source")
	}
	if cfg.Source == schema.SourceSocket && cfg.SocketPath == "" {
		return nil, errors.New("socket source requires a socket path")
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	terminals := deps.Terminals
	if terminals == nil {
		terminals = core.NewLoggingFactory(logger)
	}

	queue := deps.Queue
	if queue == nil {
		queue = dispatch.New(cfg.QueueDepth, logger)
		if !dispatch.SetDefault(queue) {
			// Someone produced before we got here; adopt their queue so
			// nothing already buffered is lost.
			queue = dispatch.Default()
		}
	}

	workspace, err := core.NewWorkspace(cfg.Workspace, terminals, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:       cfg,
		queue:     queue,
		workspace: workspace,
		stdin:     deps.Stdin,
		observers: deps.Observers,
		log:       logger,
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if cfg.Source == schema.SourceSocket {
		listener, err := extsource.NewListener(cfg.SocketPath, queue, logger)
		if err != nil {
			return nil, err
		}
		app.listener = listener
	}
	return app, nil
}

// Queue returns the injection handle for in-process producers.
func (a *App) Queue() *dispatch.Queue { return a.queue }

// Workspace returns the UI-state owner.
func (a *App) Workspace() *core.Workspace { return a.workspace }

// Start launches the dispatch loop and the configured external source.
func (a *App) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return errors.New("app already started")
	}
	a.ctx, a.cancel = context.WithCancel(ctx)
	a.errCh = make(chan error, 2)
	a.started = true
	a.mu.Unlock()

	a.log.Info("event core start", "source", a.cfg.Source, "queue_depth", a.queue.Depth())

	sink := a.sink()
	a.done.Add(1)
	go func() {
		defer a.done.Done()
		if err := a.queue.Run(a.ctx, sink); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("dispatch loop failed", "err", err)
			a.errCh <- err
		}
	}()

	switch a.cfg.Source {
	case schema.SourceStdio:
		// Not tracked by a.done: a blocked stdin read cannot be
		// interrupted by cancellation, so Stop must not join this
		// goroutine. It exits with the process, like socket sessions.
		go func() {
			if err := extsource.RunStdin(a.ctx, a.stdin, a.queue, a.log); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("stdin source failed", "err", err)
				a.errCh <- err
			}
		}()
	case schema.SourceSocket:
		a.done.Add(1)
		go func() {
			defer a.done.Done()
			if err := a.listener.ListenAndServe(a.ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("socket source failed", "err", err)
				a.errCh <- err
			}
		}()
	}
	return nil
}

func (a *App) sink() dispatch.Applier {
	if len(a.observers) == 0 {
		return a.workspace
	}
	sinks := make([]dispatch.Applier, 0, len(a.observers)+1)
	sinks = append(sinks, a.workspace)
	sinks = append(sinks, a.observers...)
	return applyFanout(sinks)
}

// Wait blocks until the app stops or a component fails.
func (a *App) Wait() error {
	a.mu.Lock()
	ctx := a.ctx
	errCh := a.errCh
	started := a.started
	a.mu.Unlock()
	if !started {
		return errors.New("app not started")
	}
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			defer cancel()
			_ = a.Stop(stopCtx)
			return err
		}
		return nil
	}
}

// Stop cancels all components and waits for them to finish.
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	cancel := a.cancel
	started := a.started
	a.mu.Unlock()
	if !started {
		return nil
	}
	a.log.Info("event core stop requested")
	if cancel != nil {
		cancel()
	}
	finished := make(chan struct{})
	go func() {
		a.done.Wait()
		close(finished)
	}()
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
