package soraterm

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/soraterm/soraterm/core"
	"github.com/soraterm/soraterm/internal/dispatch"
	"github.com/soraterm/soraterm/schema"
)

type signalTerminal struct {
	input chan []byte
}

func (t *signalTerminal) Input(data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)
	t.input <- buf
}

func (t *signalTerminal) Close() {}

type signalFactory struct {
	opened chan *signalTerminal
}

func newSignalFactory() *signalFactory {
	return &signalFactory{opened: make(chan *signalTerminal, 16)}
}

func (f *signalFactory) Open(profile schema.Profile) (core.Terminal, error) {
	term := &signalTerminal{input: make(chan []byte, 16)}
	f.opened <- term
	return term, nil
}

func testWorkspaceConfig() core.Config {
	return core.Config{
		DefaultProfile: "default",
		Profiles:       []schema.Profile{{Name: "default", Shell: "/bin/sh"}},
	}
}

func TestAppSocketEndToEnd(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "events.sock")
	factory := newSignalFactory()
	app, err := New(Config{
		Source:     schema.SourceSocket,
		SocketPath: socket,
		Workspace:  testWorkspaceConfig(),
	}, Deps{
		Terminals: factory,
		Queue:     dispatch.New(16, nil),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = app.Stop(context.Background()) }()

	conn := dialRetry(t, socket)
	defer conn.Close()
	lines := `{"event":"NewTerminalWithDefaultProfile"}` + "\n" +
		`{"event":"SendTextToTerminal","text":"echo hi\n"}` + "\n"
	if _, err := conn.Write([]byte(lines)); err != nil {
		t.Fatalf("write: %v", err)
	}

	var term *signalTerminal
	select {
	case term = <-factory.opened:
	case <-time.After(2 * time.Second):
		t.Fatalf("terminal never opened")
	}
	select {
	case got := <-term.input:
		if string(got) != "echo hi\n" {
			t.Fatalf("terminal input = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("text never reached the terminal")
	}
}

func TestAppStdinSourceAppliesEvents(t *testing.T) {
	pr, pw := io.Pipe()
	factory := newSignalFactory()
	app, err := New(Config{
		Source:    schema.SourceStdio,
		Workspace: testWorkspaceConfig(),
	}, Deps{
		Terminals: factory,
		Stdin:     pr,
		Queue:     dispatch.New(16, nil),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = app.Stop(context.Background()) }()

	go func() {
		_, _ = pw.Write([]byte("bad line\n" + `{"event":"NewTerminalWithDefaultProfile"}` + "\n"))
		_ = pw.Close()
	}()
	select {
	case <-factory.opened:
	case <-time.After(2 * time.Second):
		t.Fatalf("event from stdin never applied")
	}
}

func TestAppStopNotBlockedByIdleStdin(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	app, err := New(Config{
		Source:    schema.SourceStdio,
		Workspace: testWorkspaceConfig(),
	}, Deps{
		Terminals: newSignalFactory(),
		Stdin:     pr,
		Queue:     dispatch.New(16, nil),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := app.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Stdin never reaches EOF; shutdown must not wait for the reader.
	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		t.Fatalf("stop with idle stdin: %v", err)
	}
}

func TestAppObserversSeeAppliedEvents(t *testing.T) {
	var mu sync.Mutex
	var seen []schema.Tag
	observer := dispatch.ApplierFunc(func(ev schema.Event) {
		mu.Lock()
		seen = append(seen, ev.EventTag())
		mu.Unlock()
	})
	app, err := New(Config{Workspace: testWorkspaceConfig()}, Deps{
		Terminals: newSignalFactory(),
		Queue:     dispatch.New(16, nil),
		Observers: []dispatch.Applier{observer},
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = app.Stop(context.Background()) }()

	app.Queue().Send(schema.ToggleSearch{})
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("observer never saw the event")
}

func TestAppValidation(t *testing.T) {
	if _, err := New(Config{Source: "telepathy"}, Deps{}); err == nil {
		t.Fatalf("expected error for unknown source")
	}
	if _, err := New(Config{Source: schema.SourceSocket}, Deps{}); err == nil {
		t.Fatalf("expected error for socket source without path")
	}
}

func TestAppDoubleStartRejected(t *testing.T) {
	app, err := New(Config{Workspace: testWorkspaceConfig()}, Deps{Queue: dispatch.New(4, nil)})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = app.Stop(context.Background()) }()
	if err := app.Start(ctx); err == nil {
		t.Fatalf("expected second start to fail")
	}
}

func dialRetry(t *testing.T, socket string) net.Conn {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			return conn
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("socket %s never became dialable", socket)
	return nil
}
