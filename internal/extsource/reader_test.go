package extsource

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/soraterm/soraterm/schema"
)

type collectSender struct {
	mu     sync.Mutex
	events []schema.Event
}

func (c *collectSender) Send(ev schema.Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collectSender) snapshot() []schema.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]schema.Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestRunStdinMalformedLineIsolation(t *testing.T) {
	input := "bad json\n{\"event\":\"NextTab\"}\n"
	sender := &collectSender{}
	if err := RunStdin(context.Background(), strings.NewReader(input), sender, nil); err != nil {
		t.Fatalf("reader failed: %v", err)
	}
	events := sender.snapshot()
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d: %#v", len(events), events)
	}
	if _, ok := events[0].(schema.NextTab); !ok {
		t.Fatalf("unexpected event: %#v", events[0])
	}
}

func TestRunStdinSkipsBlankLines(t *testing.T) {
	input := "\n   \n{\"event\":\"ToggleSearch\"}\n\n"
	sender := &collectSender{}
	if err := RunStdin(context.Background(), strings.NewReader(input), sender, nil); err != nil {
		t.Fatalf("reader failed: %v", err)
	}
	if got := len(sender.snapshot()); got != 1 {
		t.Fatalf("expected one event, got %d", got)
	}
}

func TestRunStdinEndsCleanlyOnEOF(t *testing.T) {
	sender := &collectSender{}
	if err := RunStdin(context.Background(), strings.NewReader(""), sender, nil); err != nil {
		t.Fatalf("expected clean EOF, got %v", err)
	}
}

func TestRunStdinDecodesPayloadFields(t *testing.T) {
	input := `{"event":"NewTerminalWithProfile","profile_name":"zsh","working_directory":"/tmp"}` + "\n"
	sender := &collectSender{}
	if err := RunStdin(context.Background(), strings.NewReader(input), sender, nil); err != nil {
		t.Fatalf("reader failed: %v", err)
	}
	events := sender.snapshot()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	ev, ok := events[0].(schema.NewTerminalWithProfile)
	if !ok {
		t.Fatalf("unexpected event: %#v", events[0])
	}
	if ev.ProfileName != "zsh" || ev.WorkingDirectory == nil || *ev.WorkingDirectory != "/tmp" {
		t.Fatalf("unexpected payload: %#v", ev)
	}
}
