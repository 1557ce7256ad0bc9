package main

import (
	"bufio"
	"bytes"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soraterm/soraterm/schema"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), "soraterm") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--output", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestSendCommandWritesWireLine(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "events.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	lines := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		if scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	root := newRootCmd()
	root.SetArgs([]string{"send", "switch-to", "2", "--event-socket", socket})
	if err := root.Execute(); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case line := <-lines:
		ev, err := schema.Decode([]byte(line))
		if err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		got, ok := ev.(schema.SwitchToTab)
		if !ok || got.Position != 2 {
			t.Fatalf("unexpected event: %#v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no line received")
	}
}

func TestSendRejectsBadIndex(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"send", "switch-to", "minus-one", "--event-socket", "/tmp/unused.sock"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for non-numeric position")
	}
}
