package extsource

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"pkt.systems/pslog"
)

// Listener accepts local-socket clients and injects their events. Each
// accepted connection gets its own session goroutine, so a slow or
// misbehaving client never blocks other clients or the accept loop.
type Listener struct {
	path        string
	sender      Sender
	log         pslog.Logger
	ln          atomic.Pointer[net.Listener]
	nextSession atomic.Uint64
}

// NewListener constructs a Listener for the socket path.
func NewListener(path string, sender Sender, logger pslog.Logger) (*Listener, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("event socket path is required")
	}
	if sender == nil {
		return nil, errors.New("event sender is required")
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Listener{
		path:   path,
		sender: sender,
		log:    logger.With("source", "socket", "path", path),
	}, nil
}

// ListenAndServe binds the socket and accepts clients until ctx is
// canceled or the listener fails. A stale socket file from a previous
// run is removed before binding.
func (l *Listener) ListenAndServe(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return err
	}
	_ = os.Remove(l.path)

	ln, err := net.Listen("unix", l.path)
	if err != nil {
		return err
	}
	if err := os.Chmod(l.path, 0o600); err != nil {
		_ = ln.Close()
		return err
	}
	l.ln.Store(&ln)
	defer l.Close()

	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()

	l.log.Info("event socket listening")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				l.log.Debug("event socket closed")
				return ctx.Err()
			}
			l.log.Warn("event socket accept failed", "err", err)
			return err
		}
		go l.serveSession(ctx, conn)
	}
}

// Close stops accepting and removes the socket file. Sessions already
// running drain independently.
func (l *Listener) Close() {
	if ln := l.ln.Swap(nil); ln != nil {
		_ = (*ln).Close()
		_ = os.Remove(l.path)
	}
}

func (l *Listener) serveSession(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()
	log := l.log.With("session", l.nextSession.Add(1))
	log.Debug("event session started")
	if err := readEvents(ctx, conn, l.sender, log); err != nil && ctx.Err() == nil {
		log.Warn("event session failed", "err", err)
		return
	}
	log.Debug("event session finished")
}
