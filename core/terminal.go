package core

import (
	"context"

	"pkt.systems/pslog"

	"github.com/soraterm/soraterm/schema"
)

// Terminal is the input end of one shell session. PTY allocation and
// rendering live behind this boundary and are not part of the event
// core.
type Terminal interface {
	// Input forwards raw bytes, including control characters, to the
	// terminal.
	Input(data []byte)
	// Close releases the terminal.
	Close()
}

// TerminalFactory opens terminals for profiles.
type TerminalFactory interface {
	Open(profile schema.Profile) (Terminal, error)
}

// NewLoggingFactory returns a factory whose terminals log their input
// instead of driving a PTY. It backs headless runs and tests.
func NewLoggingFactory(logger pslog.Logger) TerminalFactory {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return loggingFactory{log: logger}
}

type loggingFactory struct {
	log pslog.Logger
}

func (f loggingFactory) Open(profile schema.Profile) (Terminal, error) {
	log := f.log.With("profile", profile.Name, "shell", profile.Shell)
	log.Info("terminal opened")
	return &loggingTerminal{log: log}, nil
}

type loggingTerminal struct {
	log pslog.Logger
}

func (t *loggingTerminal) Input(data []byte) {
	t.log.Debug("terminal input", "bytes", len(data))
}

func (t *loggingTerminal) Close() {
	t.log.Info("terminal closed")
}
