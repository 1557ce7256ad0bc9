// Package extsource translates out-of-process input (standard input,
// local socket clients) into events. Readers never touch UI state; they
// only produce events through the injection handle they are given.
package extsource

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"pkt.systems/pslog"

	"github.com/soraterm/soraterm/schema"
)

// Sender is the producing half of the dispatch queue.
type Sender interface {
	Send(ev schema.Event)
}

// Individual wire lines larger than this are rejected by the scanner.
const maxLineBytes = 1 << 20

// readEvents pumps newline-delimited JSON from r into the sender until
// EOF, an I/O error, or ctx cancellation. Malformed lines are logged
// and discarded; one bad line never terminates the reader.
func readEvents(ctx context.Context, r io.Reader, sender Sender, log pslog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := schema.Decode(line)
		if err != nil {
			log.Warn("event line discarded", "err", err)
			continue
		}
		// Can park on a full queue if the dispatch loop already exited;
		// reader goroutines are not joined at shutdown, so the hang is
		// confined to process exit.
		sender.Send(ev)
	}
	return scanner.Err()
}

// RunStdin reads the process's standard input as a stream of
// newline-delimited events, injecting each valid one via a blocking
// send. End of input terminates the reader cleanly.
func RunStdin(ctx context.Context, r io.Reader, sender Sender, logger pslog.Logger) error {
	if logger == nil {
		logger = pslog.Ctx(ctx)
	}
	log := logger.With("source", "stdin")
	log.Debug("stdin reader started")
	err := readEvents(ctx, r, sender, log)
	if err != nil {
		log.Warn("stdin reader failed", "err", err)
		return err
	}
	log.Debug("stdin reader finished")
	return nil
}
