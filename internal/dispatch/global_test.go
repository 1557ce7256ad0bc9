package dispatch

import (
	"sync"
	"testing"

	"github.com/soraterm/soraterm/schema"
)

func TestDefaultInitializesOnce(t *testing.T) {
	const workers = 32
	queues := make([]*Queue, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			queues[i] = Default()
		}(i)
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		if queues[i] != queues[0] {
			t.Fatalf("worker %d observed a different queue", i)
		}
	}
	if queues[0].TrySend(schema.NextTab{}) {
		t.Fatalf("expected not-sent on a default queue with no consumer")
	}
}

func TestSetDefaultAfterInitRejected(t *testing.T) {
	existing := Default()
	if SetDefault(New(4, nil)) {
		t.Fatalf("expected SetDefault to reject replacement")
	}
	if Default() != existing {
		t.Fatalf("default queue changed")
	}
	if SetDefault(nil) {
		t.Fatalf("expected SetDefault(nil) to report false")
	}
}
