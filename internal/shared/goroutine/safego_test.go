package goroutine

import (
	"sync"
	"testing"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	SafeGo(logger.NewNopLogger(), "panicky", func() {
		defer wg.Done()
		panic("boom")
	})

	wg.Wait()
}

func TestSafeGo_Runs(t *testing.T) {
	done := make(chan struct{})
	SafeGo(logger.NewNopLogger(), "worker", func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fn did not run")
	}
}
