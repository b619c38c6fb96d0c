package recovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeGoRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SafeGoWithCleanup("panicky", func() {
		panic("boom")
	}, func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not run after panic")
	}
}

func TestSafeGoRuns(t *testing.T) {
	ran := make(chan bool, 1)
	SafeGo("worker", func() { ran <- true })

	select {
	case v := <-ran:
		assert.True(t, v)
	case <-time.After(time.Second):
		t.Fatal("goroutine never ran")
	}
}
