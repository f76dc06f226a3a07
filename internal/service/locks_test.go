package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodeLocksMutualExclusion(t *testing.T) {
	locks := NewCodeLocks()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("WS_00100")
			defer unlock()
			// Unsynchronized increment; only the lock protects it.
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestCodeLocksIndependentKeys(t *testing.T) {
	locks := NewCodeLocks()

	unlockA := locks.Lock("WS_00100")
	defer unlockA()

	// A different code must not block.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("WS_00200")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a different code blocked")
	}
}

func TestCodeLocksEntryReclaimed(t *testing.T) {
	locks := NewCodeLocks()

	unlock := locks.Lock("WS_00100")
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "released locks should not accumulate")
}
