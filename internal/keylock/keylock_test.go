package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	k := New()

	const workers = 16
	var inSection, maxInSection, counter int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("a@x.com")
			defer unlock()

			mu.Lock()
			inSection++
			if inSection > maxInSection {
				maxInSection = inSection
			}
			mu.Unlock()

			counter++ // protected by the keyed lock, not mu

			mu.Lock()
			inSection--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInSection, "two holders inside the same-key section")
	assert.Equal(t, workers, counter)
}

func TestLockDifferentKeysDoNotBlock(t *testing.T) {
	k := New()

	unlockA := k.Lock("a@x.com")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := k.Lock("b@x.com")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a different key blocked behind an unrelated holder")
	}
}

func TestEntriesAreDroppedWhenUncontended(t *testing.T) {
	k := New()

	unlock := k.Lock("a@x.com")
	require.Equal(t, 1, k.Len())
	unlock()
	assert.Equal(t, 0, k.Len())

	// heavy churn must not leak entries
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := k.Lock("churn@x.com")
			u()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, k.Len())
}

func TestUnlockIsIdempotent(t *testing.T) {
	k := New()

	unlock := k.Lock("a@x.com")
	unlock()
	unlock() // second call must be a no-op, not an unlock of somebody else

	u2 := k.Lock("a@x.com")
	u2()
	assert.Equal(t, 0, k.Len())
}
