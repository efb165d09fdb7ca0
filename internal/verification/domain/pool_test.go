package domain

import (
	"fmt"
	"sync"
	"testing"
)

func testResources(n int) []PhoneResource {
	resources := make([]PhoneResource, n)
	for i := range resources {
		resources[i] = PhoneResource{ID: fmt.Sprintf("num-%d", i), Number: fmt.Sprintf("+1212867530%d", i)}
	}
	return resources
}

func TestPoolLeaseMarksResourceInUse(t *testing.T) {
	pool := NewPool(testResources(2))

	first, ok := pool.Lease()
	if !ok {
		t.Fatal("expected lease to succeed on a fresh pool")
	}
	if pool.InUse() != 1 {
		t.Fatalf("expected 1 leased resource, got %d", pool.InUse())
	}

	second, ok := pool.Lease()
	if !ok {
		t.Fatal("expected second lease to succeed")
	}
	if second.ID == first.ID {
		t.Fatalf("leased the same resource twice: %s", first.ID)
	}
}

func TestPoolLeaseFailsWhenExhausted(t *testing.T) {
	pool := NewPool(testResources(1))

	if _, ok := pool.Lease(); !ok {
		t.Fatal("expected first lease to succeed")
	}
	if _, ok := pool.Lease(); ok {
		t.Fatal("expected lease on an exhausted pool to fail")
	}
}

func TestPoolReleaseFreesResourceForReuse(t *testing.T) {
	pool := NewPool(testResources(1))

	leased, _ := pool.Lease()
	pool.Release(leased.ID)

	if pool.InUse() != 0 {
		t.Fatalf("expected no leased resources after release, got %d", pool.InUse())
	}
	if _, ok := pool.Lease(); !ok {
		t.Fatal("expected released resource to be leasable again")
	}
}

func TestPoolReleaseIsNoOpForFreeOrUnknownResources(t *testing.T) {
	pool := NewPool(testResources(2))

	pool.Release("num-0")   // already free
	pool.Release("missing") // unknown

	if pool.InUse() != 0 {
		t.Fatalf("expected no leased resources, got %d", pool.InUse())
	}
	if pool.Size() != 2 {
		t.Fatalf("expected pool size 2, got %d", pool.Size())
	}
}

func TestPoolConcurrentLeaseNeverDoubleLeases(t *testing.T) {
	const size = 8
	pool := NewPool(testResources(size))

	var mu sync.Mutex
	seen := make(map[string]int)

	var wg sync.WaitGroup
	for i := 0; i < size*4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, ok := pool.Lease()
			if !ok {
				return
			}
			mu.Lock()
			seen[r.ID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != size {
		t.Fatalf("expected %d distinct leases, got %d", size, len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("resource %s leased %d times while in use", id, count)
		}
	}
}
