package domain

import "sync"

// PhoneResource is a leasable originating number. It is owned exclusively by
// one job's pool and placed on at most one in-flight call at a time.
type PhoneResource struct {
	ID     string
	Number string

	inUse bool
}

// Pool tracks lease state for a job's fixed set of call-capable numbers.
type Pool struct {
	mu        sync.Mutex
	resources []*PhoneResource
}

// NewPool creates a pool over the given numbers. All resources start free.
func NewPool(resources []PhoneResource) *Pool {
	pool := &Pool{resources: make([]*PhoneResource, len(resources))}
	for i := range resources {
		r := resources[i]
		r.inUse = false
		pool.resources[i] = &r
	}
	return pool
}

// Lease returns the first free resource and marks it in use. The second
// return value is false when every resource is leased.
func (p *Pool) Lease() (PhoneResource, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.resources {
		if !r.inUse {
			r.inUse = true
			return *r, true
		}
	}
	return PhoneResource{}, false
}

// Release marks the resource free again. Releasing an unknown or already
// free resource is a no-op.
func (p *Pool) Release(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.resources {
		if r.ID == id {
			r.inUse = false
			return
		}
	}
}

// InUse returns how many resources are currently leased.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for _, r := range p.resources {
		if r.inUse {
			count++
		}
	}
	return count
}

// Size returns the total number of resources in the pool.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.resources)
}
