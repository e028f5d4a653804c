package bookings

import (
	"sync"

	"github.com/google/uuid"
)

// jobLocks serializes transitions per job id. Entries are reference counted
// and removed once the last holder releases, so the map stays bounded by the
// number of in-flight transitions.
type jobLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*jobLock
}

type jobLock struct {
	mu   sync.Mutex
	refs int
}

func newJobLocks() *jobLocks {
	return &jobLocks{locks: make(map[uuid.UUID]*jobLock)}
}

// Acquire blocks until the caller holds the lock for jobID and returns the
// release function.
func (j *jobLocks) Acquire(jobID uuid.UUID) func() {
	j.mu.Lock()
	entry, ok := j.locks[jobID]
	if !ok {
		entry = &jobLock{}
		j.locks[jobID] = entry
	}
	entry.refs++
	j.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		j.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(j.locks, jobID)
		}
		j.mu.Unlock()
	}
}
