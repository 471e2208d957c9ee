// Package procstate holds the process-wide state that must survive across
// independent entry-point invocations: the module's own file path and the
// recorded outcome of the loadu entry point. Each value lives in a narrow,
// explicitly synchronized single-slot store instead of ambient globals.
package procstate

import "sync"

// PathStore is a single-slot holder for the module's own file path. The
// zero value is ready to use and reads as absent until the first Register.
type PathStore struct {
	mu   sync.RWMutex
	path string
	set  bool
}

// Register stores path, replacing any previous value. Safe to call
// concurrently with Read and with another Register.
func (s *PathStore) Register(path string) {
	s.mu.Lock()
	s.path, s.set = path, true
	s.mu.Unlock()
}

// Read returns the stored path, or ok=false if no Register has completed.
// It never blocks on a writer for more than the slot swap itself and never
// observes a partial write.
func (s *PathStore) Read() (path string, ok bool) {
	s.mu.RLock()
	path, ok = s.path, s.set
	s.mu.RUnlock()
	return path, ok
}

// ResultStore is a single-slot holder for an entry point's recorded boolean
// outcome. The zero value reads as absent.
type ResultStore struct {
	mu  sync.RWMutex
	v   bool
	set bool
}

// Record stores the outcome, replacing any previous value.
func (s *ResultStore) Record(ok bool) {
	s.mu.Lock()
	s.v, s.set = ok, true
	s.mu.Unlock()
}

// Read returns the recorded outcome, or ok=false if nothing was recorded.
func (s *ResultStore) Read() (v, ok bool) {
	s.mu.RLock()
	v, ok = s.v, s.set
	s.mu.RUnlock()
	return v, ok
}

var (
	sharedPath  PathStore
	sharedLoadU ResultStore
)

// SharedPath returns the process-wide path store the generated entry points
// register into.
func SharedPath() *PathStore { return &sharedPath }

// SharedLoadUResult returns the process-wide store recording the last loadu
// outcome.
func SharedLoadUResult() *ResultStore { return &sharedLoadU }
