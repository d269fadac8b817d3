// Package critical brackets the short read-modify-write sections shared by
// the tick and button handlers.
//
// On the device a section masks interrupts, which gives the same guarantee as
// running both handlers at one priority ceiling: neither can interleave with
// the other. On the host a mutex stands in for the mask so the same code can
// be driven from concurrent goroutines under the race detector.
//
// Sections must stay short and bounded. They are not reentrant.
package critical

import "sync"

// State is the opaque token returned by Enter and handed back to Exit.
type State uintptr

// Section is one mutual-exclusion domain.
type Section interface {
	Enter() State
	Exit(State)
}

// Do runs fn inside s.
func Do(s Section, fn func()) {
	st := s.Enter()
	fn()
	s.Exit(st)
}

// Mutex is a Section backed by sync.Mutex.
type Mutex struct {
	mu sync.Mutex
}

func (m *Mutex) Enter() State { m.mu.Lock(); return 0 }
func (m *Mutex) Exit(State)   { m.mu.Unlock() }
