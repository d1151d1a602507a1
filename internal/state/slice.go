// Package state implements the async slices: small state machines that
// track every remote fetch/mutation as Idle -> Pending -> Success/Error.
package state

import "sync"

type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Slice holds one piece of remote-backed data together with the status of
// the operation that last touched it. Transitions:
//
//	Start:   -> Pending, clears the error, keeps the last good data
//	Succeed: -> Success, replaces the data
//	Fail:    -> Error, keeps the data, records the message
//
// All methods are safe for concurrent use. When overlapping operations
// resolve, the last resolution wins regardless of issue order.
type Slice[T any] struct {
	mu     sync.Mutex
	data   T
	status Status
	err    string
}

func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{status: StatusIdle}
}

func (s *Slice[T]) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusPending
	s.err = ""
}

func (s *Slice[T]) Succeed(data T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.status = StatusSuccess
	s.err = ""
}

// SucceedWith transitions to Success with data derived from the previous
// value. Booking creation uses it to append one record instead of
// replacing the whole sequence.
func (s *Slice[T]) SucceedWith(fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fn(s.data)
	s.status = StatusSuccess
	s.err = ""
}

func (s *Slice[T]) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusError
	s.err = msg
}

// Reset returns the slice to Idle with zeroed data. The session store
// uses it on logout.
func (s *Slice[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.data = zero
	s.status = StatusIdle
	s.err = ""
}

func (s *Slice[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	if s.status == StatusError {
		s.status = StatusIdle
	}
}

func (s *Slice[T]) Snapshot() (T, Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.status, s.err
}

func (s *Slice[T]) Data() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

func (s *Slice[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Slice[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
