package interview

import (
	"sync"

	"github.com/lmoretti/mockview/internal/domain"
)

// interviewLocks hands out one mutex per interview id so that concurrent
// submissions for the same interview are serialized while different
// interviews proceed in parallel. Locks are never reclaimed; the map grows
// with the number of distinct interviews this process has touched.
type interviewLocks struct {
	mu    sync.Mutex
	locks map[domain.InterviewID]*sync.Mutex
}

func newInterviewLocks() *interviewLocks {
	return &interviewLocks{
		locks: make(map[domain.InterviewID]*sync.Mutex),
	}
}

func (l *interviewLocks) get(id domain.InterviewID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
