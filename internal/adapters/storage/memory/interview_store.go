package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/lmoretti/mockview/internal/domain"
)

// InterviewStore keeps interviews in a map. Records are cloned on the way in
// and out so callers mutating an *Interview cannot change stored state
// before Save; that keeps the no-persist-on-fallback rule honest.
type InterviewStore struct {
	mu         sync.RWMutex
	interviews map[domain.InterviewID]*domain.Interview
}

func NewInterviewStore() *InterviewStore {
	return &InterviewStore{
		interviews: make(map[domain.InterviewID]*domain.Interview),
	}
}

func (s *InterviewStore) Create(iv *domain.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.interviews[iv.ID]; exists {
		return errors.New("interview already exists")
	}

	s.interviews[iv.ID] = iv.Clone()
	return nil
}

func (s *InterviewStore) Get(id domain.InterviewID) (*domain.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	iv, ok := s.interviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return iv.Clone(), nil
}

func (s *InterviewStore) Save(iv *domain.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.interviews[iv.ID]; !exists {
		return domain.ErrNotFound
	}

	s.interviews[iv.ID] = iv.Clone()
	return nil
}

func (s *InterviewStore) ListRecent(limit int) ([]*domain.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		out = append(out, iv.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len reports the number of stored interviews. Test helper.
func (s *InterviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.interviews)
}
