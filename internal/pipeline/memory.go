package pipeline

import (
	"sync"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
)

// MemoryDedupStore is the in-memory DedupStore variant, selected at process
// start for dry runs and used in tests. It deliberately does not implement the
// batch-runner claim queries, so it cannot be handed to a stage runner.
type MemoryDedupStore struct {
	mu     sync.Mutex
	status map[string]string
}

func NewMemoryDedupStore() *MemoryDedupStore {
	return &MemoryDedupStore{status: make(map[string]string)}
}

func (s *MemoryDedupStore) HasSeen(article model.RawArticle) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.status[article.Key()]
	return ok, nil
}

func (s *MemoryDedupStore) MarkSeen(articles []model.RawArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range articles {
		if _, ok := s.status[a.Key()]; ok {
			continue
		}
		s.status[a.Key()] = model.StatusNew
	}
	return nil
}

func (s *MemoryDedupStore) MarkStatus(articles []model.RawArticle, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range articles {
		if _, ok := s.status[a.Key()]; !ok {
			continue
		}
		s.status[a.Key()] = status
	}
	return nil
}

// Status returns the recorded status for an article, or "" when unseen.
func (s *MemoryDedupStore) Status(article model.RawArticle) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[article.Key()]
}
