package server

import (
	"sync"

	"codeberg.org/snonux/bilinguo/internal/audio"
)

// artifactStore keeps the most recent artifacts so the browser can fetch
// the audio of a response it just received. The oldest entry is evicted
// once the store is full.
type artifactStore struct {
	mu    sync.Mutex
	limit int
	order []string
	items map[string]*audio.Artifact
}

func newArtifactStore(limit int) *artifactStore {
	if limit < 1 {
		limit = 1
	}
	return &artifactStore{
		limit: limit,
		items: make(map[string]*audio.Artifact, limit),
	}
}

func (s *artifactStore) put(a *audio.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[a.ID]; ok {
		return
	}
	if len(s.order) == s.limit {
		delete(s.items, s.order[0])
		s.order = s.order[1:]
	}
	s.items[a.ID] = a
	s.order = append(s.order, a.ID)
}

func (s *artifactStore) get(id string) (*audio.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[id]
	return a, ok
}

func (s *artifactStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
