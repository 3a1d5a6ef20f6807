// Package memory provides an in-memory remote store used by tests and as an
// offline development backend.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/creatorsync/creatorsync/internal/remote"
	"github.com/creatorsync/creatorsync/internal/session"
)

// Store keeps documents in nested maps: user -> collection -> id.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]remote.Document
	now  func() time.Time
}

func New() *Store {
	return &Store{
		data: make(map[string]map[string]map[string]remote.Document),
		now:  time.Now,
	}
}

func (s *Store) FetchAll(ctx context.Context, sess *session.Session, collection string) ([]remote.Document, error) {
	if sess == nil {
		return nil, common.ErrRemoteUnavailable
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.data[sess.UserID][collection]
	result := make([]remote.Document, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) Upsert(ctx context.Context, sess *session.Session, collection string, doc remote.Document) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[sess.UserID] == nil {
		s.data[sess.UserID] = make(map[string]map[string]remote.Document)
	}
	if s.data[sess.UserID][collection] == nil {
		s.data[sess.UserID][collection] = make(map[string]remote.Document)
	}

	doc.LastModified = s.now()
	s.data[sess.UserID][collection][doc.ID] = doc
	return nil
}

func (s *Store) Delete(ctx context.Context, sess *session.Session, collection string, id string) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[sess.UserID][collection], id)
	return nil
}
