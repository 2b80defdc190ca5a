// Package memory is an in-process docstore engine. Documents live in a map
// guarded by one RWMutex and are returned in insertion order.
package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
)

type collection struct {
	docs  map[string]docstore.Document
	order []string
}

// Store holds every collection in memory. The zero value is not usable; call New.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	closed      bool
}

var _ docstore.Store = (*Store)(nil)

func New() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// Collection returns a handle to the named collection; it is created on first write.
func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{store: s, name: name}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return docstore.ErrClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.collections = nil
	return nil
}

// Collection is a handle bound to one named collection of a Store.
type Collection struct {
	store *Store
	name  string
}

func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter) (docstore.Document, error) {
	docs, err := c.find(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, docstore.ErrNoDocuments
	}
	return docs[0], nil
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter) ([]docstore.Document, error) {
	return c.find(ctx, filter, 0)
}

func (c *Collection) InsertOne(ctx context.Context, doc docstore.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stored, err := docstore.Normalize(doc)
	if err != nil {
		return "", err
	}
	if stored == nil {
		stored = docstore.Document{}
	}
	id := docstore.NewID()
	stored[docstore.IDField] = id

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", docstore.ErrClosed
	}

	col, ok := s.collections[c.name]
	if !ok {
		col = &collection{docs: make(map[string]docstore.Document)}
		s.collections[c.name] = col
	}
	col.docs[id] = stored
	col.order = append(col.order, id)
	return id, nil
}

func (c *Collection) UpdateOne(ctx context.Context, filter docstore.Filter, fields docstore.Fields) (docstore.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return docstore.UpdateResult{}, err
	}
	filter, err := docstore.Normalize(filter)
	if err != nil {
		return docstore.UpdateResult{}, err
	}
	fields, err = docstore.Normalize(fields)
	if err != nil {
		return docstore.UpdateResult{}, err
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return docstore.UpdateResult{}, docstore.ErrClosed
	}

	id, ok := c.firstMatch(filter)
	if !ok {
		return docstore.UpdateResult{}, nil
	}
	docstore.Merge(s.collections[c.name].docs[id], fields)
	return docstore.UpdateResult{Matched: 1}, nil
}

func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (docstore.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return docstore.DeleteResult{}, err
	}
	filter, err := docstore.Normalize(filter)
	if err != nil {
		return docstore.DeleteResult{}, err
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return docstore.DeleteResult{}, docstore.ErrClosed
	}

	id, ok := c.firstMatch(filter)
	if !ok {
		return docstore.DeleteResult{}, nil
	}
	col := s.collections[c.name]
	delete(col.docs, id)
	for i, v := range col.order {
		if v == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return docstore.DeleteResult{Deleted: 1}, nil
}

// find returns copies of up to limit matching documents; limit 0 means all.
func (c *Collection) find(ctx context.Context, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter, err := docstore.Normalize(filter)
	if err != nil {
		return nil, err
	}

	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, docstore.ErrClosed
	}

	col, ok := s.collections[c.name]
	if !ok {
		return []docstore.Document{}, nil
	}

	out := make([]docstore.Document, 0)
	for _, id := range col.order {
		doc := col.docs[id]
		if !docstore.Matches(doc, filter) {
			continue
		}
		cp, err := docstore.Normalize(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// firstMatch must be called with the store lock held.
func (c *Collection) firstMatch(filter docstore.Filter) (string, bool) {
	col, ok := c.store.collections[c.name]
	if !ok {
		return "", false
	}
	if id, ok := filter[docstore.IDField].(string); ok {
		doc, found := col.docs[id]
		return id, found && docstore.Matches(doc, filter)
	}
	for _, id := range col.order {
		if docstore.Matches(col.docs[id], filter) {
			return id, true
		}
	}
	return "", false
}
