// Package bolt is a docstore engine backed by one go.etcd.io/bbolt file.
// Each collection is a bucket keyed by document id; values are JSON.
// Buckets are created on first write.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
)

// Store provides a BoltDB-backed document store.
type Store struct {
	db *bbolt.DB
}

var _ docstore.Store = (*Store)(nil)

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{db: s.db, bucket: []byte(name)}
}

// Ping runs an empty read transaction, which fails once the file is closed.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.View(func(*bbolt.Tx) error { return nil }); err != nil {
		return fmt.Errorf("ping storage db: %w", err)
	}
	return nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Collection is one bucket of the database.
type Collection struct {
	db     *bbolt.DB
	bucket []byte
}

func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter, err := docstore.Normalize(filter)
	if err != nil {
		return nil, err
	}

	var found docstore.Document
	err = c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b == nil {
			return nil
		}
		_, found, err = firstMatch(b, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, docstore.ErrNoDocuments
	}
	return found, nil
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter, err := docstore.Normalize(filter)
	if err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0)
	err = c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			doc, err := decode(k, v)
			if err != nil {
				return err
			}
			if docstore.Matches(doc, filter) {
				docs = append(docs, doc)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Collection) InsertOne(ctx context.Context, doc docstore.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body := make(docstore.Document, len(doc))
	docstore.Merge(body, docstore.Fields(doc))

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := docstore.NewID()
	err = c.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(c.bucket)
		if err != nil {
			return fmt.Errorf("create %s bucket: %w", c.bucket, err)
		}
		return b.Put([]byte(id), payload)
	})
	if err != nil {
		return "", err
	}
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

	var res docstore.UpdateResult
	err = c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b == nil {
			return nil
		}
		key, doc, err := firstMatch(b, filter)
		if err != nil || doc == nil {
			return err
		}
		docstore.Merge(doc, fields)
		delete(doc, docstore.IDField)

		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		if err := b.Put(key, payload); err != nil {
			return err
		}
		res.Matched = 1
		return nil
	})
	return res, err
}

func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (docstore.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return docstore.DeleteResult{}, err
	}
	filter, err := docstore.Normalize(filter)
	if err != nil {
		return docstore.DeleteResult{}, err
	}

	var res docstore.DeleteResult
	err = c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b == nil {
			return nil
		}
		key, doc, err := firstMatch(b, filter)
		if err != nil || doc == nil {
			return err
		}
		if err := b.Delete(key); err != nil {
			return err
		}
		res.Deleted = 1
		return nil
	})
	return res, err
}

// firstMatch returns the key and decoded document of the first match, or a
// nil document. An id filter is a point lookup instead of a scan.
func firstMatch(b *bbolt.Bucket, filter docstore.Filter) ([]byte, docstore.Document, error) {
	if id, ok := filter[docstore.IDField].(string); ok {
		key := []byte(id)
		v := b.Get(key)
		if v == nil {
			return nil, nil, nil
		}
		doc, err := decode(key, v)
		if err != nil || !docstore.Matches(doc, filter) {
			return nil, nil, err
		}
		return key, doc, nil
	}

	cur := b.Cursor()
	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		doc, err := decode(k, v)
		if err != nil {
			return nil, nil, err
		}
		if docstore.Matches(doc, filter) {
			// keys are only valid for the life of the transaction
			return append([]byte(nil), k...), doc, nil
		}
	}
	return nil, nil, nil
}

func decode(key, payload []byte) (docstore.Document, error) {
	var doc docstore.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", key, err)
	}
	if doc == nil {
		doc = docstore.Document{}
	}
	doc[docstore.IDField] = string(key)
	return doc, nil
}
