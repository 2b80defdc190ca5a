// Package crud implements the repository operations shared by every
// document kind on top of a docstore.Collection: identifier validation,
// partial updates, and telling a missing document apart from a store error.
package crud

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
)

// Codec maps an entity to and from its stored document.
type Codec[T any] interface {
	// Encode returns the full document for a new entity, without an id.
	Encode(entity *T) (docstore.Document, error)
	Decode(doc docstore.Document) (*T, error)
	// Fields returns the mutable fields an update of entity should set.
	Fields(entity *T) (docstore.Fields, error)
}

// Repository is the generic CRUD adapter over one collection.
type Repository[T any] struct {
	coll  docstore.Collection
	codec Codec[T]
}

func New[T any](coll docstore.Collection, codec Codec[T]) *Repository[T] {
	return &Repository[T]{coll: coll, codec: codec}
}

// ParseID validates a client supplied identifier and returns its canonical form.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", common.ErrorInvalidIdentifier, id)
	}
	return u.String(), nil
}

// Create inserts entity and returns the identifier the store assigned.
func (r *Repository[T]) Create(ctx context.Context, entity *T) (string, error) {
	doc, err := r.codec.Encode(entity)
	if err != nil {
		return "", err
	}
	delete(doc, docstore.IDField)

	id, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	entity, found, err := r.FindOne(ctx, docstore.ByID(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return entity, nil
}

// FindOne returns the first entity matching filter, or found=false.
func (r *Repository[T]) FindOne(ctx context.Context, filter docstore.Filter) (*T, bool, error) {
	doc, err := r.coll.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", err)
	}

	entity, err := r.codec.Decode(doc)
	if err != nil {
		return nil, false, fmt.Errorf("db error: %w", err)
	}
	return entity, true, nil
}

// UpdateByID sets the mutable fields of entity on the document with the
// given id. The identifier is never changed. Updating a missing document
// returns common.ErrorNotFound and creates nothing.
func (r *Repository[T]) UpdateByID(ctx context.Context, id string, entity *T) (int64, error) {
	id, err := ParseID(id)
	if err != nil {
		return 0, err
	}

	fields, err := r.codec.Fields(entity)
	if err != nil {
		return 0, err
	}
	delete(fields, docstore.IDField)

	res, err := r.coll.UpdateOne(ctx, docstore.ByID(id), fields)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	if res.Matched == 0 {
		return 0, common.ErrorNotFound
	}
	return res.Matched, nil
}

func (r *Repository[T]) DeleteByID(ctx context.Context, id string) error {
	id, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, docstore.ByID(id))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.Deleted == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ListAll returns every entity in store order. There is no pagination.
func (r *Repository[T]) ListAll(ctx context.Context) ([]*T, error) {
	docs, err := r.coll.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		entity, err := r.codec.Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, entity)
	}
	return out, nil
}
