// Package docstore defines the narrow document store contract the
// repositories are written against, plus helpers shared by its engines.
//
// A document is a JSON object. Every document carries a store-assigned
// string identifier under IDField; the identifier is immutable once set.
// Filters are top-level field equality matches; a nil or empty filter
// matches every document in the collection.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// IDField is the reserved identifier key of every document.
const IDField = "_id"

// ErrNoDocuments is returned by FindOne when nothing matches the filter.
var ErrNoDocuments = errors.New("docstore: no documents in result")

// ErrClosed is returned by every operation on a closed store.
var ErrClosed = errors.New("docstore: store is closed")

type (
	Document map[string]any
	Filter   map[string]any
	Fields   map[string]any
)

// UpdateResult reports how many documents matched an UpdateOne filter.
type UpdateResult struct {
	Matched int64
}

// DeleteResult reports how many documents DeleteOne removed.
type DeleteResult struct {
	Deleted int64
}

// Collection is a named set of documents.
type Collection interface {
	FindOne(ctx context.Context, filter Filter) (Document, error)
	// InsertOne stores doc under a fresh identifier and returns it. A caller
	// supplied IDField is ignored.
	InsertOne(ctx context.Context, doc Document) (string, error)
	// UpdateOne sets fields on the first matching document. IDField in
	// fields is ignored.
	UpdateOne(ctx context.Context, filter Filter, fields Fields) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error)
	Find(ctx context.Context, filter Filter) ([]Document, error)
}

// Store is a handle shared by all in-flight requests.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close() error
}

// NewID returns a fresh document identifier.
func NewID() string {
	return uuid.NewString()
}

// ByID builds the filter selecting one document by identifier.
func ByID(id string) Filter {
	return Filter{IDField: id}
}

// Normalize round-trips m through JSON so that values compare the same way
// they would after being persisted (numbers become float64, structs become
// maps). A nil map stays nil.
func Normalize[M ~map[string]any](m M) (M, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var out M
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

// Matches reports whether doc satisfies every equality in filter. Both are
// expected to be normalized.
func Matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// Merge applies fields to doc in place, leaving IDField untouched.
func Merge(doc Document, fields Fields) {
	for k, v := range fields {
		if k == IDField {
			continue
		}
		doc[k] = v
	}
}

// Encode converts v into a Document via its JSON representation.
func Encode(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// Decode fills v from doc via its JSON representation.
func Decode(doc Document, v any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
