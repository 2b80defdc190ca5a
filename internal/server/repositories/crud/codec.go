package crud

import (
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
)

// JSONCodec stores T as its JSON object form. Updates set only the fields
// that are non-empty, so a zero string means "leave unchanged".
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(entity *T) (docstore.Document, error) {
	return docstore.Encode(entity)
}

func (JSONCodec[T]) Decode(doc docstore.Document) (*T, error) {
	var entity T
	if err := docstore.Decode(doc, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (c JSONCodec[T]) Fields(entity *T) (docstore.Fields, error) {
	doc, err := c.Encode(entity)
	if err != nil {
		return nil, err
	}
	return NonEmpty(doc), nil
}

// NonEmpty drops the identifier, nulls and empty strings from doc.
func NonEmpty(doc docstore.Document) docstore.Fields {
	fields := make(docstore.Fields, len(doc))
	for k, v := range doc {
		if k == docstore.IDField || v == nil || v == "" {
			continue
		}
		fields[k] = v
	}
	return fields
}
