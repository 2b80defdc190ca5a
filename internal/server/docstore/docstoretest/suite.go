// Package docstoretest holds the behavioral checks every docstore engine
// has to pass.
package docstoretest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
)

// Run exercises open against the Collection contract. open must return a
// fresh, empty store for every call.
func Run(t *testing.T, open func(t *testing.T) docstore.Store) {
	t.Helper()

	ctx := context.Background()

	t.Run("insert assigns id and find one returns it", func(t *testing.T) {
		c := open(t).Collection("users")

		id, err := c.InsertOne(ctx, docstore.Document{docstore.IDField: "client-id", "user": "alice", "age": 30})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.NotEqual(t, "client-id", id)

		got, err := c.FindOne(ctx, docstore.ByID(id))
		require.NoError(t, err)
		assert.Equal(t, id, got[docstore.IDField])
		assert.Equal(t, "alice", got["user"])
		assert.Equal(t, float64(30), got["age"])
	})

	t.Run("find one by field", func(t *testing.T) {
		c := open(t).Collection("users")
		_, err := c.InsertOne(ctx, docstore.Document{"user": "alice"})
		require.NoError(t, err)
		bobID, err := c.InsertOne(ctx, docstore.Document{"user": "bob"})
		require.NoError(t, err)

		got, err := c.FindOne(ctx, docstore.Filter{"user": "bob"})
		require.NoError(t, err)
		assert.Equal(t, bobID, got[docstore.IDField])
	})

	t.Run("find one without match", func(t *testing.T) {
		c := open(t).Collection("users")
		_, err := c.InsertOne(ctx, docstore.Document{"user": "alice"})
		require.NoError(t, err)

		_, err = c.FindOne(ctx, docstore.Filter{"user": "nobody"})
		require.ErrorIs(t, err, docstore.ErrNoDocuments)

		_, err = c.FindOne(ctx, docstore.ByID(docstore.NewID()))
		require.ErrorIs(t, err, docstore.ErrNoDocuments)
	})

	t.Run("empty collection", func(t *testing.T) {
		c := open(t).Collection("never-written")

		_, err := c.FindOne(ctx, nil)
		require.ErrorIs(t, err, docstore.ErrNoDocuments)

		docs, err := c.Find(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, docs)

		ur, err := c.UpdateOne(ctx, docstore.ByID(docstore.NewID()), docstore.Fields{"x": 1})
		require.NoError(t, err)
		assert.Zero(t, ur.Matched)

		dr, err := c.DeleteOne(ctx, docstore.ByID(docstore.NewID()))
		require.NoError(t, err)
		assert.Zero(t, dr.Deleted)
	})

	t.Run("update sets fields and never alters id", func(t *testing.T) {
		c := open(t).Collection("posts")
		id, err := c.InsertOne(ctx, docstore.Document{"name": "old", "text": "body"})
		require.NoError(t, err)

		res, err := c.UpdateOne(ctx, docstore.ByID(id), docstore.Fields{docstore.IDField: "other", "name": "new"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Matched)

		got, err := c.FindOne(ctx, docstore.ByID(id))
		require.NoError(t, err)
		assert.Equal(t, id, got[docstore.IDField])
		assert.Equal(t, "new", got["name"])
		assert.Equal(t, "body", got["text"], "unset fields are kept")

		_, err = c.FindOne(ctx, docstore.ByID("other"))
		require.ErrorIs(t, err, docstore.ErrNoDocuments)
	})

	t.Run("update without match creates nothing", func(t *testing.T) {
		c := open(t).Collection("posts")
		_, err := c.InsertOne(ctx, docstore.Document{"name": "a"})
		require.NoError(t, err)

		res, err := c.UpdateOne(ctx, docstore.ByID(docstore.NewID()), docstore.Fields{"name": "b"})
		require.NoError(t, err)
		assert.Zero(t, res.Matched)

		docs, err := c.Find(ctx, nil)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "a", docs[0]["name"])
	})

	t.Run("delete removes at most one", func(t *testing.T) {
		c := open(t).Collection("posts")
		for range 2 {
			_, err := c.InsertOne(ctx, docstore.Document{"tag": "dup"})
			require.NoError(t, err)
		}

		res, err := c.DeleteOne(ctx, docstore.Filter{"tag": "dup"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Deleted)

		docs, err := c.Find(ctx, docstore.Filter{"tag": "dup"})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("second delete reports nothing deleted", func(t *testing.T) {
		c := open(t).Collection("posts")
		id, err := c.InsertOne(ctx, docstore.Document{"name": "a"})
		require.NoError(t, err)

		res, err := c.DeleteOne(ctx, docstore.ByID(id))
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Deleted)

		res, err = c.DeleteOne(ctx, docstore.ByID(id))
		require.NoError(t, err)
		assert.Zero(t, res.Deleted)
	})

	t.Run("find filters and nil matches all", func(t *testing.T) {
		c := open(t).Collection("posts")
		for _, a := range []string{"x", "y", "x"} {
			_, err := c.InsertOne(ctx, docstore.Document{"author": a})
			require.NoError(t, err)
		}

		all, err := c.Find(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		xs, err := c.Find(ctx, docstore.Filter{"author": "x"})
		require.NoError(t, err)
		assert.Len(t, xs, 2)
	})

	t.Run("collections are isolated", func(t *testing.T) {
		s := open(t)
		id, err := s.Collection("users").InsertOne(ctx, docstore.Document{"n": 1})
		require.NoError(t, err)

		_, err = s.Collection("posts").FindOne(ctx, docstore.ByID(id))
		require.ErrorIs(t, err, docstore.ErrNoDocuments)
	})

	t.Run("returned documents are copies", func(t *testing.T) {
		c := open(t).Collection("posts")
		id, err := c.InsertOne(ctx, docstore.Document{"name": "a"})
		require.NoError(t, err)

		got, err := c.FindOne(ctx, docstore.ByID(id))
		require.NoError(t, err)
		got["name"] = "mutated"

		again, err := c.FindOne(ctx, docstore.ByID(id))
		require.NoError(t, err)
		assert.Equal(t, "a", again["name"])
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, open(t).Ping(ctx))
	})
}
