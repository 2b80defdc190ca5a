package docstore

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsUUID(t *testing.T) {
	a, b := NewID(), NewID()
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(Document{"n": 3, "s": "x", "nested": struct {
		A int `json:"a"`
	}{A: 1}})
	require.NoError(t, err)
	assert.Equal(t, Document{"n": float64(3), "s": "x", "nested": map[string]any{"a": float64(1)}}, got)

	var nilFilter Filter
	f, err := Normalize(nilFilter)
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = Normalize(Document{"bad": make(chan int)})
	require.Error(t, err)
}

func TestMatches(t *testing.T) {
	doc := Document{IDField: "1", "user": "alice", "age": float64(30)}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"nil filter", nil, true},
		{"empty filter", Filter{}, true},
		{"by id", ByID("1"), true},
		{"one field", Filter{"user": "alice"}, true},
		{"two fields", Filter{"user": "alice", "age": float64(30)}, true},
		{"wrong value", Filter{"user": "bob"}, false},
		{"missing field", Filter{"email": "a@b"}, false},
		{"type mismatch", Filter{"age": "30"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(doc, tt.filter))
		})
	}
}

func TestMerge_KeepsID(t *testing.T) {
	doc := Document{IDField: "1", "name": "old", "text": "t"}
	Merge(doc, Fields{IDField: "2", "name": "new"})
	assert.Equal(t, Document{IDField: "1", "name": "new", "text": "t"}, doc)
}

func TestEncodeDecode(t *testing.T) {
	type post struct {
		ID     string  `json:"_id,omitempty"`
		Name   string  `json:"name"`
		Author *string `json:"author,omitempty"`
	}

	doc, err := Encode(post{Name: "hello"})
	require.NoError(t, err)
	assert.Equal(t, Document{"name": "hello"}, doc)

	var p post
	require.NoError(t, Decode(Document{IDField: "abc", "name": "hello", "author": "u1"}, &p))
	assert.Equal(t, "abc", p.ID)
	require.NotNil(t, p.Author)
	assert.Equal(t, "u1", *p.Author)

	require.Error(t, Decode(Document{"name": 5}, &p))
}
