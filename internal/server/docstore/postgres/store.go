// Package postgres is a docstore engine that keeps every collection in one
// JSONB table. Equality filters become containment (body @> filter) so the
// GIN index serves them; the identifier lives in its own UUID column.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore/postgres/migrations"
)

const table = "documents"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store is a PostgreSQL-backed document store over a shared *sql.DB pool.
type Store struct {
	db *sql.DB
}

var _ docstore.Store = (*Store)(nil)

// New wraps an open pool. It does not run migrations.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects with the pgx driver, checks the connection and brings the
// schema up to date.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	s := New(db)
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, s.db, ".")
}

func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{db: s.db, name: name}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Collection is the set of rows of one collection name.
type Collection struct {
	db   *sql.DB
	name string
}

func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter) (docstore.Document, error) {
	q, ok, err := c.selectWhere(filter, "id::text", "body")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, docstore.ErrNoDocuments
	}

	query, args, err := q.OrderBy("created_at", "id").Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		id   string
		body []byte
	)
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&id, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNoDocuments
		}
		return nil, err
	}
	return decode(id, body)
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter) ([]docstore.Document, error) {
	docs := make([]docstore.Document, 0)

	q, ok, err := c.selectWhere(filter, "id::text", "body")
	if err != nil {
		return nil, err
	}
	if !ok {
		return docs, nil
	}

	query, args, err := q.OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decode(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Collection) InsertOne(ctx context.Context, doc docstore.Document) (string, error) {
	body := make(docstore.Document, len(doc))
	docstore.Merge(body, docstore.Fields(doc))

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := docstore.NewID()
	query, args, err := psql.Insert(table).
		Columns("collection", "id", "body").
		Values(c.name, id, string(payload)).
		ToSql()
	if err != nil {
		return "", err
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return "", err
	}
	return id, nil
}

func (c *Collection) UpdateOne(ctx context.Context, filter docstore.Filter, fields docstore.Fields) (docstore.UpdateResult, error) {
	patch := make(docstore.Document, len(fields))
	docstore.Merge(patch, fields)

	payload, err := json.Marshal(patch)
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("marshal fields: %w", err)
	}

	var res docstore.UpdateResult
	err = dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		id, found, err := c.lockFirst(ctx, tx, filter)
		if err != nil || !found {
			return err
		}

		query, args, err := psql.Update(table).
			Set("body", sq.Expr("body || ?::jsonb", string(payload))).
			Where(sq.Eq{"collection": c.name, "id": id}).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		res.Matched = 1
		return nil
	})
	return res, err
}

func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (docstore.DeleteResult, error) {
	var res docstore.DeleteResult
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		id, found, err := c.lockFirst(ctx, tx, filter)
		if err != nil || !found {
			return err
		}

		query, args, err := psql.Delete(table).
			Where(sq.Eq{"collection": c.name, "id": id}).
			ToSql()
		if err != nil {
			return err
		}

		r, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := r.RowsAffected()
		if err != nil {
			return err
		}
		res.Deleted = n
		return nil
	})
	return res, err
}

// lockFirst selects the id of the first matching row FOR UPDATE.
func (c *Collection) lockFirst(ctx context.Context, tx dbx.DBTX, filter docstore.Filter) (string, bool, error) {
	q, ok, err := c.selectWhere(filter, "id::text")
	if err != nil || !ok {
		return "", false, err
	}

	query, args, err := q.OrderBy("created_at", "id").Limit(1).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return "", false, err
	}

	var id string
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

// selectWhere builds the filtered select. ok is false when the filter can
// not match any row, e.g. an _id that is not a UUID.
func (c *Collection) selectWhere(filter docstore.Filter, columns ...string) (sq.SelectBuilder, bool, error) {
	q := psql.Select(columns...).From(table).Where(sq.Eq{"collection": c.name})

	rest := make(docstore.Document, len(filter))
	for k, v := range filter {
		if k != docstore.IDField {
			rest[k] = v
		}
	}

	if v, has := filter[docstore.IDField]; has {
		s, isString := v.(string)
		if !isString {
			return q, false, nil
		}
		u, err := uuid.Parse(s)
		if err != nil || u.String() != s {
			return q, false, nil
		}
		q = q.Where(sq.Eq{"id": s})
	}

	if len(rest) > 0 {
		payload, err := json.Marshal(rest)
		if err != nil {
			return q, false, fmt.Errorf("marshal filter: %w", err)
		}
		q = q.Where("body @> ?::jsonb", string(payload))
	}
	return q, true, nil
}

func decode(id string, body []byte) (docstore.Document, error) {
	var doc docstore.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	if doc == nil {
		doc = docstore.Document{}
	}
	doc[docstore.IDField] = id
	return doc, nil
}
