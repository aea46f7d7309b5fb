// Package reportstore persists the reporting representation of discovered
// elements in sqlite, keyed by their identity.
package reportstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"webprobe/lib/element"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "embed"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("webprobe/lib/reportstore")

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, ":memory:" is accepted.
func Open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	db.SetMaxOpenConns(1)
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return Store{}, err
	}
	return New(db), nil
}

// New wraps a database that already has Schema applied.
func New(db *sql.DB) Store {
	return Store{db: db}
}

func (s Store) Close() error {
	return s.db.Close()
}

type Record struct {
	Identity string
	Kind     element.Kind
	URL      string
	Action   string
	Method   element.Method
	// Representation is the json encoded ToMap of the element.
	Representation json.RawMessage
	FoundAt        time.Time
}

// Save stores e unless an equal element was stored before, inserted
// reports which of the two happened.
func (s Store) Save(ctx context.Context, e element.Element) (inserted bool, err error) {
	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()

	identity := e.IdentityKey()
	span.SetAttributes(attribute.String("identity", identity))

	representation, err := json.Marshal(e.ToMap())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal element")
		return false, err
	}

	res, err := s.db.ExecContext(
		ctx,
		`insert or ignore into element(identity, kind, url, action, method, representation, found_at)
		values (?, ?, ?, ?, ?, ?, ?)`,
		identity,
		string(e.Kind()),
		e.URL(),
		e.Action(),
		string(e.Method()),
		string(representation),
		time.Now().UnixMilli(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert element")
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// List returns every stored element in the order they were first saved.
func (s Store) List(ctx context.Context) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	rows, err := s.db.QueryContext(
		ctx,
		`select identity, kind, url, action, method, representation, found_at
		from element order by found_at, rowid`,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query elements")
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r              Record
			kind, method   string
			representation string
			foundAt        int64
		)
		err := rows.Scan(&r.Identity, &kind, &r.URL, &r.Action, &method, &representation, &foundAt)
		if err != nil {
			return nil, err
		}
		r.Kind = element.Kind(kind)
		r.Method = element.Method(method)
		r.Representation = json.RawMessage(representation)
		r.FoundAt = time.UnixMilli(foundAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
