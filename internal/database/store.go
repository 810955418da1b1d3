package database

import (
	"context"
	"database/sql"

	"github.com/4wadia/focusflow/internal/ordering"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries implements Querier on top of a connection or a transaction
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Store is the SQLite-backed DataStore
type Store struct {
	*Queries
	db *sql.DB
}

var _ DataStore = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{Queries: New(db), db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(Querier) error) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(s.WithTx(tx))
	})
}

// DB exposes the underlying handle for lifecycle management
func (s *Store) DB() *sql.DB {
	return s.db
}

// TaskShifter adapts q to ordering.Shifter for the task columns of one owner.
// A scope is a column ID.
func TaskShifter(q Querier, ownerID string) ordering.Shifter {
	return taskShifter{q: q, ownerID: ownerID}
}

// ColumnShifter adapts q to ordering.Shifter for the columns of one owner.
// The scope is ignored since an owner has a single column sequence.
func ColumnShifter(q Querier, ownerID string) ordering.Shifter {
	return columnShifter{q: q, ownerID: ownerID}
}

type taskShifter struct {
	q       Querier
	ownerID string
}

func (s taskShifter) ShiftOrders(ctx context.Context, scope string, from, to, delta int) error {
	return s.q.ShiftTaskOrders(ctx, s.ownerID, scope, from, to, delta)
}

type columnShifter struct {
	q       Querier
	ownerID string
}

func (s columnShifter) ShiftOrders(ctx context.Context, _ string, from, to, delta int) error {
	return s.q.ShiftColumnOrders(ctx, s.ownerID, from, to, delta)
}
