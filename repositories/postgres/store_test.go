package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"clothing-store/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), models.ErrRecordNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation})), models.ErrDuplicateKey)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: foreignKeyViolation}), models.ErrRecordNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	for _, bad := range []string{"", "abc", "0", "-3", "64f0c2"} {
		_, ok := parseID(bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, 20, offset(3, 10))
}

type scriptedRow struct {
	value bool
	err   error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.value
	return nil
}

// scriptedDB answers QueryRow calls in order and records the statements.
type scriptedDB struct {
	rows    []scriptedRow
	queries []string
}

func (d *scriptedDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	d.queries = append(d.queries, sql)
	if len(d.rows) == 0 {
		return scriptedRow{err: errors.New("unexpected query")}
	}
	row := d.rows[0]
	d.rows = d.rows[1:]
	return row
}

func (d *scriptedDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected exec")
}

func (d *scriptedDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (d *scriptedDB) Ping(context.Context) error { return nil }
func (d *scriptedDB) Close() {}

func TestToggleWishlistLosingConcurrentAddReportsPresent(t *testing.T) {
	db := &scriptedDB{rows: []scriptedRow{{err: pgx.ErrNoRows}, {value: true}}}
	added, err := New(db).ToggleWishlist(context.Background(), "7", "p1")
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, db.queries, 2)
	assert.Contains(t, db.queries[1], "SELECT EXISTS")
}

func TestToggleWishlistRemoval(t *testing.T) {
	db := &scriptedDB{rows: []scriptedRow{{err: pgx.ErrNoRows}, {value: false}}}
	added, err := New(db).ToggleWishlist(context.Background(), "7", "p1")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestWishlistReadsUnknownUser(t *testing.T) {
	ctx := context.Background()

	db := &scriptedDB{rows: []scriptedRow{{value: false}}}
	_, err := New(db).InWishlist(ctx, "7", "p1")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "FROM users")

	_, err = New(&scriptedDB{rows: []scriptedRow{{value: false}}}).GetWishlist(ctx, "7")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	_, err = New(&scriptedDB{rows: []scriptedRow{{value: false}}}).GetCartItems(ctx, "7")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	db = &scriptedDB{rows: []scriptedRow{{value: true}, {value: true}}}
	in, err := New(db).InWishlist(ctx, "7", "p1")
	require.NoError(t, err)
	assert.True(t, in)
}
