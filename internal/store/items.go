package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/erazemk/storeapi/internal/model"
)

// ErrNotFound is returned when no item has the requested identifier.
var ErrNotFound = errors.New("item not found")

// Searchable item columns.
const (
	FieldName       = "name"
	FieldItemNumber = "item_number"
)

var searchable = map[string]bool{
	FieldName:       true,
	FieldItemNumber: true,
}

// UniqueViolationError reports a write rejected by a unique index.
type UniqueViolationError struct {
	Field string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

// ItemStore persists items in SQLite.
type ItemStore struct {
	DB *sql.DB
}

// NewItemStore returns an ItemStore backed by db.
func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{DB: db}
}

const itemColumns = `id, name, item_number, price, quantity, date_acquired`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (model.Item, error) {
	var item model.Item
	err := row.Scan(&item.ID, &item.Name, &item.ItemNumber, &item.Price, &item.Quantity, &item.DateAcquired)
	return item, err
}

// Insert stores a new item and returns it with its assigned ID.
func (s *ItemStore) Insert(ctx context.Context, item model.Item) (*model.Item, error) {
	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO items (name, item_number, price, quantity, date_acquired) VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.ItemNumber, item.Price, item.Quantity, item.DateAcquired,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", uniqueViolation(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	item.ID = id
	return &item, nil
}

// Get returns an item by ID, or ErrNotFound.
func (s *ItemStore) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, err := scanItem(s.DB.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &item, nil
}

// List returns all items ordered by ID.
func (s *ItemStore) List(ctx context.Context) ([]model.Item, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// FindByField returns the items whose column field equals value.
// Only FieldName and FieldItemNumber may be searched.
func (s *ItemStore) FindByField(ctx context.Context, field string, value any) ([]model.Item, error) {
	if !searchable[field] {
		return nil, fmt.Errorf("finding items: field %q is not searchable", field)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE `+field+` = ? ORDER BY id`, value,
	)
	if err != nil {
		return nil, fmt.Errorf("finding items by %s: %w", field, err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Update overwrites every field of the item with item.ID.
func (s *ItemStore) Update(ctx context.Context, item model.Item) (*model.Item, error) {
	result, err := s.DB.ExecContext(ctx,
		`UPDATE items SET name = ?, item_number = ?, price = ?, quantity = ?, date_acquired = ?
		 WHERE id = ?`,
		item.Name, item.ItemNumber, item.Price, item.Quantity, item.DateAcquired, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", uniqueViolation(err))
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete permanently removes an item.
func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return requireAffected(result)
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// uniqueViolation converts a unique index failure into *UniqueViolationError.
func uniqueViolation(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}
	for _, field := range []string{FieldItemNumber, FieldName} {
		if strings.Contains(se.Error(), "UNIQUE constraint failed: items."+field) {
			return &UniqueViolationError{Field: field}
		}
	}
	return err
}
