package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	database := NewTestDB(t)

	require.NoError(t, Migrate(database))

	var count int
	err := database.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_items_%'`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUniqueIndexes(t *testing.T) {
	database := NewTestDB(t)

	insert := `INSERT INTO items (name, item_number, price, quantity, date_acquired) VALUES (?, ?, '1.00', 1, '2023-01-01')`
	_, err := database.Exec(insert, "Widget", 1)
	require.NoError(t, err)

	_, err = database.Exec(insert, "Widget", 2)
	assert.Error(t, err, "duplicate name should be rejected")

	_, err = database.Exec(insert, "Gadget", 1)
	assert.Error(t, err, "duplicate item number should be rejected")
}
