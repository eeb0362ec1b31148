//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/modelflow"
	"github.com/tordrt/modelflow/internal/db"
	"github.com/tordrt/modelflow/internal/erdl"
)

const sqliteShop = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username VARCHAR(50) NOT NULL UNIQUE,
	email VARCHAR(100) NOT NULL,
	status TEXT DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE products (
	id INTEGER PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	category VARCHAR(50),
	price DECIMAL(10,2) NOT NULL
);
CREATE INDEX idx_category ON products(category);
CREATE TABLE orders (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	ordered_at DATETIME
);
CREATE TABLE order_items (
	id INTEGER PRIMARY KEY,
	order_id INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity INT NOT NULL DEFAULT 1,
	FOREIGN KEY (order_id) REFERENCES orders(id),
	FOREIGN KEY (product_id) REFERENCES products
);
`

// newSQLiteShop creates the shop fixture in a temporary database file.
func newSQLiteShop(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "shop.db")
	src, err := db.NewSQLiteSource(ctx, path)
	require.NoError(t, err)
	defer func() { _ = src.Close(ctx) }()

	_, err = src.DB().ExecContext(ctx, sqliteShop)
	require.NoError(t, err)
	return path
}

func TestSQLiteExtraction(t *testing.T) {
	ctx := context.Background()
	path := newSQLiteShop(t)

	src, err := db.NewSQLiteSource(ctx, path)
	require.NoError(t, err)
	defer func() { _ = src.Close(ctx) }()

	p, err := db.NewExtractor(src, nil).Extract(ctx, nil, nil)
	require.NoError(t, err)

	verifyShop(t, p)

	users := requireTable(t, p, "users")
	assert.Empty(t, users.BusinessComment)
	status := users.Column("status")
	require.NotNil(t, status)
	assert.Equal(t, "TEXT", status.Type)
	assert.False(t, status.IsRequired)
	require.NotNil(t, status.DefaultValue)
	assert.Equal(t, "'active'", *status.DefaultValue)

	products := requireTable(t, p, "products")
	price := products.Column("price")
	require.NotNil(t, price)
	assert.Equal(t, "DECIMAL(10,2)", price.Type)
	assert.True(t, price.IsRequired)
}

func TestSQLiteSpecificTables(t *testing.T) {
	path := newSQLiteShop(t)

	p, err := modelflow.ImportDatabase(context.Background(), "sqlite://"+path, &modelflow.Options{
		Tables: []string{"users", "products"},
	})
	require.NoError(t, err)

	assert.Equal(t, "shop", p.Name)
	verifySubset(t, p)
}

func TestSQLiteExcludeTables(t *testing.T) {
	path := newSQLiteShop(t)

	p, err := modelflow.ImportDatabase(context.Background(), "sqlite://"+path, &modelflow.Options{
		ExcludeTables: []string{"order_items"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"users", "products", "orders"}, tableNames(p))
	verifyRelation(t, p, "orders", "user_id", "users", "id")
	assert.Len(t, p.Relations, 1)
}

func TestSQLiteERDLRoundTrip(t *testing.T) {
	path := newSQLiteShop(t)

	p, err := modelflow.ImportDatabase(context.Background(), "sqlite://"+path, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, modelflow.FormatProject(p, &modelflow.OutputOptions{Format: "erdl", Writer: &buf}))

	res := erdl.Parse(buf.String())
	require.True(t, res.Success, res.Errors)
	require.Len(t, res.Tables, len(p.Tables))

	for i, table := range p.Tables {
		parsed := res.Tables[i]
		assert.Equal(t, table.Name, parsed.Name)
		require.Len(t, parsed.Columns, len(table.Columns))
		for j, col := range table.Columns {
			assert.Equal(t, col.Name, parsed.Columns[j].Name)
			assert.Equal(t, col.Type, parsed.Columns[j].Type)
		}
	}
}
