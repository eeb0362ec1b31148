//go:build integration
// +build integration

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/modelflow/internal/model"
)

// shopTables are the tables every fixture database provides.
var shopTables = []string{"users", "products", "orders", "order_items"}

// requireTable returns the named table or stops the test.
func requireTable(t *testing.T, p *model.Project, name string) *model.Table {
	t.Helper()
	table := p.Table(name)
	require.NotNil(t, table, "table %s not found", name)
	return table
}

func tableNames(p *model.Project) []string {
	names := make([]string, 0, len(p.Tables))
	for _, table := range p.Tables {
		names = append(names, table.Name)
	}
	return names
}

// verifyShop checks the parts of the shop fixture every database reports
// the same way.
func verifyShop(t *testing.T, p *model.Project) {
	t.Helper()

	assert.ElementsMatch(t, shopTables, tableNames(p))

	users := requireTable(t, p, "users")
	assert.Equal(t, []string{"id"}, users.PrimaryKey())
	for _, name := range []string{"id", "username", "email", "status", "created_at"} {
		assert.NotNil(t, users.Column(name), "users.%s not found", name)
	}

	username := users.Column("username")
	require.NotNil(t, username)
	assert.True(t, username.IsRequired)
	assert.False(t, username.IsPrimaryKey)

	items := requireTable(t, p, "order_items")
	orderID := items.Column("order_id")
	require.NotNil(t, orderID)
	assert.True(t, orderID.IsForeignKey)

	verifyRelation(t, p, "orders", "user_id", "users", "id")
	verifyRelation(t, p, "order_items", "order_id", "orders", "id")
	verifyRelation(t, p, "order_items", "product_id", "products", "id")
}

// verifyRelation checks that source.column references target.targetColumn.
func verifyRelation(t *testing.T, p *model.Project, source, column, target, targetColumn string) {
	t.Helper()

	src := requireTable(t, p, source)
	dst := requireTable(t, p, target)
	srcCol := src.Column(column)
	dstCol := dst.Column(targetColumn)
	require.NotNil(t, srcCol)
	require.NotNil(t, dstCol)

	for _, rel := range p.Relations {
		if rel.SourceTableID == src.ID && rel.SourceColumnID == srcCol.ID &&
			rel.TargetTableID == dst.ID && rel.TargetColumnID == dstCol.ID {
			assert.Equal(t, model.OneToMany, rel.Type)
			return
		}
	}
	t.Errorf("relation %s.%s -> %s.%s not found", source, column, target, targetColumn)
}

// verifySubset checks an import restricted to users and products.
func verifySubset(t *testing.T, p *model.Project) {
	t.Helper()
	assert.ElementsMatch(t, []string{"users", "products"}, tableNames(p))
	assert.Empty(t, p.Relations, "no relation links users and products")
}
