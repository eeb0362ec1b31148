// Package db introspects live databases so their tables can be imported
// into the model.
package db

import (
	"context"
	"fmt"
)

// Source lists the tables, columns and foreign keys of one database schema.
type Source interface {
	// Schema is the qualifier recorded on imported tables, or "" when the
	// tables need no qualification.
	Schema() string
	TableNames(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]ColumnInfo, error)
	ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error)
	Close(ctx context.Context) error
}

// ColumnInfo describes a column as the database reports it
type ColumnInfo struct {
	Name       string
	Type       string
	Nullable   bool
	Default    *string
	PrimaryKey bool
}

// ForeignKey is a single-column reference from one table to another.
// An empty RefColumn means the referenced table's primary key.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Open connects to a database of the given type ("postgres", "mysql" or
// "sqlite"). schemaName selects the PostgreSQL or MySQL schema to read.
func Open(ctx context.Context, dbType, connStr, schemaName string) (Source, error) {
	switch dbType {
	case "postgres":
		return NewPostgresSource(ctx, connStr, schemaName)
	case "mysql":
		return NewMySQLSource(ctx, connStr, schemaName)
	case "sqlite":
		return NewSQLiteSource(ctx, connStr)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}
