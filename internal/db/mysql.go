package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQLSource reads one MySQL database
type MySQLSource struct {
	db     *sql.DB
	schema string
}

// NewMySQLSource connects to MySQL. An empty schemaName falls back to the
// database named in the DSN.
func NewMySQLSource(ctx context.Context, dsn, schemaName string) (*MySQLSource, error) {
	if schemaName == "" {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DSN: %w", err)
		}
		if cfg.DBName == "" {
			return nil, fmt.Errorf("no database name in DSN (specify a schema)")
		}
		schemaName = cfg.DBName
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQLSource{db: db, schema: schemaName}, nil
}

// Schema is empty: a MySQL database name is not a table qualifier worth
// keeping in the model.
func (s *MySQLSource) Schema() string {
	return ""
}

func (s *MySQLSource) Close(context.Context) error {
	return s.db.Close()
}

func (s *MySQLSource) TableNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	return queryStrings(ctx, s.db, query, s.schema)
}

func (s *MySQLSource) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	query := `
		SELECT
			column_name,
			column_type,
			is_nullable,
			column_default,
			column_key,
			extra
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := s.db.QueryContext(ctx, query, s.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			col        ColumnInfo
			nullable   string
			defaultVal sql.NullString
			key        string
			extra      string
		)

		if err := rows.Scan(&col.Name, &col.Type, &nullable, &defaultVal, &key, &extra); err != nil {
			return nil, err
		}

		col.Nullable = nullable == "YES"
		col.PrimaryKey = key == "PRI"
		if defaultVal.Valid {
			col.Default = &defaultVal.String
		}
		if strings.Contains(strings.ToLower(extra), "auto_increment") {
			col.Type += " auto_increment"
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func (s *MySQLSource) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	query := `
		SELECT
			column_name,
			referenced_table_name,
			referenced_column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ?
			AND table_name = ?
			AND referenced_table_name IS NOT NULL
		ORDER BY ordinal_position
	`

	rows, err := s.db.QueryContext(ctx, query, s.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, err
		}
		fks = append(fks, fk)
	}

	return fks, rows.Err()
}

func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}
