package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tordrt/modelflow/internal/erdl"
	"github.com/tordrt/modelflow/internal/model"
)

// Extractor turns the tables of a Source into model tables and relations.
type Extractor struct {
	src    Source
	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil logger discards all output.
func NewExtractor(src Source, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{src: src, logger: logger}
}

// Extract reads the requested tables, or every table when tables is empty,
// leaving out any named in exclude. Foreign keys between extracted tables
// become relations; references to tables outside the set are dropped.
func (e *Extractor) Extract(ctx context.Context, tables, exclude []string) (*model.Project, error) {
	names, err := e.tableNames(ctx, tables, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	project := model.NewProject(e.src.Schema())
	fksByTable := make(map[string][]ForeignKey, len(names))

	for _, name := range names {
		table, err := e.extractTable(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", name, err)
		}

		fks, err := e.src.ForeignKeys(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to extract foreign keys of %s: %w", name, err)
		}
		fksByTable[name] = fks

		project.Tables = append(project.Tables, *table)
		e.logger.Debug("extracted table", "table", name, "columns", len(table.Columns), "foreign_keys", len(fks))
	}

	for _, name := range names {
		e.link(project, name, fksByTable[name])
	}

	return project, nil
}

func (e *Extractor) tableNames(ctx context.Context, requested, exclude []string) ([]string, error) {
	names := requested
	if len(names) == 0 {
		var err error
		if names, err = e.src.TableNames(ctx); err != nil {
			return nil, err
		}
	}

	if len(exclude) == 0 {
		return names, nil
	}

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if !excluded[name] {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}

func (e *Extractor) extractTable(ctx context.Context, name string) (*model.Table, error) {
	infos, err := e.src.Columns(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("table not found or has no columns")
	}

	table := &model.Table{
		ID:           model.NewID(),
		Name:         name,
		BusinessName: name,
		Columns:      make([]model.Column, 0, len(infos)),
		Comments:     []model.Comment{},
	}
	if schema := e.src.Schema(); schema != "" {
		table.BusinessComment = model.SchemaCommentPrefix + schema
	}

	for _, info := range infos {
		table.Columns = append(table.Columns, toColumn(info))
	}

	return table, nil
}

// toColumn maps database metadata onto a column. Keys and nullability come
// from the database itself rather than from naming conventions.
func toColumn(info ColumnInfo) model.Column {
	return model.Column{
		ID:           model.NewID(),
		Name:         info.Name,
		Type:         erdl.NormalizeType(info.Type),
		BusinessName: info.Name,
		IsPrimaryKey: info.PrimaryKey,
		IsRequired:   !info.Nullable,
		DefaultValue: info.Default,
		Comments:     []model.Comment{},
	}
}

// link flags the foreign key columns of one table and records a relation
// for every reference whose target was extracted too.
func (e *Extractor) link(project *model.Project, tableName string, fks []ForeignKey) {
	source := project.Table(tableName)

	for _, fk := range fks {
		sourceCol := source.Column(fk.Column)
		if sourceCol == nil {
			continue
		}
		sourceCol.IsForeignKey = true

		target := project.Table(fk.RefTable)
		if target == nil {
			e.logger.Debug("skipping reference to table outside the import", "table", tableName, "column", fk.Column, "target", fk.RefTable)
			continue
		}

		targetCol := targetColumn(target, fk.RefColumn)
		if targetCol == nil {
			e.logger.Warn("referenced column not found", "table", tableName, "column", fk.Column, "target", fk.RefTable, "target_column", fk.RefColumn)
			continue
		}

		project.Relations = append(project.Relations, model.Relation{
			ID:             model.NewID(),
			SourceTableID:  source.ID,
			SourceColumnID: sourceCol.ID,
			TargetTableID:  target.ID,
			TargetColumnID: targetCol.ID,
			Type:           model.OneToMany,
		})
	}
}

func targetColumn(target *model.Table, name string) *model.Column {
	if name != "" {
		return target.Column(name)
	}
	for i := range target.Columns {
		if target.Columns[i].IsPrimaryKey {
			return &target.Columns[i]
		}
	}
	return nil
}
