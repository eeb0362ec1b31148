// Package formatter renders a model as text, markdown, JSON, YAML or ERDL.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/modelflow/internal/model"
)

// Output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatERDL     = "erdl"
)

// Formats lists every supported output format
var Formats = []string{FormatText, FormatMarkdown, FormatJSON, FormatYAML, FormatERDL}

// Formatter writes a whole project
type Formatter interface {
	Format(p *model.Project) error
}

// New returns the single-file formatter for format writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case FormatText:
		return NewTextFormatter(w), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatYAML:
		return NewYAMLFormatter(w), nil
	case FormatERDL:
		return NewERDLFormatter(w), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be one of %s)", format, strings.Join(Formats, ", "))
	}
}

// qualifiedName prefixes the table name with its schema, if any.
func qualifiedName(t *model.Table) string {
	if schema := t.Schema(); schema != "" {
		return schema + "." + t.Name
	}
	return t.Name
}

// columnFlags lists the key and nullability markers of a column.
func columnFlags(col model.Column) []string {
	var flags []string
	if col.IsPrimaryKey {
		flags = append(flags, "PK")
	}
	if col.IsForeignKey {
		flags = append(flags, "FK")
	}
	if col.IsRequired {
		flags = append(flags, "NOT NULL")
	}
	if col.DefaultValue != nil {
		flags = append(flags, "DEFAULT "+*col.DefaultValue)
	}
	return flags
}

// reference is a relation resolved to table and column names.
type reference struct {
	SourceTable  string
	SourceColumn string
	TargetTable  string
	TargetColumn string
	Type         model.RelationType
}

func resolve(p *model.Project, rel model.Relation) (reference, bool) {
	source := p.TableByID(rel.SourceTableID)
	target := p.TableByID(rel.TargetTableID)
	if source == nil || target == nil {
		return reference{}, false
	}

	ref := reference{SourceTable: qualifiedName(source), TargetTable: qualifiedName(target), Type: rel.Type}
	for _, col := range source.Columns {
		if col.ID == rel.SourceColumnID {
			ref.SourceColumn = col.Name
		}
	}
	for _, col := range target.Columns {
		if col.ID == rel.TargetColumnID {
			ref.TargetColumn = col.Name
		}
	}
	return ref, true
}

// outgoing returns the references held by the named table.
func outgoing(p *model.Project, table *model.Table) []reference {
	var refs []reference
	for _, rel := range p.Relations {
		if rel.SourceTableID != table.ID {
			continue
		}
		if ref, ok := resolve(p, rel); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// incoming returns the references pointing at the named table.
func incoming(p *model.Project, table *model.Table) []reference {
	var refs []reference
	for _, rel := range p.Relations {
		if rel.TargetTableID != table.ID {
			continue
		}
		if ref, ok := resolve(p, rel); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}
