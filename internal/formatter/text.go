package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/modelflow/internal/model"
)

// TextFormatter formats the model as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes every table in compact text format
func (f *TextFormatter) Format(p *model.Project) error {
	for i := range p.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}
		f.formatTable(p, &p.Tables[i])
	}
	return nil
}

func (f *TextFormatter) formatTable(p *model.Project, table *model.Table) {
	pkStr := ""
	if pk := table.PrimaryKey(); len(pk) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(pk, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s\n", qualifiedName(table), pkStr)

	if table.BusinessName != "" && table.BusinessName != table.Name {
		_, _ = fmt.Fprintf(f.writer, "  BUSINESS NAME: %s\n", table.BusinessName)
	}

	for _, col := range table.Columns {
		parts := append([]string{col.Name + ":", col.Type}, columnFlags(col)...)
		_, _ = fmt.Fprintf(f.writer, "  %s\n", strings.Join(parts, " "))
	}

	if refs := outgoing(p, table); len(refs) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  RELATIONS:")
		for _, ref := range refs {
			_, _ = fmt.Fprintf(f.writer, "    %s → %s.%s (%s)\n", ref.SourceColumn, ref.TargetTable, ref.TargetColumn, ref.Type)
		}
	}
}
