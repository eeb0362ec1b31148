package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/modelflow/internal/model"
)

// MarkdownFormatter formats the model as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the model in markdown format
func (f *MarkdownFormatter) Format(p *model.Project) error {
	title := "Data Model"
	if p.Name != "" {
		title = p.Name
	}
	_, _ = fmt.Fprintf(f.writer, "# %s\n\n", title)

	if p.Description != "" {
		_, _ = fmt.Fprintf(f.writer, "%s\n\n", p.Description)
	}

	for i := range p.Tables {
		f.FormatTable(p, &p.Tables[i])
	}
	return nil
}

// FormatTable writes a single table (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatTable(p *model.Project, table *model.Table) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", qualifiedName(table))

	if table.BusinessName != "" && table.BusinessName != table.Name {
		_, _ = fmt.Fprintf(f.writer, "_%s_\n\n", table.BusinessName)
	}

	_, _ = fmt.Fprintln(f.writer, "### Columns")
	_, _ = fmt.Fprintln(f.writer)
	for _, col := range table.Columns {
		if flags := columnFlags(col); len(flags) > 0 {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", col.Name, col.Type, strings.Join(flags, ", "))
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name, col.Type)
		}
	}
	_, _ = fmt.Fprintln(f.writer)

	if refs := outgoing(p, table); len(refs) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### References")
		_, _ = fmt.Fprintln(f.writer)
		for _, ref := range refs {
			_, _ = fmt.Fprintf(f.writer, "- %s → %s.%s (%s)\n", ref.SourceColumn, ref.TargetTable, ref.TargetColumn, ref.Type)
		}
		_, _ = fmt.Fprintln(f.writer)
	}
}
